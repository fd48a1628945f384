package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is the envelope every live update travels in. Type groups
// events (stock_update, action_history, audit), Action names what
// happened, Data carries the payload.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Notifier is the publishing surface the services depend on.
type Notifier interface {
	Notify(ev Event)
}

// Hub fans events out to every connected client.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte),
	}
}

// Add registers a connection with the hub.
func (h *Hub) Add(conn *websocket.Conn) {
	h.register <- conn
}

// Remove detaches and closes a connection.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.unregister <- conn
}

// Notify marshals the event and hands it to the broadcast loop without
// blocking the caller.
func (h *Hub) Notify(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Println("ws: drop event:", err)
		return
	}
	go func() {
		h.broadcast <- msg
	}()
}

// Run owns the client set. Start it once, in its own goroutine, before
// the server accepts connections.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			log.Println("ws: client connected")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
