package handler

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"go-jewelry-pos/internal/scanner"
	"go-jewelry-pos/internal/service"
	"go-jewelry-pos/internal/ws"
)

// WSHandler owns the websocket endpoint. Every connection receives hub
// broadcasts; a connection opened with ?session=<audit id> additionally
// acts as a scanner feed for that session.
type WSHandler struct {
	hub    *ws.Hub
	audits service.AuditService
	window time.Duration
}

func NewWSHandler(hub *ws.Hub, audits service.AuditService, window time.Duration) *WSHandler {
	return &WSHandler{hub: hub, audits: audits, window: window}
}

// Feed runs one connection until the client goes away.
func (h *WSHandler) Feed(conn *websocket.Conn) {
	h.hub.Add(conn)
	defer h.hub.Remove(conn)

	// Scanner guns type fast and uneven; the debouncer assembles the
	// frames into one code per physical scan. Scan outcomes reach the
	// client through the hub broadcast, same as every other event.
	var reader *scanner.Reader
	if raw := conn.Query("session"); raw != "" {
		sessionID, err := uuid.Parse(raw)
		if err != nil {
			h.hub.Notify(ws.Event{Type: "audit", Action: "scan_rejected", Message: "invalid session id"})
		} else {
			reader = scanner.NewReader(h.window, func(code string) {
				if _, err := h.audits.Scan(sessionID, code); err != nil {
					h.hub.Notify(ws.Event{Type: "audit", Action: "scan_rejected", Message: err.Error()})
				}
			})
			defer reader.Stop()
		}
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if reader == nil {
			continue
		}
		feedChunks(reader, string(msg))
	}
}

// feedChunks pushes raw frame text into the debouncer. A terminator
// character ends the scan immediately instead of waiting the window out.
func feedChunks(r *scanner.Reader, chunk string) {
	for chunk != "" {
		i := strings.IndexAny(chunk, "\r\n")
		if i < 0 {
			r.Input(chunk)
			return
		}
		if i > 0 {
			r.Input(chunk[:i])
		}
		r.Flush()
		chunk = strings.TrimLeft(chunk[i:], "\r\n")
	}
}
