package service

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"go-jewelry-pos/internal/action"
	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/logger"
	"go-jewelry-pos/internal/ws"
)

var (
	ErrNothingToUndo = fmt.Errorf("%w: nothing to undo", apperror.ErrValidation)
	ErrNothingToRedo = fmt.Errorf("%w: nothing to redo", apperror.ErrValidation)
)

// HistoryService is the single entry point for reversible mutations.
// Every action runs inside one database transaction; only committed
// actions enter the history, so undo always finds the exact state the
// action left behind.
type HistoryService interface {
	Execute(a action.Action) error
	Undo() error
	Redo() error
	CanUndo() bool
	CanRedo() bool
	UndoDescription() (string, bool)
	RedoDescription() (string, bool)
	State() HistoryState
}

// HistoryState is what the UI binds its undo/redo controls to.
type HistoryState struct {
	CanUndo         bool   `json:"can_undo"`
	CanRedo         bool   `json:"can_redo"`
	UndoDescription string `json:"undo_description,omitempty"`
	RedoDescription string `json:"redo_description,omitempty"`
	Depth           int    `json:"depth"`
	Limit           int    `json:"limit"`
}

type historyService struct {
	db      *gorm.DB
	mu      sync.Mutex
	history *action.History
	wsHub   ws.Notifier
	log     logger.Logger
}

func NewHistoryService(db *gorm.DB, limit int, hub ws.Notifier, log logger.Logger) HistoryService {
	return &historyService{
		db:      db,
		history: action.NewHistory(limit),
		wsHub:   hub,
		log:     log,
	}
}

func (s *historyService) Execute(a action.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Run the action atomically. A failed action rolls back and is
	// never recorded, so the history only ever holds applied steps.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return a.Execute(tx)
	}); err != nil {
		s.log.Errorf("action rejected: %s: %v", a.Description(), err)
		return err
	}

	// 2. Record it. This drops any redo tail and may evict the oldest
	// entry when the history is full.
	s.history.Record(a)
	s.log.Infof("action applied: %s", a.Description())
	s.notifyLocked("applied", a.Description())
	return nil
}

func (s *historyService) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.history.Undoable()
	if !ok {
		return ErrNothingToUndo
	}
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return a.Undo(tx)
	}); err != nil {
		// Cursor stays put so the caller can retry.
		s.log.Errorf("undo failed: %s: %v", a.Description(), err)
		return err
	}
	s.history.StepBack()
	s.log.Infof("undone: %s", a.Description())
	s.notifyLocked("undone", a.Description())
	return nil
}

func (s *historyService) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.history.Redoable()
	if !ok {
		return ErrNothingToRedo
	}
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return a.Execute(tx)
	}); err != nil {
		// The entry stays ahead of the cursor, unapplied. The caller may
		// retry, or record a new action which truncates it.
		s.log.Errorf("redo failed: %s: %v", a.Description(), err)
		return err
	}
	s.history.StepForward()
	s.log.Infof("redone: %s", a.Description())
	s.notifyLocked("redone", a.Description())
	return nil
}

func (s *historyService) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *historyService) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

func (s *historyService) UndoDescription() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.UndoDescription()
}

func (s *historyService) RedoDescription() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.RedoDescription()
}

func (s *historyService) State() HistoryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *historyService) stateLocked() HistoryState {
	st := HistoryState{
		CanUndo: s.history.CanUndo(),
		CanRedo: s.history.CanRedo(),
		Depth:   s.history.Len(),
		Limit:   s.history.Limit(),
	}
	if d, ok := s.history.UndoDescription(); ok {
		st.UndoDescription = d
	}
	if d, ok := s.history.RedoDescription(); ok {
		st.RedoDescription = d
	}
	return st
}

func (s *historyService) notifyLocked(event, description string) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.Notify(ws.Event{
		Type:    "action_history",
		Action:  event,
		Message: description,
		Data:    s.stateLocked(),
	})
}
