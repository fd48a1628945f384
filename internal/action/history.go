package action

// DefaultLimit matches the original tool's three-step undo depth.
const DefaultLimit = 3

// History is the bounded linear undo/redo ledger. The cursor sits on
// the most recently applied action; -1 means nothing is applied. The
// cursor always stays within [-1, len-1]. History holds no locking;
// the owning service serializes access.
type History struct {
	limit   int
	entries []Action
	cursor  int
}

// NewHistory builds an empty ledger holding at most limit actions.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit, cursor: -1}
}

// Record appends a successfully executed action. Any undone tail beyond
// the cursor is discarded first, making those entries permanently
// unreachable; the oldest entry is evicted once the ledger exceeds its
// limit.
func (h *History) Record(a Action) {
	h.entries = append(h.entries[:h.cursor+1], a)
	h.cursor++
	if n := len(h.entries) - h.limit; n > 0 {
		h.entries = append([]Action(nil), h.entries[n:]...)
		h.cursor -= n
	}
}

// CanUndo reports whether an applied action is available.
func (h *History) CanUndo() bool {
	return h.cursor >= 0
}

// CanRedo reports whether an undone action sits ahead of the cursor.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Undoable returns the action an undo would revert.
func (h *History) Undoable() (Action, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	return h.entries[h.cursor], true
}

// Redoable returns the action a redo would re-execute.
func (h *History) Redoable() (Action, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	return h.entries[h.cursor+1], true
}

// StepBack moves the cursor after a successful undo.
func (h *History) StepBack() {
	if h.CanUndo() {
		h.cursor--
	}
}

// StepForward moves the cursor after a successful redo.
func (h *History) StepForward() {
	if h.CanRedo() {
		h.cursor++
	}
}

// UndoDescription labels the next undo candidate.
func (h *History) UndoDescription() (string, bool) {
	a, ok := h.Undoable()
	if !ok {
		return "", false
	}
	return a.Description(), true
}

// RedoDescription labels the next redo candidate.
func (h *History) RedoDescription() (string, bool) {
	a, ok := h.Redoable()
	if !ok {
		return "", false
	}
	return a.Description(), true
}

// Len reports how many actions the ledger currently holds.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit reports the configured depth.
func (h *History) Limit() int {
	return h.limit
}
