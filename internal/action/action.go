// Package action implements the reversible mutation units the history
// service records, plus the bounded undo/redo ledger that orders them.
package action

import "gorm.io/gorm"

// Action is one reversible mutation. Execute and Undo run inside a
// transaction owned by the caller; implementations capture whatever
// before-state Undo needs while Execute runs, so a re-executed action
// (redo) refreshes its own captures.
type Action interface {
	// Description labels the action for undo/redo menus.
	Description() string
	Execute(tx *gorm.DB) error
	Undo(tx *gorm.DB) error
}
