package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/action"
	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/logger"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/testutil"
)

// scriptedAction fails on the calls its script names, counting from 1.
type scriptedAction struct {
	name      string
	failExec  map[int]error
	failUndo  map[int]error
	execCalls int
	undoCalls int
}

func (s *scriptedAction) Description() string { return s.name }

func (s *scriptedAction) Execute(*gorm.DB) error {
	s.execCalls++
	return s.failExec[s.execCalls]
}

func (s *scriptedAction) Undo(*gorm.DB) error {
	s.undoCalls++
	return s.failUndo[s.undoCalls]
}

func newTestHistory(t *testing.T, limit int) (HistoryService, *gorm.DB) {
	db := testutil.OpenDB(t)
	return NewHistoryService(db, limit, nil, logger.Nop()), db
}

func TestExecuteRecordsOnlyCommittedActions(t *testing.T) {
	hist, _ := newTestHistory(t, 3)

	boom := errors.New("boom")
	failing := &scriptedAction{name: "failing", failExec: map[int]error{1: boom}}

	err := hist.Execute(failing)
	assert.ErrorIs(t, err, boom, "execute surfaces the action's error")
	assert.False(t, hist.CanUndo(), "a failed action never enters history")

	require.NoError(t, hist.Execute(&scriptedAction{name: "ok"}))
	assert.True(t, hist.CanUndo())

	desc, ok := hist.UndoDescription()
	require.True(t, ok)
	assert.Equal(t, "ok", desc)
}

func TestUndoRedoAtBoundaries(t *testing.T) {
	hist, _ := newTestHistory(t, 3)

	err := hist.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	err = hist.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUndoRedoRoundTripRestoresRows(t *testing.T) {
	hist, db := newTestHistory(t, 5)

	item := &model.Item{
		Barcode:      "4000001",
		Name:         "Signet Ring",
		Price:        decimal.RequireFromString("250.00"),
		WarehouseQty: 5,
	}
	require.NoError(t, hist.Execute(action.NewAddItem(item)))
	require.NoError(t, hist.Execute(action.NewEditItem(item.ID, item.Name, map[string]interface{}{
		"name": "Signet Ring XL",
	})))

	var got model.Item
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, "Signet Ring XL", got.Name)

	// Undo the edit, then the insert.
	require.NoError(t, hist.Undo())
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, "Signet Ring", got.Name, "undo restores the previous field values")

	require.NoError(t, hist.Undo())
	err := db.First(&got, "id = ?", item.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "undoing the insert leaves no trace")

	// Redo both; the row comes back under the same id with the edit
	// applied on top.
	require.NoError(t, hist.Redo())
	require.NoError(t, hist.Redo())
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, "Signet Ring XL", got.Name)
	assert.Equal(t, "4000001", got.Barcode)
}

func TestNewActionMakesRedoUnreachable(t *testing.T) {
	hist, _ := newTestHistory(t, 5)

	require.NoError(t, hist.Execute(&scriptedAction{name: "first"}))
	require.NoError(t, hist.Execute(&scriptedAction{name: "second"}))
	require.NoError(t, hist.Undo())

	desc, ok := hist.RedoDescription()
	require.True(t, ok)
	assert.Equal(t, "second", desc)

	require.NoError(t, hist.Execute(&scriptedAction{name: "third"}))
	assert.False(t, hist.CanRedo(), "recording truncates the redo tail for good")
}

func TestEvictionDropsOldestUndo(t *testing.T) {
	hist, db := newTestHistory(t, 3)

	items := make([]*model.Item, 4)
	for i, name := range []string{"A", "B", "C", "D"} {
		items[i] = &model.Item{Name: name, Price: decimal.NewFromInt(10)}
		require.NoError(t, hist.Execute(action.NewAddItem(items[i])))
	}

	// Three undos exhaust the ledger; the first insert is out of reach.
	require.NoError(t, hist.Undo())
	require.NoError(t, hist.Undo())
	require.NoError(t, hist.Undo())
	assert.ErrorIs(t, hist.Undo(), ErrNothingToUndo)

	var count int64
	db.Model(&model.Item{}).Count(&count)
	assert.EqualValues(t, 1, count, "the evicted action's row survives")

	var got model.Item
	require.NoError(t, db.First(&got, "id = ?", items[0].ID).Error)
	assert.Equal(t, "A", got.Name)
}

func TestFailedUndoKeepsCursor(t *testing.T) {
	hist, _ := newTestHistory(t, 3)

	boom := errors.New("undo boom")
	a := &scriptedAction{name: "sticky", failUndo: map[int]error{1: boom}}
	require.NoError(t, hist.Execute(a))

	err := hist.Undo()
	assert.ErrorIs(t, err, boom)
	assert.True(t, hist.CanUndo(), "a failed undo leaves the entry applied")

	require.NoError(t, hist.Undo(), "undo works once the failure clears")
	assert.False(t, hist.CanUndo())
}

func TestFailedRedoKeepsEntryReachable(t *testing.T) {
	hist, _ := newTestHistory(t, 3)

	boom := errors.New("redo boom")
	a := &scriptedAction{name: "flaky", failExec: map[int]error{2: boom}}
	require.NoError(t, hist.Execute(a))
	require.NoError(t, hist.Undo())

	err := hist.Redo()
	assert.ErrorIs(t, err, boom, "the redo failure reaches the caller")
	assert.True(t, hist.CanRedo(), "the entry stays ahead of the cursor")

	desc, ok := hist.RedoDescription()
	require.True(t, ok)
	assert.Equal(t, "flaky", desc)

	require.NoError(t, hist.Redo(), "a later redo may succeed")
	assert.False(t, hist.CanRedo())
	assert.True(t, hist.CanUndo())
}

func TestStateSnapshot(t *testing.T) {
	hist, _ := newTestHistory(t, 3)

	st := hist.State()
	assert.False(t, st.CanUndo)
	assert.False(t, st.CanRedo)
	assert.Equal(t, 3, st.Limit)
	assert.Empty(t, st.UndoDescription)

	require.NoError(t, hist.Execute(&scriptedAction{name: "add ring"}))
	require.NoError(t, hist.Execute(&scriptedAction{name: "edit ring"}))
	require.NoError(t, hist.Undo())

	st = hist.State()
	assert.True(t, st.CanUndo)
	assert.True(t, st.CanRedo)
	assert.Equal(t, "add ring", st.UndoDescription)
	assert.Equal(t, "edit ring", st.RedoDescription)
	assert.Equal(t, 2, st.Depth)
}
