package action

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/barcode"
	"go-jewelry-pos/internal/model"
)

// AddItem inserts a new catalog item. A barcode left empty is allocated
// from the counter inside the same transaction and, once assigned,
// survives undo/redo cycles. Undo removes the row by the id captured
// during Execute.
type AddItem struct {
	Item *model.Item
	id   uuid.UUID
}

// NewAddItem wraps a prepared item row. The caller validates fields and
// checks barcode uniqueness before recording the action.
func NewAddItem(item *model.Item) *AddItem {
	return &AddItem{Item: item}
}

func (a *AddItem) Description() string {
	if a.Item.Barcode == "" {
		return fmt.Sprintf("Add item %q", a.Item.Name)
	}
	return fmt.Sprintf("Add item %q (%s)", a.Item.Name, a.Item.Barcode)
}

func (a *AddItem) Execute(tx *gorm.DB) error {
	if a.Item.Barcode == "" {
		code, err := barcode.NextCode(tx)
		if err != nil {
			return err
		}
		a.Item.Barcode = code
	}
	// On redo the id from the first run is still set and the create
	// hook keeps it, so later actions referencing the item stay valid.
	a.Item.ID = a.id
	if err := tx.Create(a.Item).Error; err != nil {
		return apperror.Persistence(err)
	}
	a.id = a.Item.ID
	return nil
}

func (a *AddItem) Undo(tx *gorm.DB) error {
	res := tx.Where("id = ?", a.id).Delete(&model.Item{})
	if res.Error != nil {
		return apperror.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundf("item %s no longer exists", a.id)
	}
	return nil
}
