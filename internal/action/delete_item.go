package action

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/model"
)

// DeleteItem removes an item after snapshotting it inside the
// transaction, so undo re-inserts identical column values. Deletion is
// refused while shop stock or sale records still reference the item;
// empty allocation rows (quantity zero) are swept along and restored on
// undo.
type DeleteItem struct {
	ItemID uuid.UUID
	Name   string // label only; the authoritative snapshot is taken in Execute

	snapshot  model.Item
	emptyRows []model.ShopStock
}

func NewDeleteItem(itemID uuid.UUID, name string) *DeleteItem {
	return &DeleteItem{ItemID: itemID, Name: name}
}

func (a *DeleteItem) Description() string {
	return fmt.Sprintf("Delete item %q", a.Name)
}

func (a *DeleteItem) Execute(tx *gorm.DB) error {
	var item model.Item
	if err := tx.First(&item, "id = ?", a.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFoundf("item %s", a.ItemID)
		}
		return apperror.Persistence(err)
	}

	var stocked int64
	if err := tx.Model(&model.ShopStock{}).
		Where("item_id = ? AND quantity > 0", a.ItemID).
		Count(&stocked).Error; err != nil {
		return apperror.Persistence(err)
	}
	if stocked > 0 {
		return apperror.Validationf("item %q still stocked in %d shop(s); return it to the warehouse first", item.Name, stocked)
	}

	var sold int64
	if err := tx.Model(&model.Sale{}).
		Where("item_id = ?", a.ItemID).
		Count(&sold).Error; err != nil {
		return apperror.Persistence(err)
	}
	if sold > 0 {
		return apperror.Validationf("item %q has %d sale record(s)", item.Name, sold)
	}

	if err := tx.Where("item_id = ?", a.ItemID).Find(&a.emptyRows).Error; err != nil {
		return apperror.Persistence(err)
	}
	if err := tx.Where("item_id = ?", a.ItemID).Delete(&model.ShopStock{}).Error; err != nil {
		return apperror.Persistence(err)
	}
	if err := tx.Where("id = ?", a.ItemID).Delete(&model.Item{}).Error; err != nil {
		return apperror.Persistence(err)
	}
	a.snapshot = item
	return nil
}

func (a *DeleteItem) Undo(tx *gorm.DB) error {
	row := a.snapshot
	if err := tx.Create(&row).Error; err != nil {
		return apperror.Persistence(err)
	}
	for i := range a.emptyRows {
		stock := a.emptyRows[i]
		if err := tx.Create(&stock).Error; err != nil {
			return apperror.Persistence(err)
		}
	}
	return nil
}
