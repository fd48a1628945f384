package action

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/model"
)

// EditItem applies a set of column updates to one item. The displaced
// values are captured inside the transaction so undo re-applies exactly
// what the edit overwrote. Barcode is immutable and never editable.
type EditItem struct {
	ItemID  uuid.UUID
	Name    string // label only
	Updates map[string]interface{}

	prev map[string]interface{}
}

func NewEditItem(itemID uuid.UUID, name string, updates map[string]interface{}) *EditItem {
	return &EditItem{ItemID: itemID, Name: name, Updates: updates}
}

func (a *EditItem) Description() string {
	return fmt.Sprintf("Edit item %q", a.Name)
}

func (a *EditItem) Execute(tx *gorm.DB) error {
	if len(a.Updates) == 0 {
		return apperror.Validationf("no fields to update")
	}

	var item model.Item
	if err := tx.First(&item, "id = ?", a.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFoundf("item %s", a.ItemID)
		}
		return apperror.Persistence(err)
	}

	prev := make(map[string]interface{}, len(a.Updates))
	for col := range a.Updates {
		old, ok := itemColumn(&item, col)
		if !ok {
			return apperror.Validationf("field %q is not editable", col)
		}
		prev[col] = old
	}

	if err := tx.Model(&model.Item{}).Where("id = ?", a.ItemID).Updates(a.Updates).Error; err != nil {
		return apperror.Persistence(err)
	}
	a.prev = prev
	return nil
}

func (a *EditItem) Undo(tx *gorm.DB) error {
	res := tx.Model(&model.Item{}).Where("id = ?", a.ItemID).Updates(a.prev)
	if res.Error != nil {
		return apperror.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundf("item %s no longer exists", a.ItemID)
	}
	return nil
}

// itemColumn maps an editable column name to its current value. Barcode
// and the bookkeeping columns are deliberately absent.
func itemColumn(item *model.Item, col string) (interface{}, bool) {
	switch col {
	case "name":
		return item.Name, true
	case "description":
		return item.Description, true
	case "category":
		return item.Category, true
	case "metal_type":
		return item.MetalType, true
	case "stone_type":
		return item.StoneType, true
	case "price":
		return item.Price, true
	case "cost":
		return item.Cost, true
	case "weight_grams":
		return item.WeightGrams, true
	case "warehouse_qty":
		return item.WarehouseQty, true
	}
	return nil, false
}
