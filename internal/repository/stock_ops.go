package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/model"
)

// Transaction helpers shared by the sale action and the transfer
// engine. They are the only writers of the two quantity ledgers, so the
// guard logic lives in exactly one place. Each guard rides in the
// UPDATE itself; zero affected rows means the source was absent or too
// small, never a torn decrement.

// TakeShopStock removes qty units from a shop allocation.
func TakeShopStock(tx *gorm.DB, shopID, itemID uuid.UUID, qty int) error {
	if qty < 1 {
		return apperror.Validationf("quantity must be at least 1, got %d", qty)
	}
	res := tx.Model(&model.ShopStock{}).
		Where("shop_id = ? AND item_id = ? AND quantity >= ?", shopID, itemID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return apperror.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: shop stock below %d", apperror.ErrInsufficientStock, qty)
	}
	return nil
}

// AddShopStock adds qty units to a shop allocation, creating the row on
// first delivery. Existing rows keep their identity; only quantity and
// updated_at move.
func AddShopStock(tx *gorm.DB, shopID, itemID uuid.UUID, qty int) error {
	if qty < 1 {
		return apperror.Validationf("quantity must be at least 1, got %d", qty)
	}
	row := model.ShopStock{ShopID: shopID, ItemID: itemID, Quantity: qty}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", qty),
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return apperror.Persistence(err)
	}
	return nil
}

// TakeWarehouseStock removes qty units from the central pool.
func TakeWarehouseStock(tx *gorm.DB, itemID uuid.UUID, qty int) error {
	if qty < 1 {
		return apperror.Validationf("quantity must be at least 1, got %d", qty)
	}
	res := tx.Model(&model.Item{}).
		Where("id = ? AND warehouse_qty >= ?", itemID, qty).
		Update("warehouse_qty", gorm.Expr("warehouse_qty - ?", qty))
	if res.Error != nil {
		return apperror.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: warehouse stock below %d", apperror.ErrInsufficientStock, qty)
	}
	return nil
}

// AddWarehouseStock returns qty units to the central pool.
func AddWarehouseStock(tx *gorm.DB, itemID uuid.UUID, qty int) error {
	if qty < 1 {
		return apperror.Validationf("quantity must be at least 1, got %d", qty)
	}
	res := tx.Model(&model.Item{}).
		Where("id = ?", itemID).
		Update("warehouse_qty", gorm.Expr("warehouse_qty + ?", qty))
	if res.Error != nil {
		return apperror.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundf("item %s", itemID)
	}
	return nil
}
