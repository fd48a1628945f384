package repository

import (
	"go-jewelry-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopStockRepository reads shop allocations. Quantity changes go
// through the stock_ops helpers inside engine transactions.
type ShopStockRepository interface {
	ByShop(shopID uuid.UUID) ([]model.ShopStock, error)
	StockedByShop(shopID uuid.UUID) ([]model.ShopStock, error)
	Find(shopID, itemID uuid.UUID) (*model.ShopStock, error)
	TotalAllocated(itemID uuid.UUID) (int, error)
}

type shopStockRepo struct {
	db *gorm.DB
}

func NewShopStockRepo(db *gorm.DB) ShopStockRepository {
	return &shopStockRepo{db}
}

func (r *shopStockRepo) ByShop(shopID uuid.UUID) ([]model.ShopStock, error) {
	var rows []model.ShopStock
	err := r.db.Preload("Item").
		Where("shop_id = ?", shopID).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}

// StockedByShop returns only rows holding stock; this is the audit
// snapshot source.
func (r *shopStockRepo) StockedByShop(shopID uuid.UUID) ([]model.ShopStock, error) {
	var rows []model.ShopStock
	err := r.db.Preload("Item").
		Where("shop_id = ? AND quantity > 0", shopID).
		Find(&rows).Error
	return rows, err
}

func (r *shopStockRepo) Find(shopID, itemID uuid.UUID) (*model.ShopStock, error) {
	var row model.ShopStock
	err := r.db.First(&row, "shop_id = ? AND item_id = ?", shopID, itemID).Error
	return &row, err
}

// TotalAllocated sums an item's stock across all shops.
func (r *shopStockRepo) TotalAllocated(itemID uuid.UUID) (int, error) {
	var total int
	err := r.db.Model(&model.ShopStock{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
