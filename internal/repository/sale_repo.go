package repository

import (
	"time"

	"go-jewelry-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository reads the sales ledger. Rows are written by the sale
// action and removed only by its undo.
type SaleRepository interface {
	FindByID(id uuid.UUID) (*model.Sale, error)
	List(from, to *time.Time, shopID *uuid.UUID) ([]model.Sale, error)
	CountByItem(itemID uuid.UUID) (int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Item").Preload("Shop").First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) List(from, to *time.Time, shopID *uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.Preload("Item").Preload("Shop").Order("sold_at DESC")
	if from != nil {
		q = q.Where("sold_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("sold_at <= ?", *to)
	}
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}
	err := q.Find(&sales).Error
	return sales, err
}

func (r *saleRepo) CountByItem(itemID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Where("item_id = ?", itemID).Count(&count).Error
	return count, err
}
