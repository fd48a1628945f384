package repository

import (
	"go-jewelry-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository reads the item master. Writes go through the action
// variants so every mutation stays undoable.
type ItemRepository interface {
	FindByID(id uuid.UUID) (*model.Item, error)
	FindByBarcode(code string) (*model.Item, error)
	List(search, category string) ([]model.Item, error)
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := r.db.First(&item, "id = ?", id).Error
	return &item, err
}

func (r *itemRepo) FindByBarcode(code string) (*model.Item, error) {
	var item model.Item
	err := r.db.First(&item, "barcode = ?", code).Error
	return &item, err
}

func (r *itemRepo) List(search, category string) ([]model.Item, error) {
	var items []model.Item
	q := r.db.Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR barcode LIKE ?", like, like)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&items).Error
	return items, err
}
