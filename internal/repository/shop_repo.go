package repository

import (
	"go-jewelry-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopRepository interface {
	Create(shop *model.Shop) error
	FindByID(id uuid.UUID) (*model.Shop, error)
	FindByName(name string) (*model.Shop, error)
	FindAll() ([]model.Shop, error)
}

type shopRepo struct {
	db *gorm.DB
}

func NewShopRepo(db *gorm.DB) ShopRepository {
	return &shopRepo{db}
}

func (r *shopRepo) Create(shop *model.Shop) error {
	return r.db.Create(shop).Error
}

func (r *shopRepo) FindByID(id uuid.UUID) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.First(&shop, "id = ?", id).Error
	return &shop, err
}

func (r *shopRepo) FindByName(name string) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.First(&shop, "name = ?", name).Error
	return &shop, err
}

func (r *shopRepo) FindAll() ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.Order("name ASC").Find(&shops).Error
	return shops, err
}
