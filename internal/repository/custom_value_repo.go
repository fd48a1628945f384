package repository

import (
	"go-jewelry-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomValueRepository interface {
	Create(v *model.CustomValue) error
	FindByKind(kind string) ([]model.CustomValue, error)
	Exists(kind, value string) (bool, error)
	Delete(id uuid.UUID) error
}

type customValueRepo struct {
	db *gorm.DB
}

func NewCustomValueRepo(db *gorm.DB) CustomValueRepository {
	return &customValueRepo{db}
}

func (r *customValueRepo) Create(v *model.CustomValue) error {
	return r.db.Create(v).Error
}

func (r *customValueRepo) FindByKind(kind string) ([]model.CustomValue, error) {
	var values []model.CustomValue
	err := r.db.Where("kind = ?", kind).Order("value ASC").Find(&values).Error
	return values, err
}

func (r *customValueRepo) Exists(kind, value string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CustomValue{}).
		Where("kind = ? AND value = ?", kind, value).
		Count(&count).Error
	return count > 0, err
}

func (r *customValueRepo) Delete(id uuid.UUID) error {
	res := r.db.Where("id = ?", id).Delete(&model.CustomValue{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
