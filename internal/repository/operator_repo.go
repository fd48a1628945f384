package repository

import (
	"go-jewelry-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperatorRepository interface {
	Create(op *model.Operator) error
	FindByID(id uuid.UUID) (*model.Operator, error)
	FindByUsername(username string) (*model.Operator, error)
	Update(op *model.Operator) error
	Count() (int64, error)
}

type operatorRepo struct {
	db *gorm.DB
}

func NewOperatorRepo(db *gorm.DB) OperatorRepository {
	return &operatorRepo{db}
}

func (r *operatorRepo) Create(op *model.Operator) error {
	return r.db.Create(op).Error
}

func (r *operatorRepo) FindByID(id uuid.UUID) (*model.Operator, error) {
	var op model.Operator
	err := r.db.First(&op, "id = ?", id).Error
	return &op, err
}

func (r *operatorRepo) FindByUsername(username string) (*model.Operator, error) {
	var op model.Operator
	err := r.db.First(&op, "username = ?", username).Error
	return &op, err
}

func (r *operatorRepo) Update(op *model.Operator) error {
	return r.db.Save(op).Error
}

func (r *operatorRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Operator{}).Count(&count).Error
	return count, err
}
