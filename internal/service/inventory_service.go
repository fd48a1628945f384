package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/action"
	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/barcode"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/internal/ws"
	"go-jewelry-pos/pkg/validator"
)

// InventoryService owns the item catalog. Every write goes through the
// action log so it can be undone; reads hit the repositories directly.
type InventoryService interface {
	CreateItem(req *CreateItemRequest) (*model.Item, error)
	UpdateItem(id uuid.UUID, req *UpdateItemRequest) (*model.Item, error)
	DeleteItem(id uuid.UUID) error
	GetItem(id uuid.UUID) (*ItemDetail, error)
	GetItemByBarcode(code string) (*model.Item, error)
	ListItems(search, category string) ([]model.Item, error)
	BarcodeDigits(id uuid.UUID) (*BarcodeDigits, error)
	ListCustomValues(kind string) ([]model.CustomValue, error)
	AddCustomValue(req *CustomValueRequest) (*model.CustomValue, error)
	DeleteCustomValue(id uuid.UUID) error
}

type CreateItemRequest struct {
	Barcode      string `json:"barcode" validate:"omitempty,barcode"`
	Name         string `json:"name" validate:"required,max=255"`
	Description  string `json:"description"`
	Category     string `json:"category" validate:"max=100"`
	MetalType    string `json:"metal_type" validate:"max=100"`
	StoneType    string `json:"stone_type" validate:"max=100"`
	Price        string `json:"price" validate:"required"`
	Cost         string `json:"cost"`
	WeightGrams  string `json:"weight_grams"`
	WarehouseQty int    `json:"warehouse_qty" validate:"gte=0"`
}

// UpdateItemRequest carries only the fields the caller wants changed.
// The barcode is deliberately absent: it is fixed at creation because
// printed labels reference it.
type UpdateItemRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	MetalType    *string `json:"metal_type"`
	StoneType    *string `json:"stone_type"`
	Price        *string `json:"price"`
	Cost         *string `json:"cost"`
	WeightGrams  *string `json:"weight_grams"`
	WarehouseQty *int    `json:"warehouse_qty"`
}

type CustomValueRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=category metal_type stone_type"`
	Value string `json:"value" validate:"required,max=100"`
}

// ItemDetail is an item plus where its units currently sit.
type ItemDetail struct {
	model.Item
	AllocatedQty int `json:"allocated_qty"`
	TotalQty     int `json:"total_qty"`
}

// BarcodeDigits is what the label printer needs for one item.
type BarcodeDigits struct {
	Barcode    string `json:"barcode"`
	CheckDigit int    `json:"check_digit"`
}

type inventoryService struct {
	itemRepo  repository.ItemRepository
	stockRepo repository.ShopStockRepository
	valueRepo repository.CustomValueRepository
	history   HistoryService
	wsHub     ws.Notifier
}

func NewInventoryService(
	itemRepo repository.ItemRepository,
	stockRepo repository.ShopStockRepository,
	valueRepo repository.CustomValueRepository,
	history HistoryService,
	hub ws.Notifier,
) InventoryService {
	return &inventoryService{
		itemRepo:  itemRepo,
		stockRepo: stockRepo,
		valueRepo: valueRepo,
		history:   history,
		wsHub:     hub,
	}
}

func (s *inventoryService) CreateItem(req *CreateItemRequest) (*model.Item, error) {
	// 1. Validate the payload.
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validationf("field '%s' failed on '%s'", errs[0].FailedField, errs[0].Tag)
	}
	price, err := parseDecimal("price", req.Price, true)
	if err != nil {
		return nil, err
	}
	cost, err := parseDecimal("cost", req.Cost, false)
	if err != nil {
		return nil, err
	}
	weight, err := parseDecimal("weight_grams", req.WeightGrams, false)
	if err != nil {
		return nil, err
	}

	// 2. Reject duplicate barcodes up front; the unique index is the
	// backstop under concurrency.
	if req.Barcode != "" {
		if _, err := s.itemRepo.FindByBarcode(req.Barcode); err == nil {
			return nil, apperror.Conflictf("barcode %s already exists", req.Barcode)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Persistence(err)
		}
	}

	item := &model.Item{
		Barcode:      req.Barcode,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		MetalType:    req.MetalType,
		StoneType:    req.StoneType,
		Price:        price,
		Cost:         cost,
		WeightGrams:  weight,
		WarehouseQty: req.WarehouseQty,
	}

	// 3. Route through the action log so the creation is undoable.
	if err := s.history.Execute(action.NewAddItem(item)); err != nil {
		return nil, err
	}

	s.notifyItem("item_created", item)
	return item, nil
}

func (s *inventoryService) UpdateItem(id uuid.UUID, req *UpdateItemRequest) (*model.Item, error) {
	existing, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("item %s not found", id)
		}
		return nil, apperror.Persistence(err)
	}

	// 1. Translate the partial payload into a column map. Only touched
	// fields are captured for undo.
	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperror.Validationf("name must not be empty")
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.MetalType != nil {
		updates["metal_type"] = *req.MetalType
	}
	if req.StoneType != nil {
		updates["stone_type"] = *req.StoneType
	}
	if req.Price != nil {
		price, err := parseDecimal("price", *req.Price, true)
		if err != nil {
			return nil, err
		}
		updates["price"] = price
	}
	if req.Cost != nil {
		cost, err := parseDecimal("cost", *req.Cost, false)
		if err != nil {
			return nil, err
		}
		updates["cost"] = cost
	}
	if req.WeightGrams != nil {
		weight, err := parseDecimal("weight_grams", *req.WeightGrams, false)
		if err != nil {
			return nil, err
		}
		updates["weight_grams"] = weight
	}
	if req.WarehouseQty != nil {
		if *req.WarehouseQty < 0 {
			return nil, apperror.Validationf("warehouse_qty must not be negative")
		}
		updates["warehouse_qty"] = *req.WarehouseQty
	}

	// 2. Apply through the action log.
	if err := s.history.Execute(action.NewEditItem(existing.ID, existing.Name, updates)); err != nil {
		return nil, err
	}

	updated, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	s.notifyItem("item_updated", updated)
	return updated, nil
}

func (s *inventoryService) DeleteItem(id uuid.UUID) error {
	existing, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFoundf("item %s not found", id)
		}
		return apperror.Persistence(err)
	}

	if err := s.history.Execute(action.NewDeleteItem(existing.ID, existing.Name)); err != nil {
		return err
	}

	s.notifyItem("item_deleted", existing)
	return nil
}

func (s *inventoryService) GetItem(id uuid.UUID) (*ItemDetail, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("item %s not found", id)
		}
		return nil, apperror.Persistence(err)
	}
	allocated, err := s.stockRepo.TotalAllocated(id)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return &ItemDetail{
		Item:         *item,
		AllocatedQty: allocated,
		TotalQty:     item.WarehouseQty + allocated,
	}, nil
}

func (s *inventoryService) GetItemByBarcode(code string) (*model.Item, error) {
	item, err := s.itemRepo.FindByBarcode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("no item with barcode %s", code)
		}
		return nil, apperror.Persistence(err)
	}
	return item, nil
}

func (s *inventoryService) ListItems(search, category string) ([]model.Item, error) {
	items, err := s.itemRepo.List(search, category)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return items, nil
}

func (s *inventoryService) BarcodeDigits(id uuid.UUID) (*BarcodeDigits, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("item %s not found", id)
		}
		return nil, apperror.Persistence(err)
	}
	digit, err := barcode.CheckDigit(item.Barcode)
	if err != nil {
		return nil, err
	}
	return &BarcodeDigits{Barcode: item.Barcode, CheckDigit: digit}, nil
}

func (s *inventoryService) ListCustomValues(kind string) ([]model.CustomValue, error) {
	switch kind {
	case model.KindCategory, model.KindMetalType, model.KindStoneType:
	default:
		return nil, apperror.Validationf("unknown custom value kind %q", kind)
	}
	values, err := s.valueRepo.FindByKind(kind)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return values, nil
}

func (s *inventoryService) AddCustomValue(req *CustomValueRequest) (*model.CustomValue, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validationf("field '%s' failed on '%s'", errs[0].FailedField, errs[0].Tag)
	}
	exists, err := s.valueRepo.Exists(req.Kind, req.Value)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if exists {
		return nil, apperror.Conflictf("%s %q already exists", req.Kind, req.Value)
	}
	value := &model.CustomValue{Kind: req.Kind, Value: req.Value}
	if err := s.valueRepo.Create(value); err != nil {
		return nil, apperror.Persistence(err)
	}
	return value, nil
}

func (s *inventoryService) DeleteCustomValue(id uuid.UUID) error {
	if err := s.valueRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFoundf("custom value %s not found", id)
		}
		return apperror.Persistence(err)
	}
	return nil
}

func (s *inventoryService) notifyItem(event string, item *model.Item) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.Notify(ws.Event{
		Type:    "inventory",
		Action:  event,
		Message: fmt.Sprintf("%s: %s", event, item.Name),
		Data: map[string]interface{}{
			"id":            item.ID,
			"barcode":       item.Barcode,
			"name":          item.Name,
			"warehouse_qty": item.WarehouseQty,
		},
	})
}
