package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/action"
	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/internal/ws"
	"go-jewelry-pos/pkg/validator"
)

// SaleService registers sales at the till. A sale decrements the
// shop's stock and appends to the sales log in one transaction, and it
// goes through the action log so the most recent sales can be undone.
type SaleService interface {
	Sell(req *SellRequest) (*model.Sale, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
	ListSales(from, to *time.Time, shopID *uuid.UUID) ([]model.Sale, error)
}

// SellRequest identifies the item either by id or by scanned barcode.
type SellRequest struct {
	ItemID    uuid.UUID `json:"item_id"`
	Barcode   string    `json:"barcode" validate:"omitempty,barcode"`
	ShopID    uuid.UUID `json:"shop_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
	UnitPrice string    `json:"unit_price"`
}

type saleService struct {
	itemRepo repository.ItemRepository
	shopRepo repository.ShopRepository
	saleRepo repository.SaleRepository
	history  HistoryService
	wsHub    ws.Notifier
}

func NewSaleService(
	itemRepo repository.ItemRepository,
	shopRepo repository.ShopRepository,
	saleRepo repository.SaleRepository,
	history HistoryService,
	hub ws.Notifier,
) SaleService {
	return &saleService{
		itemRepo: itemRepo,
		shopRepo: shopRepo,
		saleRepo: saleRepo,
		history:  history,
		wsHub:    hub,
	}
}

func (s *saleService) Sell(req *SellRequest) (*model.Sale, error) {
	// 1. Validate and resolve the item. The till usually sends a
	// scanned barcode; the item id form is for the catalog screen.
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validationf("field '%s' failed on '%s'", errs[0].FailedField, errs[0].Tag)
	}
	item, err := s.resolveItem(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.shopRepo.FindByID(req.ShopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("shop %s not found", req.ShopID)
		}
		return nil, apperror.Persistence(err)
	}

	// 2. Fill in defaults: quantity 1, unit price from the catalog.
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	price := item.Price
	if req.UnitPrice != "" {
		price, err = parseDecimal("unit_price", req.UnitPrice, false)
		if err != nil {
			return nil, err
		}
	}

	// 3. Run through the action log. The action holds the created row
	// so this service can hand it back.
	sale := action.NewSale(item.ID, req.ShopID, item.Name, qty, price)
	if err := s.history.Execute(sale); err != nil {
		return nil, err
	}

	record := sale.Record()
	s.notifySale(item, record)
	return record, nil
}

func (s *saleService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("sale %s not found", id)
		}
		return nil, apperror.Persistence(err)
	}
	return sale, nil
}

func (s *saleService) ListSales(from, to *time.Time, shopID *uuid.UUID) ([]model.Sale, error) {
	sales, err := s.saleRepo.List(from, to, shopID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return sales, nil
}

func (s *saleService) resolveItem(req *SellRequest) (*model.Item, error) {
	if req.Barcode != "" {
		item, err := s.itemRepo.FindByBarcode(req.Barcode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFoundf("no item with barcode %s", req.Barcode)
			}
			return nil, apperror.Persistence(err)
		}
		return item, nil
	}
	if req.ItemID == uuid.Nil {
		return nil, apperror.Validationf("either item_id or barcode is required")
	}
	item, err := s.itemRepo.FindByID(req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("item %s not found", req.ItemID)
		}
		return nil, apperror.Persistence(err)
	}
	return item, nil
}

func (s *saleService) notifySale(item *model.Item, sale *model.Sale) {
	if s.wsHub == nil || sale == nil {
		return
	}
	s.wsHub.Notify(ws.Event{
		Type:    "sale",
		Action:  "sale_registered",
		Message: fmt.Sprintf("%d x %s", sale.Quantity, item.Name),
		Data: map[string]interface{}{
			"id":          sale.ID,
			"item_id":     sale.ItemID,
			"shop_id":     sale.ShopID,
			"quantity":    sale.Quantity,
			"total_price": sale.TotalPrice,
		},
	})
}
