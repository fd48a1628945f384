package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/internal/ws"
	"go-jewelry-pos/pkg/validator"
)

// TransferService moves units between the warehouse ledger and the
// per-shop ledgers. Both directions run in a single transaction with a
// guarded decrement, so a failed move never leaves units in flight.
// Transfers are not undoable; the reverse direction is always
// available instead.
type TransferService interface {
	CreateShop(req *CreateShopRequest) (*model.Shop, error)
	ListShops() ([]model.Shop, error)
	ShopStock(shopID uuid.UUID) ([]model.ShopStock, error)
	MoveToShop(req *TransferRequest) (*model.ShopStock, error)
	ReturnToWarehouse(req *TransferRequest) (*model.ShopStock, error)
}

type CreateShopRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// TransferRequest identifies the item either by id or by scanned
// barcode, same as the till.
type TransferRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Barcode  string    `json:"barcode" validate:"omitempty,barcode"`
	ShopID   uuid.UUID `json:"shop_id" validate:"uuid_required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

type transferService struct {
	db        *gorm.DB
	itemRepo  repository.ItemRepository
	shopRepo  repository.ShopRepository
	stockRepo repository.ShopStockRepository
	wsHub     ws.Notifier
}

func NewTransferService(
	db *gorm.DB,
	itemRepo repository.ItemRepository,
	shopRepo repository.ShopRepository,
	stockRepo repository.ShopStockRepository,
	hub ws.Notifier,
) TransferService {
	return &transferService{
		db:        db,
		itemRepo:  itemRepo,
		shopRepo:  shopRepo,
		stockRepo: stockRepo,
		wsHub:     hub,
	}
}

func (s *transferService) CreateShop(req *CreateShopRequest) (*model.Shop, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validationf("field '%s' failed on '%s'", errs[0].FailedField, errs[0].Tag)
	}
	if _, err := s.shopRepo.FindByName(req.Name); err == nil {
		return nil, apperror.Conflictf("shop %q already exists", req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Persistence(err)
	}
	shop := &model.Shop{Name: req.Name}
	if err := s.shopRepo.Create(shop); err != nil {
		return nil, apperror.Persistence(err)
	}
	return shop, nil
}

func (s *transferService) ListShops() ([]model.Shop, error) {
	shops, err := s.shopRepo.FindAll()
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return shops, nil
}

func (s *transferService) ShopStock(shopID uuid.UUID) ([]model.ShopStock, error) {
	if _, err := s.findShop(shopID); err != nil {
		return nil, err
	}
	rows, err := s.stockRepo.ByShop(shopID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return rows, nil
}

func (s *transferService) MoveToShop(req *TransferRequest) (*model.ShopStock, error) {
	item, shop, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	// Guarded decrement first: if the warehouse cannot cover the
	// quantity nothing is written.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.TakeWarehouseStock(tx, item.ID, req.Quantity); err != nil {
			return err
		}
		return repository.AddShopStock(tx, req.ShopID, item.ID, req.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.notifyTransfer("moved_to_shop", item, shop, req.Quantity)
	return s.stockRow(req.ShopID, item.ID)
}

func (s *transferService) ReturnToWarehouse(req *TransferRequest) (*model.ShopStock, error) {
	item, shop, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.TakeShopStock(tx, req.ShopID, item.ID, req.Quantity); err != nil {
			return err
		}
		return repository.AddWarehouseStock(tx, item.ID, req.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.notifyTransfer("returned_to_warehouse", item, shop, req.Quantity)
	return s.stockRow(req.ShopID, item.ID)
}

func (s *transferService) resolve(req *TransferRequest) (*model.Item, *model.Shop, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, nil, apperror.Validationf("field '%s' failed on '%s'", errs[0].FailedField, errs[0].Tag)
	}
	var (
		item *model.Item
		err  error
	)
	switch {
	case req.Barcode != "":
		item, err = s.itemRepo.FindByBarcode(req.Barcode)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFoundf("no item with barcode %s", req.Barcode)
		}
	case req.ItemID != uuid.Nil:
		item, err = s.itemRepo.FindByID(req.ItemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFoundf("item %s not found", req.ItemID)
		}
	default:
		return nil, nil, apperror.Validationf("either item_id or barcode is required")
	}
	if err != nil {
		return nil, nil, apperror.Persistence(err)
	}
	shop, err := s.findShop(req.ShopID)
	if err != nil {
		return nil, nil, err
	}
	return item, shop, nil
}

func (s *transferService) findShop(id uuid.UUID) (*model.Shop, error) {
	shop, err := s.shopRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("shop %s not found", id)
		}
		return nil, apperror.Persistence(err)
	}
	return shop, nil
}

// stockRow reloads the affected row after a transfer. A return can
// leave it at zero; the row is kept so the shop's assortment stays
// visible.
func (s *transferService) stockRow(shopID, itemID uuid.UUID) (*model.ShopStock, error) {
	row, err := s.stockRepo.Find(shopID, itemID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return row, nil
}

func (s *transferService) notifyTransfer(event string, item *model.Item, shop *model.Shop, qty int) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.Notify(ws.Event{
		Type:    "stock_transfer",
		Action:  event,
		Message: fmt.Sprintf("%d x %s (%s)", qty, item.Name, shop.Name),
		Data: map[string]interface{}{
			"item_id":  item.ID,
			"shop_id":  shop.ID,
			"quantity": qty,
		},
	})
}
