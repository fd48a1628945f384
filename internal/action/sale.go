package action

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
)

// Sale writes one sales-ledger row and takes the sold quantity out of
// shop stock, failing when the shop holds less than requested. Undo
// deletes the ledger row and puts the quantity back, recreating the
// allocation row if some external path removed it.
type Sale struct {
	ItemID    uuid.UUID
	ShopID    uuid.UUID
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal

	record *model.Sale
}

func NewSale(itemID, shopID uuid.UUID, itemName string, qty int, unitPrice decimal.Decimal) *Sale {
	return &Sale{ItemID: itemID, ShopID: shopID, ItemName: itemName, Quantity: qty, UnitPrice: unitPrice}
}

func (a *Sale) Description() string {
	return fmt.Sprintf("Sale %d x %q", a.Quantity, a.ItemName)
}

// Record returns the ledger row written by the latest Execute.
func (a *Sale) Record() *model.Sale {
	return a.record
}

func (a *Sale) Execute(tx *gorm.DB) error {
	if a.Quantity < 1 {
		return apperror.Validationf("sale quantity must be at least 1, got %d", a.Quantity)
	}
	if a.UnitPrice.IsNegative() {
		return apperror.Validationf("unit price cannot be negative")
	}

	if err := repository.TakeShopStock(tx, a.ShopID, a.ItemID, a.Quantity); err != nil {
		return err
	}

	sale := model.Sale{
		ItemID:     a.ItemID,
		ShopID:     a.ShopID,
		Quantity:   a.Quantity,
		UnitPrice:  a.UnitPrice,
		TotalPrice: a.UnitPrice.Mul(decimal.NewFromInt(int64(a.Quantity))),
		SoldAt:     time.Now(),
	}
	if err := tx.Create(&sale).Error; err != nil {
		return apperror.Persistence(err)
	}
	a.record = &sale
	return nil
}

func (a *Sale) Undo(tx *gorm.DB) error {
	if a.record == nil {
		return apperror.Validationf("sale was never executed")
	}
	res := tx.Where("id = ?", a.record.ID).Delete(&model.Sale{})
	if res.Error != nil {
		return apperror.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundf("sale record %s no longer exists", a.record.ID)
	}
	return repository.AddShopStock(tx, a.ShopID, a.ItemID, a.Quantity)
}
