package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/internal/testutil"
)

type reportFixture struct {
	db      *gorm.DB
	reports ReportService
	shopA   *model.Shop
	shopB   *model.Shop
}

// newReportFixture seeds a small catalog: 12 of item A and 2 of item B
// overall, plus a single C left in a shop.
func newReportFixture(t *testing.T) *reportFixture {
	db := testutil.OpenDB(t)

	itemA := &model.Item{
		Barcode: "3000001", Name: "Wedding Band",
		Price: decimal.RequireFromString("100.00"), Cost: decimal.RequireFromString("60.00"),
		WarehouseQty: 10,
	}
	itemB := &model.Item{
		Barcode: "3000002", Name: "Pearl Studs",
		Price: decimal.RequireFromString("50.00"), Cost: decimal.RequireFromString("20.00"),
		WarehouseQty: 2,
	}
	itemC := &model.Item{
		Barcode: "3000003", Name: "Glass Charm",
		Price: decimal.RequireFromString("30.00"), Cost: decimal.RequireFromString("10.00"),
	}
	require.NoError(t, db.Create(&[]*model.Item{itemA, itemB, itemC}).Error)

	shopA := &model.Shop{Name: "Main Showroom"}
	shopB := &model.Shop{Name: "Mall Kiosk"}
	require.NoError(t, db.Create(shopA).Error)
	require.NoError(t, db.Create(shopB).Error)
	require.NoError(t, db.Create(&model.ShopStock{ShopID: shopA.ID, ItemID: itemA.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&model.ShopStock{ShopID: shopA.ID, ItemID: itemC.ID, Quantity: 1}).Error)

	return &reportFixture{
		db:      db,
		reports: NewReportService(repository.NewReportRepo(db)),
		shopA:   shopA,
		shopB:   shopB,
	}
}

func (f *reportFixture) addSale(t *testing.T, shop *model.Shop, qty int, total string, soldAt time.Time) {
	var item model.Item
	require.NoError(t, f.db.First(&item, "barcode = ?", "3000001").Error)
	require.NoError(t, f.db.Create(&model.Sale{
		ItemID:     item.ID,
		ShopID:     shop.ID,
		Quantity:   qty,
		UnitPrice:  item.Price,
		TotalPrice: decimal.RequireFromString(total),
		SoldAt:     soldAt,
	}).Error)
}

func TestValuation(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.reports.Valuation()
	require.NoError(t, err)

	assert.EqualValues(t, 3, report.ItemCount)
	assert.Equal(t, 12, report.WarehouseUnits)
	assert.Equal(t, 3, report.ShopUnits)
	assert.True(t, report.RetailValue.Equal(decimal.RequireFromString("1330")),
		"retail value covers warehouse and shop units, got %s", report.RetailValue)
	assert.True(t, report.CostValue.Equal(decimal.RequireFromString("770")))
	assert.True(t, report.PotentialProfit.Equal(decimal.RequireFromString("560")))
}

func TestLowStock(t *testing.T) {
	f := newReportFixture(t)

	// Threshold zero falls back to the default of 5, catching the two
	// items with 2 and 1 units on hand.
	rows, err := f.reports.LowStock(0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Glass Charm", rows[0].Name, "scarcest item first")
	assert.Equal(t, 1, rows[0].TotalQty)
	assert.Equal(t, "Pearl Studs", rows[1].Name)
	assert.Equal(t, 2, rows[1].TotalQty)

	rows, err = f.reports.LowStock(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Glass Charm", rows[0].Name)

	rows, err = f.reports.LowStock(100)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestSalesSummary(t *testing.T) {
	f := newReportFixture(t)

	now := time.Now()
	f.addSale(t, f.shopA, 2, "200.00", now.AddDate(0, 0, -1))
	f.addSale(t, f.shopB, 1, "100.00", now.AddDate(0, 0, -2))
	f.addSale(t, f.shopA, 1, "100.00", now.AddDate(0, 0, -40)) // outside the default window

	summary, err := f.reports.SalesSummary(time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.EqualValues(t, 2, summary.Records, "the 40-day-old sale is out of the default range")
	assert.Equal(t, 3, summary.Units)
	assert.True(t, summary.Revenue.Equal(decimal.RequireFromString("300")), "got %s", summary.Revenue)

	require.Len(t, summary.ByShop, 2)
	assert.Equal(t, "Main Showroom", summary.ByShop[0].ShopName, "shops come ordered by revenue")
	assert.True(t, summary.ByShop[0].Revenue.Equal(decimal.RequireFromString("200")))
	assert.True(t, summary.ByShop[1].Revenue.Equal(decimal.RequireFromString("100")))

	// An explicit range reaches the older sale.
	summary, err = f.reports.SalesSummary(now.AddDate(0, 0, -60), now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, summary.Records)

	_, err = f.reports.SalesSummary(now, now.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
