package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/model"
)

// ValuationReport totals the catalog across both quantity ledgers.
type ValuationReport struct {
	ItemCount       int64           `json:"item_count"`
	WarehouseUnits  int             `json:"warehouse_units"`
	ShopUnits       int             `json:"shop_units"`
	RetailValue     decimal.Decimal `json:"retail_value"`
	CostValue       decimal.Decimal `json:"cost_value"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
}

// LowStockRow is one item whose combined stock sits at or below the
// report threshold.
type LowStockRow struct {
	Barcode      string `json:"barcode"`
	Name         string `json:"name"`
	WarehouseQty int    `json:"warehouse_qty"`
	ShopQty      int    `json:"shop_qty"`
	TotalQty     int    `json:"total_qty"`
}

// SalesSummary aggregates the sales ledger over a date range.
type SalesSummary struct {
	Records int64           `json:"records"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
	ByShop  []ShopSales     `json:"by_shop"`
}

// ShopSales is the per-shop breakdown of a SalesSummary.
type ShopSales struct {
	ShopName string          `json:"shop_name"`
	Records  int64           `json:"records"`
	Units    int             `json:"units"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type ReportRepository interface {
	Valuation() (*ValuationReport, error)
	LowStock(threshold int) ([]LowStockRow, error)
	SalesSummary(from, to time.Time) (*SalesSummary, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) Valuation() (*ValuationReport, error) {
	var report ValuationReport

	if err := r.db.Model(&model.Item{}).Count(&report.ItemCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Item{}).
		Select("COALESCE(SUM(warehouse_qty), 0)").
		Scan(&report.WarehouseUnits).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.ShopStock{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&report.ShopUnits).Error; err != nil {
		return nil, err
	}

	row := r.db.Raw(`
		SELECT
			COALESCE(SUM((i.warehouse_qty + COALESCE(s.qty, 0)) * i.price), 0) AS retail_value,
			COALESCE(SUM((i.warehouse_qty + COALESCE(s.qty, 0)) * i.cost), 0)  AS cost_value
		FROM items i
		LEFT JOIN (
			SELECT item_id, SUM(quantity) AS qty FROM shop_items GROUP BY item_id
		) s ON s.item_id = i.id
	`).Row()
	if err := row.Scan(&report.RetailValue, &report.CostValue); err != nil {
		return nil, err
	}
	report.PotentialProfit = report.RetailValue.Sub(report.CostValue)
	return &report, nil
}

func (r *reportRepo) LowStock(threshold int) ([]LowStockRow, error) {
	var rows []LowStockRow
	err := r.db.Raw(`
		SELECT
			i.barcode,
			i.name,
			i.warehouse_qty,
			COALESCE(s.qty, 0)                   AS shop_qty,
			i.warehouse_qty + COALESCE(s.qty, 0) AS total_qty
		FROM items i
		LEFT JOIN (
			SELECT item_id, SUM(quantity) AS qty FROM shop_items GROUP BY item_id
		) s ON s.item_id = i.id
		WHERE i.warehouse_qty + COALESCE(s.qty, 0) <= ?
		ORDER BY total_qty ASC, i.name ASC
	`, threshold).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) SalesSummary(from, to time.Time) (*SalesSummary, error) {
	var summary SalesSummary

	err := r.db.Model(&model.Sale{}).
		Select("COUNT(*) AS records, COALESCE(SUM(quantity), 0) AS units, COALESCE(SUM(total_price), 0) AS revenue").
		Where("sold_at BETWEEN ? AND ?", from, to).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Raw(`
		SELECT
			sh.name                          AS shop_name,
			COUNT(*)                         AS records,
			COALESCE(SUM(sa.quantity), 0)    AS units,
			COALESCE(SUM(sa.total_price), 0) AS revenue
		FROM sales sa
		JOIN shops sh ON sh.id = sa.shop_id
		WHERE sa.sold_at BETWEEN ? AND ?
		GROUP BY sh.name
		ORDER BY revenue DESC
	`, from, to).Scan(&summary.ByShop).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
