package model

import "github.com/shopspring/decimal"

// Item is the master record for one catalog article. The barcode is
// assigned once (allocated from the counter when a request omits it)
// and immutable afterwards. WarehouseQty is the central pool the
// transfer engine draws from.
type Item struct {
	BaseModel
	Barcode      string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"barcode"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	Category     string          `gorm:"type:varchar(100)" json:"category,omitempty"`
	MetalType    string          `gorm:"type:varchar(100)" json:"metal_type,omitempty"`
	StoneType    string          `gorm:"type:varchar(100)" json:"stone_type,omitempty"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Cost         decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost"`
	WeightGrams  decimal.Decimal `gorm:"type:decimal(10,3)" json:"weight_grams"`
	WarehouseQty int             `gorm:"not null;default:0" json:"warehouse_qty" validate:"gte=0"`
}

func (Item) TableName() string {
	return "items"
}
