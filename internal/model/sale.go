package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one line of the append-only sales ledger. Rows are written by
// the sale action and removed only when that action is undone.
type Sale struct {
	BaseModel
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Item       *Item           `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	Shop       *Shop           `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	SoldAt     time.Time       `gorm:"not null;index" json:"sold_at"`
}

func (Sale) TableName() string {
	return "sales"
}
