package model

import "github.com/google/uuid"

// Shop is one retail location items can be allocated to.
type Shop struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}

func (Shop) TableName() string {
	return "shops"
}

// ShopStock is the per-shop allocation of one item, one row per
// (shop, item) pair. The row stays in place at quantity zero so a
// shop's assortment history never depends on row churn.
type ShopStock struct {
	BaseModel
	ShopID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_item" json:"shop_id"`
	Shop     *Shop     `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_item" json:"item_id"`
	Item     *Item     `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Quantity int       `gorm:"not null;default:0" json:"quantity"`
}

func (ShopStock) TableName() string {
	return "shop_items"
}
