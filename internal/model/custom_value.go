package model

// CustomValue kinds backing the catalog select lists.
const (
	KindCategory  = "category"
	KindMetalType = "metal_type"
	KindStoneType = "stone_type"
)

// CustomValue is one entry of a catalog select list (categories, metal
// types, stone types). Kind+Value unique so lists stay duplicate-free.
type CustomValue struct {
	BaseModel
	Kind  string `gorm:"type:varchar(50);not null;uniqueIndex:idx_kind_value" json:"kind" validate:"required"`
	Value string `gorm:"type:varchar(100);not null;uniqueIndex:idx_kind_value" json:"value" validate:"required"`
}

func (CustomValue) TableName() string {
	return "custom_values"
}
