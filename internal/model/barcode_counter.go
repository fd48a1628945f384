package model

// BarcodeCounter is the single-row sequence backing sequential barcode
// allocation. NextVal is seeded at 1000000 on first use so generated
// codes stay seven digits.
type BarcodeCounter struct {
	ID      int   `gorm:"primaryKey" json:"id"`
	NextVal int64 `gorm:"not null" json:"next_val"`
}

func (BarcodeCounter) TableName() string {
	return "barcode_sequence"
}
