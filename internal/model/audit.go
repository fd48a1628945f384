package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuditStatus tracks the session state machine:
// in_progress ⇄ paused, then finished (terminal).
type AuditStatus string

const (
	AuditInProgress AuditStatus = "in_progress"
	AuditPaused     AuditStatus = "paused"
	AuditFinished   AuditStatus = "finished"
)

// AuditLineStatus classifies one line of a finished audit.
type AuditLineStatus string

const (
	LineFound   AuditLineStatus = "found"
	LineMissing AuditLineStatus = "missing"
	LineExtra   AuditLineStatus = "extra"
)

// ScanResult tells the caller what a scan did. Unknown barcodes and
// repeat scans are outcomes the operator must see, not errors.
type ScanResult string

const (
	ScanScanned        ScanResult = "scanned"
	ScanAlreadyScanned ScanResult = "already_scanned"
	ScanUnknown        ScanResult = "unknown"
)

// AuditSession is the header of one physical stock count. It is kept in
// memory while the count runs and persisted, with its lines, exactly
// once when the session finishes.
type AuditSession struct {
	BaseModel
	ShopID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	ShopName        string          `gorm:"type:varchar(100);not null" json:"shop_name"`
	Status          AuditStatus     `gorm:"type:varchar(20);not null" json:"status"`
	StartedAt       time.Time       `gorm:"not null" json:"started_at"`
	FinishedAt      *time.Time      `json:"finished_at,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	TotalExpected   int             `json:"total_expected"`
	TotalScanned    int             `json:"total_scanned"`
	TotalMissing    int             `json:"total_missing"`
	TotalCompleted  int             `json:"total_completed"`
	ShortageValue   decimal.Decimal `gorm:"type:decimal(14,2)" json:"shortage_value"`
	ShortageWeight  decimal.Decimal `gorm:"type:decimal(12,3)" json:"shortage_weight"`
	Lines           []AuditLine     `gorm:"foreignKey:SessionID" json:"lines,omitempty"`
}

func (AuditSession) TableName() string {
	return "audit_sessions"
}

// AuditLine is one item of an audit. ExpectedQty is frozen when the
// session starts; ScannedQty moves with scans and manual overrides.
// Difference, Status and the shortage figures are computed at finish.
type AuditLine struct {
	BaseModel
	SessionID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"session_id"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null" json:"item_id"`
	Barcode        string          `gorm:"type:varchar(32);not null;index" json:"barcode"`
	ItemName       string          `gorm:"type:varchar(255);not null" json:"item_name"`
	ExpectedQty    int             `gorm:"not null" json:"expected_qty"`
	ScannedQty     int             `gorm:"not null" json:"scanned_qty"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	WeightGrams    decimal.Decimal `gorm:"type:decimal(10,3)" json:"weight_grams"`
	Difference     int             `gorm:"not null" json:"difference"`
	Status         AuditLineStatus `gorm:"type:varchar(10)" json:"status"`
	ShortageValue  decimal.Decimal `gorm:"type:decimal(14,2)" json:"shortage_value"`
	ShortageWeight decimal.Decimal `gorm:"type:decimal(12,3)" json:"shortage_weight"`
}

func (AuditLine) TableName() string {
	return "audit_items"
}
