// Package testutil provides the in-memory database the service and
// action tests run against.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-jewelry-pos/internal/model"
)

// OpenDB returns an isolated in-memory database carrying the full
// schema. Each call gets its own database; nothing leaks between tests.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// One connection pins every session to the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Item{}, &model.Shop{}, &model.ShopStock{}, &model.Sale{},
		&model.AuditSession{}, &model.AuditLine{},
		&model.Operator{}, &model.CustomValue{}, &model.BarcodeCounter{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
