package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitTestDB points the package-level DB at a fresh in-memory SQLite store.
// Each call gets its own database, so tests stay isolated.
func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// An in-memory database lives and dies with its connection, so the
	// pool must stay at a single one
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	DB = db
	return db
}
