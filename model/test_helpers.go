package model

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing with the
// specified models migrated. TranslateError is enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey like in production. The
// database name is uniquified with the current Unix nanosecond timestamp to
// prevent cross-test contamination when tests run in the same process.
func setupTestDB(t *testing.T, name string, models ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("failed to auto-migrate models: %v", err)
		}
	}

	return db
}
