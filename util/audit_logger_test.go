package util

import (
	"strings"
	"testing"

	"github.com/NabinIslam/docport-server/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newAuditDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.AuditLog{}); err != nil {
		t.Fatalf("failed to auto-migrate: %v", err)
	}
	return db
}

func TestSanitizeLogValue(t *testing.T) {
	assert.Equal(t, "a b c", sanitizeLogValue("a\nb\tc"))
	long := strings.Repeat("x", 300)
	got := sanitizeLogValue(long)
	assert.Equal(t, 203, len(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestLogAuditEventPersists(t *testing.T) {
	db := newAuditDB(t)
	SetAuditLoggerDB(db)
	t.Cleanup(func() { SetAuditLoggerDB(nil) })

	LogAuditEvent(AuditEvent{
		EventType: EventTokenIssued,
		Email:     "pat@x.com",
		IP:        "127.0.0.1",
		Message:   "Access token issued",
		Details:   map[string]interface{}{"path": "/jwt"},
	})

	var entry model.AuditLog
	assert.NoError(t, db.First(&entry).Error)
	assert.Equal(t, string(EventTokenIssued), entry.EventType)
	assert.Equal(t, "pat@x.com", entry.Email)
	assert.Contains(t, string(entry.Details), "/jwt")
}

func TestLogAuditEventWithoutDB(t *testing.T) {
	SetAuditLoggerDB(nil)

	// Must not panic when no DB handle is configured.
	LogTokenDenied("ghost@x.com", "127.0.0.1")
	LogForbiddenAccess("pat@x.com", "127.0.0.1", "admin role required")
	LogRateLimitExceeded("127.0.0.1", "/jwt")
}
