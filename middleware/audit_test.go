package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NabinIslam/docport-server/model"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestAuditLoggerPersistsEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newInMemoryDB(t)
	if err := db.AutoMigrate(&model.AuditLog{}); err != nil {
		t.Fatalf("failed to auto-migrate: %v", err)
	}
	util.SetAuditLoggerDB(db)
	t.Cleanup(func() { util.SetAuditLoggerDB(nil) })

	r := gin.New()
	r.Use(RequestAuditLogger())
	r.GET("/specialties", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/specialties", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var entry model.AuditLog
	assert.NoError(t, db.Where("event_type = ?", string(util.EventEndpointCall)).First(&entry).Error)
	assert.Contains(t, entry.Message, "/specialties")
	assert.Contains(t, entry.Message, "200")
}
