package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NabinIslam/docport-server/config"
	"github.com/NabinIslam/docport-server/middleware"
	"github.com/NabinIslam/docport-server/model"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// endpointTestModels is the standard set of models migrated for endpoint tests.
var endpointTestModels = []interface{}{
	&model.AppointmentOption{},
	&model.Booking{},
	&model.User{},
	&model.Doctor{},
	&model.AuditLog{},
}

// setupEndpointTest returns a Gin engine and an isolated in-memory database
// with all models migrated. Redis is disabled so role lookups hit the DB.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	util.SetJWTSecret("test-secret-123")
	config.SetRedisClientForTesting(nil)

	dsn := fmt.Sprintf("file:endpointdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(endpointTestModels...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	return r, db
}

func bearerToken(t *testing.T, email string) string {
	t.Helper()
	claims := middleware.AccessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(util.GetJWTSecretByte())
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return "Bearer " + token
}

func createTestOption(t *testing.T, db *gorm.DB, name string, slots ...string) model.AppointmentOption {
	t.Helper()
	option := model.AppointmentOption{
		Name:  name,
		Price: 50,
		Slots: datatypes.NewJSONSlice(slots),
	}
	if err := db.Create(&option).Error; err != nil {
		t.Fatalf("failed to create test option: %v", err)
	}
	return option
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) model.User {
	t.Helper()
	user := model.User{Name: "Test User", Email: &email, Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestBooking(t *testing.T, db *gorm.DB, email, treatment, date, slot string) model.Booking {
	t.Helper()
	booking := model.Booking{Email: email, Treatment: treatment, AppointmentDate: date, Slot: slot}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create test booking: %v", err)
	}
	return booking
}

func performRequest(r *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeAPIResponse(t *testing.T, w *httptest.ResponseRecorder) util.APIResponse {
	t.Helper()
	var resp util.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, w.Code)
}

func dataAsMap(t *testing.T, resp util.APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected data to be an object, got %T", resp.Data)
	}
	return m
}

func dataAsList(t *testing.T, resp util.APIResponse) []interface{} {
	t.Helper()
	l, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("expected data to be a list, got %T", resp.Data)
	}
	return l
}
