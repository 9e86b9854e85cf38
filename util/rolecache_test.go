package util

import (
	"testing"
	"time"

	"github.com/NabinIslam/docport-server/config"
	"github.com/NabinIslam/docport-server/model"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func emailPtr(email string) *string {
	return &email
}

func newRoleCacheDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("failed to auto-migrate: %v", err)
	}
	return db
}

func setupRedisMock(t *testing.T) redismock.ClientMock {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(rdb)
	t.Cleanup(func() {
		config.SetRedisClientForTesting(nil)
	})
	return mock
}

func TestGetUserRoleWithoutRedis(t *testing.T) {
	config.SetRedisClientForTesting(nil)
	db := newRoleCacheDB(t)
	db.Create(&model.User{Name: "Admin", Email: emailPtr("admin@x.com"), Role: model.RoleAdmin})

	role, err := GetUserRole(db, "admin@x.com")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestGetUserRoleMissingAccount(t *testing.T) {
	config.SetRedisClientForTesting(nil)
	db := newRoleCacheDB(t)

	_, err := GetUserRole(db, "ghost@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetUserRoleCacheMissThenSet(t *testing.T) {
	mock := setupRedisMock(t)
	db := newRoleCacheDB(t)
	db.Create(&model.User{Name: "Pat", Email: emailPtr("pat@x.com"), Role: model.RolePatient})

	mock.ExpectGet("role:pat@x.com").RedisNil()
	mock.ExpectSet("role:pat@x.com", model.RolePatient, 5*time.Minute).SetVal("OK")

	role, err := GetUserRole(db, "pat@x.com")
	assert.NoError(t, err)
	assert.Equal(t, model.RolePatient, role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserRoleCacheHitSkipsDB(t *testing.T) {
	mock := setupRedisMock(t)
	// An empty database proves the hit never reaches storage.
	db := newRoleCacheDB(t)

	mock.ExpectGet("role:cached@x.com").SetVal(model.RoleAdmin)

	role, err := GetUserRole(db, "cached@x.com")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateUserRole(t *testing.T) {
	mock := setupRedisMock(t)

	mock.ExpectDel("role:pat@x.com").SetVal(1)

	assert.NoError(t, InvalidateUserRole("pat@x.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateUserRoleWithoutRedis(t *testing.T) {
	config.SetRedisClientForTesting(nil)
	assert.NoError(t, InvalidateUserRole("pat@x.com"))
}
