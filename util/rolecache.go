package util

import (
	"context"
	"fmt"
	"time"

	"github.com/NabinIslam/docport-server/config"
	"github.com/NabinIslam/docport-server/model"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const roleCacheTTL = 5 * time.Minute

func roleCacheKey(email string) string {
	return fmt.Sprintf("role:%s", email)
}

// GetUserRole returns the role for an account email, consulting the Redis
// cache first and falling back to the database. A missing account returns
// gorm.ErrRecordNotFound. Cache reads and writes are best-effort: Redis being
// down degrades to a plain DB lookup.
func GetUserRole(db *gorm.DB, email string) (string, error) {
	ctx := context.Background()

	if rdb := config.GetRedisClient(); rdb != nil {
		role, err := rdb.Get(ctx, roleCacheKey(email)).Result()
		if err == nil && role != "" {
			return role, nil
		}
		if err != nil && err != redis.Nil {
			auditLogger.Printf("role cache read failed for %s: %v", sanitizeLogValue(email), err)
		}
	}

	var user model.User
	if err := db.Select("role").Where("email = ?", email).First(&user).Error; err != nil {
		return "", err
	}

	if rdb := config.GetRedisClient(); rdb != nil {
		_ = rdb.Set(ctx, roleCacheKey(email), user.Role, roleCacheTTL).Err()
	}
	return user.Role, nil
}

// InvalidateUserRole drops the cached role for an email. Call after any role
// mutation so promotions take effect without waiting for the TTL.
func InvalidateUserRole(email string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Del(context.Background(), roleCacheKey(email)).Err()
}
