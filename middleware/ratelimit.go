package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/NabinIslam/docport-server/config"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRateLimit  = 20               // 20 requests
	defaultRateWindow = 15 * time.Minute // per 15 minutes
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimiter creates a per-IP, per-endpoint rate limiting middleware backed
// by Redis. When Redis is unavailable requests are allowed through so an
// infrastructure outage cannot take the API down with it.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.Request.URL.Path
		key := fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)

		allowed, err := checkRateLimit(key, cfg.Limit, cfg.Window)
		if err != nil {
			util.LogAuditEvent(util.AuditEvent{
				EventType: util.EventRateLimitExceeded,
				IP:        clientIP,
				Message:   fmt.Sprintf("Rate limit check failed: %v", err),
			})
			c.Next()
			return
		}

		if !allowed {
			util.LogRateLimitExceeded(clientIP, endpoint)
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Too many requests. Please try again later.",
				Err: fmt.Errorf("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimit increments the request counter for key and reports whether
// the request is still within limits.
func checkRateLimit(key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}

	ctx := context.Background()

	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= int64(limit), nil
}
