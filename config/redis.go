package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

func redisOptionsFromEnv() *redis.Options {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if v, err := strconv.Atoi(dbStr); err == nil {
			dbNum = v
		}
	}
	return &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       dbNum,
	}
}

// ConnectRedis initializes a singleton Redis client from environment variables.
// Redis is optional here (role cache, rate limiting): callers should treat a
// nil client as "feature disabled", not as a startup failure.
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		if cfg := LoadConfig(); cfg != nil && cfg.AppEnv == "test" {
			// Tests inject a mock client instead.
			return
		}

		opts := redisOptionsFromEnv()
		rdb := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err = rdb.Ping(ctx).Err(); err != nil {
			redisClient = nil
			err = fmt.Errorf("redis ping failed: %w", err)
			return
		}

		redisClient = rdb
		log.Printf("Connected to Redis at %s", opts.Addr)
	})
	return redisClient, err
}

// GetRedisClient returns the initialized Redis client (may be nil if ConnectRedis failed or not called).
func GetRedisClient() *redis.Client {
	return redisClient
}

// SetRedisClientForTesting allows tests to inject a mock Redis client.
func SetRedisClientForTesting(client *redis.Client) {
	redisClient = client
}
