package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmuriuki/taskforge-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// setupCache connects to Redis for the list-query response cache.
// Returns (nil, nil) when no Redis address is configured; the service then
// runs uncached and every list query hits the database.
func setupCache(cfg *config.Config, logger *slog.Logger) (redis.UniversalClient, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("No Redis address configured, list queries will not be cached")
		return nil, nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Redis.Addr},
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("Redis connection established",
		"addr", cfg.Redis.Addr,
		"cache_ttl", cfg.Redis.CacheTTL.String())
	return client, nil
}
