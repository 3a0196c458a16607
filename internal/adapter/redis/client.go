// Package redis holds the Redis-backed caches. Caches are advisory: callers
// treat every error as a miss and fall back to PostgreSQL.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/karmafeed-backend/internal/config"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// NewClient connects to Redis and pings it.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w: %w", cfg.Addr, domain.ErrStorageUnavailable, err)
	}
	return client, nil
}
