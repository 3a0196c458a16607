package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// KeyLeaderboard is the cache key of a top-k leaderboard page.
const KeyLeaderboard = "leaderboard:24h:%d"

// LeaderboardCache stores rendered leaderboard pages for a short TTL.
// A cached page may be up to ttl behind the likes table.
type LeaderboardCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewLeaderboardCache creates a cache over client.
func NewLeaderboardCache(client redis.Cmdable, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get returns the cached page for limit. ok is false on a miss.
func (c *LeaderboardCache) Get(ctx context.Context, limit int) (entries []domain.LeaderboardEntry, ok bool, err error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyLeaderboard, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get leaderboard cache: %w", err)
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("decode leaderboard cache: %w", err)
	}
	return entries, true, nil
}

// Set stores the page for limit.
func (c *LeaderboardCache) Set(ctx context.Context, limit int, entries []domain.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard cache: %w", err)
	}
	if err := c.client.Set(ctx, fmt.Sprintf(KeyLeaderboard, limit), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set leaderboard cache: %w", err)
	}
	return nil
}
