package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database.statement_timeout must be >= 0 (got %v)", c.Database.StatementTimeout)
	}

	if c.Like.MaxRetries < 1 {
		return fmt.Errorf("like.max_retries must be >= 1 (got %d)", c.Like.MaxRetries)
	}
	if c.Like.RetryBackoff < 0 {
		return fmt.Errorf("like.retry_backoff must be >= 0 (got %v)", c.Like.RetryBackoff)
	}

	if err := c.Karma.validate(); err != nil {
		return fmt.Errorf("karma: %w", err)
	}
	if err := c.Content.validate(); err != nil {
		return fmt.Errorf("content: %w", err)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.LikesPerMinute <= 0 {
			return fmt.Errorf("rate_limit: per-minute limits must be > 0")
		}
		if c.RateLimit.MaxClients <= 0 {
			return fmt.Errorf("rate_limit.max_clients must be > 0 (got %d)", c.RateLimit.MaxClients)
		}
	}

	if c.Redis.Enabled() && c.Redis.LeaderboardTTL <= 0 {
		return fmt.Errorf("redis.leaderboard_ttl must be > 0 when redis is enabled")
	}

	return nil
}

func (k KarmaConfig) validate() error {
	if k.LeaderboardMaxLimit <= 0 {
		return fmt.Errorf("leaderboard_max_limit must be > 0 (got %d)", k.LeaderboardMaxLimit)
	}
	if k.LeaderboardDefaultLimit <= 0 || k.LeaderboardDefaultLimit > k.LeaderboardMaxLimit {
		return fmt.Errorf("leaderboard_default_limit must be in [1, %d] (got %d)",
			k.LeaderboardMaxLimit, k.LeaderboardDefaultLimit)
	}
	return nil
}

func (c ContentConfig) validate() error {
	if c.MaxPostLength <= 0 {
		return fmt.Errorf("max_post_length must be > 0 (got %d)", c.MaxPostLength)
	}
	if c.MaxCommentLength <= 0 {
		return fmt.Errorf("max_comment_length must be > 0 (got %d)", c.MaxCommentLength)
	}
	if c.FeedDefaultLimit <= 0 || c.FeedDefaultLimit > c.FeedMaxLimit {
		return fmt.Errorf("feed_default_limit must be in [1, %d] (got %d)", c.FeedMaxLimit, c.FeedDefaultLimit)
	}
	return nil
}
