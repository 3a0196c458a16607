package karma

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/karmafeed-backend/internal/config"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

type karmaRepo interface {
	Total(ctx context.Context, userID uuid.UUID) (int, error)
	Since(ctx context.Context, userID uuid.UUID, since, now time.Time) (int, error)
	TopSince(ctx context.Context, since, now time.Time, limit int) ([]domain.LeaderboardEntry, error)
}

// leaderboardCache is optional; a nil cache sends every request to the repo.
type leaderboardCache interface {
	Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, bool, error)
	Set(ctx context.Context, limit int, entries []domain.LeaderboardEntry) error
}

// Service derives karma and the leaderboard from like events.
type Service struct {
	log   *slog.Logger
	repo  karmaRepo
	cache leaderboardCache
	cfg   config.KarmaConfig
	now   func() time.Time
	group singleflight.Group
}

// NewService creates a karma service. cache may be nil.
func NewService(logger *slog.Logger, repo karmaRepo, cache leaderboardCache, cfg config.KarmaConfig) *Service {
	return &Service{
		log:   logger.With("service", "karma"),
		repo:  repo,
		cache: cache,
		cfg:   cfg,
		now:   time.Now,
	}
}
