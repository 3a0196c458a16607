package karma

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// Leaderboard returns the top users by karma earned in the last 24 hours,
// highest first, ties broken by user id. limit 0 selects the configured
// default. Users without karma in the window never appear.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit == 0 {
		limit = s.cfg.LeaderboardDefaultLimit
	}
	if limit < 1 || limit > s.cfg.LeaderboardMaxLimit {
		return nil, domain.NewValidationError("limit",
			fmt.Sprintf("must be between 1 and %d", s.cfg.LeaderboardMaxLimit))
	}

	// Identical concurrent requests share one query. The shared call must
	// not die with whichever caller happened to start it.
	v, err, _ := s.group.Do(strconv.Itoa(limit), func() (any, error) {
		return s.loadLeaderboard(context.WithoutCancel(ctx), limit)
	})
	if err != nil {
		return nil, fmt.Errorf("karma.Leaderboard: %w", err)
	}

	shared := v.([]domain.LeaderboardEntry)
	out := make([]domain.LeaderboardEntry, len(shared))
	copy(out, shared)
	return out, nil
}

func (s *Service) loadLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.Get(ctx, limit)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "leaderboard cache read failed", slog.String("error", err.Error()))
		case ok:
			return entries, nil
		}
	}

	now := s.now().UTC()
	entries, err := s.repo.TopSince(ctx, domain.WindowStart(now, domain.KarmaWindow), now, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, limit, entries); err != nil {
			s.log.WarnContext(ctx, "leaderboard cache write failed", slog.String("error", err.Error()))
		}
	}
	return entries, nil
}
