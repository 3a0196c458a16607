package karma

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// Total returns the user's karma over all live like events.
func (s *Service) Total(ctx context.Context, userID uuid.UUID) (int, error) {
	total, err := s.repo.Total(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("karma.Total: %w", err)
	}
	return total, nil
}

// Karma24h returns the user's karma from events created in the last 24
// hours. An event exactly 24 hours old still counts.
func (s *Service) Karma24h(ctx context.Context, userID uuid.UUID) (int, error) {
	now := s.now().UTC()
	total, err := s.repo.Since(ctx, userID, domain.WindowStart(now, domain.KarmaWindow), now)
	if err != nil {
		return 0, fmt.Errorf("karma.Karma24h: %w", err)
	}
	return total, nil
}

// Summary returns both karma figures for a profile.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*domain.KarmaSummary, error) {
	now := s.now().UTC()

	total, err := s.repo.Total(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("karma.Summary total: %w", err)
	}
	recent, err := s.repo.Since(ctx, userID, domain.WindowStart(now, domain.KarmaWindow), now)
	if err != nil {
		return nil, fmt.Errorf("karma.Summary 24h: %w", err)
	}

	return &domain.KarmaSummary{
		UserID:   userID,
		Total:    total,
		Last24h:  recent,
		Computed: now,
	}, nil
}
