package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/pkg/ctxutil"
)

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context) (*domain.UserProfile, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.Profile(ctx, userID)
}

// Profile returns a user with karma totals computed from live likes.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Profile: %w", err)
	}

	summary, err := s.karma.Summary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Profile karma: %w", err)
	}

	return &domain.UserProfile{User: *u, Karma: *summary}, nil
}
