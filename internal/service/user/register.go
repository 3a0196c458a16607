package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// RegisterResult is a new account together with its first access token.
type RegisterResult struct {
	AccessToken string
	User        *domain.User
}

// Register creates an account and issues an access token for it. A taken
// username or email yields domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		Bio:       input.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("user.Register: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(created.ID)
	if err != nil {
		return nil, fmt.Errorf("user.Register token: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", created.ID.String()),
		slog.String("username", created.Username),
	)
	return &RegisterResult{AccessToken: token, User: created}, nil
}
