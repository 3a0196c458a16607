package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// karmaSummarizer computes karma totals for a profile.
type karmaSummarizer interface {
	Summary(ctx context.Context, userID uuid.UUID) (*domain.KarmaSummary, error)
}

// tokenIssuer signs access tokens for newly registered users.
type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
}

// Service implements registration and profile operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	karma  karmaSummarizer
	tokens tokenIssuer
	now    func() time.Time
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	karma karmaSummarizer,
	tokens tokenIssuer,
) *Service {
	return &Service{
		log:    logger.With("service", "user"),
		users:  users,
		karma:  karma,
		tokens: tokens,
		now:    time.Now,
	}
}
