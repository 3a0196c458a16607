// Package content implements posts and threaded comments.
package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/karmafeed-backend/internal/config"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

type postRepo interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, params post.ListParams) ([]*domain.Post, error)
}

type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides post and comment operations.
type Service struct {
	log      *slog.Logger
	posts    postRepo
	comments commentRepo
	tx       txManager
	cfg      config.ContentConfig
	now      func() time.Time
}

// NewService creates a new content service.
func NewService(
	logger *slog.Logger,
	posts postRepo,
	comments commentRepo,
	tx txManager,
	cfg config.ContentConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "content"),
		posts:    posts,
		comments: comments,
		tx:       tx,
		cfg:      cfg,
		now:      time.Now,
	}
}
