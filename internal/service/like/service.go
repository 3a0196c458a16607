package like

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/config"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

type likeRepo interface {
	Insert(ctx context.Context, like *domain.Like) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID, target domain.Target) (bool, error)
	Exists(ctx context.Context, userID uuid.UUID, target domain.Target) (bool, error)
	LikedTargets(ctx context.Context, userID uuid.UUID, kind domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

// targetStore resolves one kind of likeable item: who wrote it and where its
// like counter lives.
type targetStore interface {
	AuthorOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	AdjustLikeCount(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the like toggle.
type Service struct {
	log     *slog.Logger
	likes   likeRepo
	targets map[domain.TargetKind]targetStore
	tx      txManager
	cfg     config.LikeConfig
	now     func() time.Time
}

// NewService creates a like service. posts and comments are the stores of
// the two likeable kinds.
func NewService(
	logger *slog.Logger,
	likes likeRepo,
	posts targetStore,
	comments targetStore,
	tx txManager,
	cfg config.LikeConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "like"),
		likes: likes,
		targets: map[domain.TargetKind]targetStore{
			domain.TargetPost:    posts,
			domain.TargetComment: comments,
		},
		tx:  tx,
		cfg: cfg,
		now: time.Now,
	}
}
