package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/pkg/ctxutil"
)

// CreatePost publishes a post by the current user.
func (s *Service) CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(s.cfg.MaxPostLength); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.posts.Create(ctx, &domain.Post{
		ID:        uuid.New(),
		AuthorID:  userID,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("content.CreatePost: %w", err)
	}

	s.log.InfoContext(ctx, "post created",
		slog.String("post_id", created.ID.String()),
		slog.String("author_id", userID.String()),
	)

	// Re-read to pick up the author.
	p, err := s.posts.GetByID(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("content.CreatePost reload: %w", err)
	}
	return p, nil
}

// GetPost returns a post with its author.
func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("content.GetPost: %w", err)
	}
	return p, nil
}

// ListPosts returns a page of the feed, newest first.
func (s *Service) ListPosts(ctx context.Context, input ListPostsInput) ([]*domain.Post, error) {
	if err := input.Validate(s.cfg.FeedMaxLimit); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.FeedDefaultLimit
	}

	posts, err := s.posts.List(ctx, post.ListParams{
		AuthorID: input.AuthorID,
		Limit:    limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("content.ListPosts: %w", err)
	}
	return posts, nil
}
