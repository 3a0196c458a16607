package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/pkg/ctxutil"
)

// CreateComment adds a comment to a post, optionally as a reply. The parent
// must belong to the same post and be at most domain.MaxCommentParentDepth
// deep; the new comment's depth is the parent's plus one.
func (s *Service) CreateComment(ctx context.Context, input CreateCommentInput) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(s.cfg.MaxCommentLength); err != nil {
		return nil, err
	}

	var created *domain.Comment
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.posts.GetByID(txCtx, input.PostID); err != nil {
			return err
		}

		depth := 0
		if input.ParentID != nil {
			parent, err := s.comments.GetByID(txCtx, *input.ParentID)
			if err != nil {
				return err
			}
			if parent.PostID != input.PostID {
				return domain.NewValidationError("parentId", "parent comment belongs to another post")
			}
			if parent.Depth >= domain.MaxCommentParentDepth {
				return domain.NewValidationError("parentId",
					fmt.Sprintf("replies are limited to %d levels", domain.MaxCommentParentDepth+1))
			}
			depth = parent.Depth + 1
		}

		now := s.now().UTC()
		c, err := s.comments.Create(txCtx, &domain.Comment{
			ID:        uuid.New(),
			PostID:    input.PostID,
			AuthorID:  userID,
			ParentID:  input.ParentID,
			Content:   input.Content,
			Depth:     depth,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		created, err = s.comments.GetByID(txCtx, c.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("content.CreateComment: %w", err)
	}

	s.log.InfoContext(ctx, "comment created",
		slog.String("comment_id", created.ID.String()),
		slog.String("post_id", created.PostID.String()),
		slog.Int("depth", created.Depth),
	)
	return created, nil
}

// ListComments returns the comment forest of a post: root comments ordered
// by creation time, each with its replies nested.
func (s *Service) ListComments(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("content.ListComments: %w", err)
	}

	flat, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("content.ListComments: %w", err)
	}
	return domain.BuildCommentTree(flat), nil
}
