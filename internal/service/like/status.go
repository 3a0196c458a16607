package like

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/pkg/ctxutil"
)

// Status reports whether the current user likes target. Callers that want
// a specific end state read it first and toggle only when it differs.
func (s *Service) Status(ctx context.Context, target domain.Target) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}
	if !target.Kind.IsValid() {
		return false, domain.NewValidationError("kind", "must be post or comment")
	}

	liked, err := s.likes.Exists(ctx, userID, target)
	if err != nil {
		return false, fmt.Errorf("like.Status %s: %w", target, err)
	}
	return liked, nil
}

// LikedByViewer returns, for each id of the given kind, whether viewerID
// likes it. It backs the per-request isLiked loaders and accepts a nil
// viewer, for whom nothing is liked.
func (s *Service) LikedByViewer(ctx context.Context, viewerID uuid.UUID, kind domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	if viewerID == uuid.Nil {
		out := make(map[uuid.UUID]bool, len(ids))
		for _, id := range ids {
			out[id] = false
		}
		return out, nil
	}

	liked, err := s.likes.LikedTargets(ctx, viewerID, kind, ids)
	if err != nil {
		return nil, fmt.Errorf("like.LikedByViewer: %w", err)
	}
	return liked, nil
}
