package like

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/pkg/ctxutil"
)

// Toggle likes the target for the current user, or removes the like if it
// already exists. The like event and the item's counter change in one
// transaction. Collisions with a concurrent toggle of the same pair are
// retried internally and never returned as domain.ErrConflict.
func (s *Service) Toggle(ctx context.Context, input ToggleInput) (*domain.ToggleResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	target := input.Target()
	store, ok := s.targets[target.Kind]
	if !ok {
		return nil, domain.NewValidationError("kind", "unsupported target kind")
	}

	attempts := s.cfg.MaxRetries + 1
	for attempt := 1; ; attempt++ {
		result, err := s.toggleOnce(ctx, userID, target, store)
		if err == nil {
			s.log.DebugContext(ctx, "like toggled",
				slog.String("user_id", userID.String()),
				slog.String("target", target.String()),
				slog.Bool("liked", result.Liked),
				slog.Int("attempt", attempt),
			)
			return result, nil
		}

		if !errors.Is(err, domain.ErrConflict) {
			if errors.Is(err, domain.ErrInvariantViolation) {
				s.log.ErrorContext(ctx, "like counter invariant violated",
					slog.String("user_id", userID.String()),
					slog.String("target", target.String()),
					slog.String("error", err.Error()),
				)
			}
			return nil, fmt.Errorf("like.Toggle %s: %w", target, err)
		}

		if attempt >= attempts {
			s.log.WarnContext(ctx, "like toggle gave up after conflicts",
				slog.String("user_id", userID.String()),
				slog.String("target", target.String()),
				slog.Int("attempts", attempt),
			)
			return nil, fmt.Errorf("like.Toggle %s: %d attempts: %w (last: %v)",
				target, attempt, domain.ErrStorageUnavailable, err)
		}

		if err := sleep(ctx, time.Duration(attempt)*s.cfg.RetryBackoff); err != nil {
			return nil, err
		}
	}
}

// toggleOnce runs one insert-first, delete-on-conflict attempt.
func (s *Service) toggleOnce(ctx context.Context, userID uuid.UUID, target domain.Target, store targetStore) (*domain.ToggleResult, error) {
	karma := target.Kind.KarmaValue()
	var result *domain.ToggleResult

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		author, err := store.AuthorOf(txCtx, target.ID)
		if err != nil {
			return fmt.Errorf("resolve author: %w", err)
		}

		inserted, err := s.likes.Insert(txCtx, &domain.Like{
			ID:              uuid.New(),
			UserID:          userID,
			Target:          target,
			ContentAuthorID: author,
			KarmaValue:      karma,
			CreatedAt:       s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("insert like: %w", err)
		}

		if inserted {
			count, err := store.AdjustLikeCount(txCtx, target.ID, 1)
			if err != nil {
				return fmt.Errorf("increment like count: %w", err)
			}
			result = &domain.ToggleResult{Liked: true, LikeCount: count, KarmaDelta: karma}
			return nil
		}

		deleted, err := s.likes.Delete(txCtx, userID, target)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		if !deleted {
			// A concurrent toggle removed the row between our insert and delete.
			return fmt.Errorf("like vanished before delete: %w", domain.ErrConflict)
		}

		count, err := store.AdjustLikeCount(txCtx, target.ID, -1)
		if err != nil {
			return fmt.Errorf("decrement like count: %w", err)
		}
		result = &domain.ToggleResult{Liked: false, LikeCount: count, KarmaDelta: -karma}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
