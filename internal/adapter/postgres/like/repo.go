// Package like implements the like event store using PostgreSQL.
//
// The likes table is the source of truth for karma. At most one row exists
// per (user, target kind, target id); the unique constraint
// likes_user_target_key enforces it across all processes.
package like

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// Repo provides like event persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new like repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const insertSQL = `
INSERT INTO likes (id, user_id, target_kind, target_id, content_author_id, karma_value, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id, target_kind, target_id) DO NOTHING
RETURNING id`

const deleteSQL = `
DELETE FROM likes
WHERE user_id = $1 AND target_kind = $2 AND target_id = $3`

const existsSQL = `
SELECT EXISTS(
    SELECT 1 FROM likes
    WHERE user_id = $1 AND target_kind = $2 AND target_id = $3
)`

const likedTargetsSQL = `
SELECT target_id FROM likes
WHERE user_id = $1 AND target_kind = $2 AND target_id = ANY($3::uuid[])`

const countByTargetSQL = `
SELECT COUNT(*) FROM likes
WHERE target_kind = $1 AND target_id = $2`

// Insert stores a like event unless one already exists for the same user
// and target. inserted is false when the unique constraint rejected the
// row; the transaction stays usable in that case.
func (r *Repo) Insert(ctx context.Context, l *domain.Like) (inserted bool, err error) {
	var id uuid.UUID
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, insertSQL,
		l.ID, l.UserID, string(l.Target.Kind), l.Target.ID, l.ContentAuthorID, l.KarmaValue, l.CreatedAt,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, postgres.MapError(err, "like", l.Target)
	}
	return true, nil
}

// Delete removes the user's like of target. deleted is false when there was
// nothing to remove.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, target domain.Target) (deleted bool, err error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, userID, string(target.Kind), target.ID)
	if err != nil {
		return false, postgres.MapError(err, "like", target)
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the user currently likes target.
func (r *Repo) Exists(ctx context.Context, userID uuid.UUID, target domain.Target) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, existsSQL, userID, string(target.Kind), target.ID).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "like", target)
	}
	return exists, nil
}

// LikedTargets returns which of ids of the given kind the user likes. Every
// id is present in the result.
func (r *Repo) LikedTargets(ctx context.Context, userID uuid.UUID, kind domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = false
	}
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, likedTargetsSQL, userID, string(kind), ids)
	if err != nil {
		return nil, fmt.Errorf("liked targets: %w", postgres.MapError(err, "like", kind))
	}
	liked, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("liked targets: %w", postgres.MapError(err, "like", kind))
	}
	for _, id := range liked {
		out[id] = true
	}
	return out, nil
}

// CountByTarget returns the number of live like events for target.
func (r *Repo) CountByTarget(ctx context.Context, target domain.Target) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countByTargetSQL, string(target.Kind), target.ID).Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "like", target)
	}
	return n, nil
}
