// Package karma implements read-only karma aggregation over the likes table.
// Karma is never stored; every value here is summed from live like events.
package karma

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo aggregates karma from like events.
type Repo struct {
	db postgres.Querier
}

// New creates a new karma repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const totalSQL = `
SELECT COALESCE(SUM(karma_value), 0)::int
FROM likes
WHERE content_author_id = $1`

// sinceSQL is served by likes_author_created_idx.
const sinceSQL = `
SELECT COALESCE(SUM(karma_value), 0)::int
FROM likes
WHERE content_author_id = $1 AND created_at >= $2 AND created_at <= $3`

const sumAllSQL = `SELECT COALESCE(SUM(karma_value), 0)::bigint FROM likes`

// Total returns the user's karma over all live like events. A user without
// events, or an unknown user, has 0.
func (r *Repo) Total(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, totalSQL, userID).Scan(&total); err != nil {
		return 0, postgres.MapError(err, "karma", userID)
	}
	return total, nil
}

// Since returns the user's karma from events created in [since, now].
func (r *Repo) Since(ctx context.Context, userID uuid.UUID, since, now time.Time) (int, error) {
	var total int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sinceSQL, userID, since, now).Scan(&total); err != nil {
		return 0, postgres.MapError(err, "karma", userID)
	}
	return total, nil
}

// SumAll returns the karma of every live event.
func (r *Repo) SumAll(ctx context.Context) (int64, error) {
	var total int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sumAllSQL).Scan(&total); err != nil {
		return 0, postgres.MapError(err, "karma", "all")
	}
	return total, nil
}

// TopSince ranks content authors by karma earned in [since, now] with a
// single grouped query. Users without positive karma in the window are
// absent. Ties are broken by user id ascending.
func (r *Repo) TopSince(ctx context.Context, since, now time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	query, args, err := psql.
		Select(
			"l.content_author_id AS user_id",
			"u.username",
			"u.bio",
			"SUM(l.karma_value)::int AS karma",
		).
		From("likes l").
		Join("users u ON u.id = l.content_author_id").
		Where(sq.GtOrEq{"l.created_at": since}).
		Where(sq.LtOrEq{"l.created_at": now}).
		GroupBy("l.content_author_id", "u.username", "u.bio").
		Having("SUM(l.karma_value) > 0").
		OrderBy("karma DESC", "user_id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build leaderboard query: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, limit)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &entries, query, args...); err != nil {
		return nil, fmt.Errorf("leaderboard: %w", postgres.MapError(err, "karma", "top"))
	}
	return entries, nil
}
