// Package post implements the Post repository using PostgreSQL.
// Besides plain persistence it owns the denormalized like_count column,
// which is only ever changed through AdjustLikeCount and RecountLikes.
package post

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

const likeCountCheck = "posts_like_count_check"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new post repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListParams filters and pages the feed. Posts come newest first.
type ListParams struct {
	AuthorID *uuid.UUID
	Limit    int
	Offset   int
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO posts (id, author_id, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, author_id, content, like_count, created_at, updated_at`

const authorOfSQL = `SELECT author_id FROM posts WHERE id = $1`

const adjustLikeCountSQL = `
UPDATE posts SET like_count = like_count + $2
WHERE id = $1
RETURNING like_count`

// recountLikesSQL rewrites like_count for every post whose counter drifted
// from the number of live like events.
const recountLikesSQL = `
UPDATE posts p
SET like_count = c.n
FROM (
    SELECT p2.id, COUNT(l.id)::int AS n
    FROM posts p2
    LEFT JOIN likes l ON l.target_kind = 'post' AND l.target_id = p2.id
    GROUP BY p2.id
) c
WHERE c.id = p.id AND p.like_count <> c.n`

type postRow struct {
	ID        uuid.UUID `db:"id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Content   string    `db:"content"`
	LikeCount int       `db:"like_count"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// postWithAuthorRow is a post joined with its author.
type postWithAuthorRow struct {
	postRow
	Username        string    `db:"author_username"`
	Bio             string    `db:"author_bio"`
	AuthorCreatedAt time.Time `db:"author_created_at"`
}

func (r postRow) toDomain() *domain.Post {
	return &domain.Post{
		ID:        r.ID,
		AuthorID:  r.AuthorID,
		Content:   r.Content,
		LikeCount: r.LikeCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r postWithAuthorRow) toDomain() *domain.Post {
	p := r.postRow.toDomain()
	p.Author = &domain.User{
		ID:        r.AuthorID,
		Username:  r.Username,
		Bio:       r.Bio,
		CreatedAt: r.AuthorCreatedAt,
	}
	return p
}

func selectWithAuthor() sq.SelectBuilder {
	return psql.Select(
		"p.id", "p.author_id", "p.content", "p.like_count", "p.created_at", "p.updated_at",
		"u.username AS author_username", "u.bio AS author_bio", "u.created_at AS author_created_at",
	).
		From("posts p").
		Join("users u ON u.id = p.author_id")
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a new post. An unknown author yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	var row postRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, createSQL,
		p.ID, p.AuthorID, p.Content, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "post", p.ID)
	}
	return row.toDomain(), nil
}

// GetByID returns a post together with its author.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query, args, err := selectWithAuthor().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get post query: %w", err)
	}

	var row postWithAuthorRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "post", id)
	}
	return row.toDomain(), nil
}

// List returns posts newest first. The result is never nil.
func (r *Repo) List(ctx context.Context, params ListParams) ([]*domain.Post, error) {
	b := selectWithAuthor().
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset))
	if params.AuthorID != nil {
		b = b.Where(sq.Eq{"p.author_id": *params.AuthorID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list posts query: %w", err)
	}

	var rows []postWithAuthorRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", postgres.MapError(err, "post", "list"))
	}

	posts := make([]*domain.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toDomain()
	}
	return posts, nil
}

// AuthorOf returns the author of a post, or domain.ErrNotFound.
func (r *Repo) AuthorOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var author uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, authorOfSQL, id).Scan(&author); err != nil {
		return uuid.Nil, postgres.MapError(err, "post", id)
	}
	return author, nil
}

// AdjustLikeCount adds delta to the post's like_count and returns the new
// value. Driving the counter below zero is reported as
// domain.ErrInvariantViolation.
func (r *Repo) AdjustLikeCount(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	var count int
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, adjustLikeCountSQL, id, delta).Scan(&count)
	if err != nil {
		if postgres.IsCheckViolation(err, likeCountCheck) {
			return 0, fmt.Errorf("post %s like_count %+d: %w", id, delta, domain.ErrInvariantViolation)
		}
		return 0, postgres.MapError(err, "post", id)
	}
	return count, nil
}

// RecountLikes resets like_count from the likes table for every drifted
// post and returns how many posts were fixed.
func (r *Repo) RecountLikes(ctx context.Context) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, recountLikesSQL)
	if err != nil {
		return 0, postgres.MapError(err, "post", "recount")
	}
	return tag.RowsAffected(), nil
}
