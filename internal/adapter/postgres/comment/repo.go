// Package comment implements the Comment repository using PostgreSQL.
package comment

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

const likeCountCheck = "comments_like_count_check"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new comment repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO comments (id, post_id, author_id, parent_id, content, depth, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, post_id, author_id, parent_id, content, depth, like_count, created_at, updated_at`

const authorOfSQL = `SELECT author_id FROM comments WHERE id = $1`

const adjustLikeCountSQL = `
UPDATE comments SET like_count = like_count + $2
WHERE id = $1
RETURNING like_count`

const recountLikesSQL = `
UPDATE comments c
SET like_count = x.n
FROM (
    SELECT c2.id, COUNT(l.id)::int AS n
    FROM comments c2
    LEFT JOIN likes l ON l.target_kind = 'comment' AND l.target_id = c2.id
    GROUP BY c2.id
) x
WHERE x.id = c.id AND c.like_count <> x.n`

type commentRow struct {
	ID        uuid.UUID  `db:"id"`
	PostID    uuid.UUID  `db:"post_id"`
	AuthorID  uuid.UUID  `db:"author_id"`
	ParentID  *uuid.UUID `db:"parent_id"`
	Content   string     `db:"content"`
	Depth     int        `db:"depth"`
	LikeCount int        `db:"like_count"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

type commentWithAuthorRow struct {
	commentRow
	Username string `db:"author_username"`
	Bio      string `db:"author_bio"`
}

func (r commentRow) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        r.ID,
		PostID:    r.PostID,
		AuthorID:  r.AuthorID,
		ParentID:  r.ParentID,
		Content:   r.Content,
		Depth:     r.Depth,
		LikeCount: r.LikeCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r commentWithAuthorRow) toDomain() *domain.Comment {
	c := r.commentRow.toDomain()
	c.Author = &domain.User{ID: r.AuthorID, Username: r.Username, Bio: r.Bio}
	return c
}

func selectWithAuthor() sq.SelectBuilder {
	return psql.Select(
		"c.id", "c.post_id", "c.author_id", "c.parent_id", "c.content", "c.depth",
		"c.like_count", "c.created_at", "c.updated_at",
		"u.username AS author_username", "u.bio AS author_bio",
	).
		From("comments c").
		Join("users u ON u.id = c.author_id")
}

// Create inserts a comment. Depth must already be computed by the caller.
// An unknown post, author or parent yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	var row commentRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, createSQL,
		c.ID, c.PostID, c.AuthorID, c.ParentID, c.Content, c.Depth, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "comment", c.ID)
	}
	return row.toDomain(), nil
}

// GetByID returns a comment together with its author.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query, args, err := selectWithAuthor().Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get comment query: %w", err)
	}

	var row commentWithAuthorRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return row.toDomain(), nil
}

// ListByPost returns every comment of a post as a flat list ordered by
// creation time, ready for domain.BuildCommentTree.
func (r *Repo) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	query, args, err := selectWithAuthor().
		Where(sq.Eq{"c.post_id": postID}).
		OrderBy("c.created_at ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments query: %w", err)
	}

	var rows []commentWithAuthorRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list comments: %w", postgres.MapError(err, "post", postID))
	}

	out := make([]*domain.Comment, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// AuthorOf returns the author of a comment, or domain.ErrNotFound.
func (r *Repo) AuthorOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var author uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, authorOfSQL, id).Scan(&author); err != nil {
		return uuid.Nil, postgres.MapError(err, "comment", id)
	}
	return author, nil
}

// AdjustLikeCount adds delta to the comment's like_count and returns the new value.
func (r *Repo) AdjustLikeCount(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	var count int
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, adjustLikeCountSQL, id, delta).Scan(&count)
	if err != nil {
		if postgres.IsCheckViolation(err, likeCountCheck) {
			return 0, fmt.Errorf("comment %s like_count %+d: %w", id, delta, domain.ErrInvariantViolation)
		}
		return 0, postgres.MapError(err, "comment", id)
	}
	return count, nil
}

// RecountLikes resets like_count for drifted comments and returns how many were fixed.
func (r *Repo) RecountLikes(ctx context.Context) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, recountLikesSQL)
	if err != nil {
		return 0, postgres.MapError(err, "comment", "recount")
	}
	return tag.RowsAffected(), nil
}
