package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with faker-generated profile data.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return SeedUserNamed(t, pool, faker.Username())
}

// SeedUserNamed inserts a user whose username starts with prefix. A unique
// suffix is appended so parallel tests never collide on the unique key.
func SeedUserNamed(t *testing.T, pool *pgxpool.Pool, prefix string) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Username:  prefix + "_" + suffix,
		Email:     prefix + "+" + suffix + "@example.com",
		Bio:       faker.Sentence(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, username, email, bio, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.Email, user.Bio, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// SeedPost inserts a post authored by authorID.
func SeedPost(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID) domain.Post {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	post := domain.Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   faker.Paragraph(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO posts (id, author_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		post.ID, post.AuthorID, post.Content, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPost: %v", err)
	}
	return post
}

// SeedComment inserts a top-level comment on postID.
func SeedComment(t *testing.T, pool *pgxpool.Pool, postID, authorID uuid.UUID) domain.Comment {
	t.Helper()
	return SeedReply(t, pool, postID, authorID, nil)
}

// SeedReply inserts a comment under parent, or a top-level comment when parent is nil.
func SeedReply(t *testing.T, pool *pgxpool.Pool, postID, authorID uuid.UUID, parent *domain.Comment) domain.Comment {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   faker.Sentence(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parent != nil {
		pid := parent.ID
		c.ParentID = &pid
		c.Depth = parent.Depth + 1
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO comments (id, post_id, author_id, parent_id, content, depth, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.PostID, c.AuthorID, c.ParentID, c.Content, c.Depth, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment: %v", err)
	}
	return c
}

// SeedLike inserts a like event directly, bypassing the counter. It is meant
// for karma and leaderboard tests that need control over created_at.
func SeedLike(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, target domain.Target, authorID uuid.UUID, at time.Time) domain.Like {
	t.Helper()

	l := domain.Like{
		ID:              uuid.New(),
		UserID:          userID,
		Target:          target,
		ContentAuthorID: authorID,
		KarmaValue:      target.Kind.KarmaValue(),
		CreatedAt:       at.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO likes (id, user_id, target_kind, target_id, content_author_id, karma_value, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.UserID, string(l.Target.Kind), l.Target.ID, l.ContentAuthorID, l.KarmaValue, l.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLike: %v", err)
	}
	return l
}
