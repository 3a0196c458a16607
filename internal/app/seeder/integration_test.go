//go:build integration

package seeder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/comment"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/karma"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/like"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/karmafeed-backend/internal/auth"
	"github.com/heartmarshall/karmafeed-backend/internal/config"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	contentsvc "github.com/heartmarshall/karmafeed-backend/internal/service/content"
	karmasvc "github.com/heartmarshall/karmafeed-backend/internal/service/karma"
	likesvc "github.com/heartmarshall/karmafeed-backend/internal/service/like"
	usersvc "github.com/heartmarshall/karmafeed-backend/internal/service/user"
)

func TestIntegration_SeedKeepsCountersConsistent(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	log := testLogger()
	tx := postgres.NewTxManager(pool)

	posts := post.New(pool)
	comments := comment.New(pool)
	likes := like.New(pool)
	jwt := auth.NewJWTManager("integration-secret-that-is-long-enough-32", "karmafeed", time.Hour)

	karmaService := karmasvc.NewService(log, karma.New(pool), nil, config.KarmaConfig{LeaderboardDefaultLimit: 5, LeaderboardMaxLimit: 100})
	users := usersvc.NewService(log, userrepo.New(pool), karmaService, jwt)
	content := contentsvc.NewService(log, posts, comments, tx, config.ContentConfig{
		MaxPostLength: 10000, MaxCommentLength: 2000, FeedDefaultLimit: 20, FeedMaxLimit: 100,
	})
	toggles := likesvc.NewService(log, likes, posts, comments, tx, config.LikeConfig{MaxRetries: 5, RetryBackoff: time.Millisecond})

	cfg := Config{Users: 3, PostsPerUser: 2, CommentsPerPost: 3, LikeRatio: 0.7, Seed: 3}
	p := NewPipeline(log, users, content, toggles, cfg)
	require.NoError(t, p.Run(context.Background(), nil))
	require.False(t, p.HasErrors(), "results: %+v", p.Results())

	ctx := context.Background()
	for _, acc := range p.Accounts() {
		id, err := jwt.ValidateToken(ctx, acc.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, id)
	}

	for _, seeded := range p.posts {
		stored, err := posts.GetByID(ctx, seeded.ID)
		require.NoError(t, err)
		n, err := likes.CountByTarget(ctx, domain.Target{Kind: domain.TargetPost, ID: seeded.ID})
		require.NoError(t, err)
		assert.Equal(t, n, stored.LikeCount, "post %s", seeded.ID)
	}
	for _, seeded := range p.comments {
		stored, err := comments.GetByID(ctx, seeded.ID)
		require.NoError(t, err)
		n, err := likes.CountByTarget(ctx, domain.Target{Kind: domain.TargetComment, ID: seeded.ID})
		require.NoError(t, err)
		assert.Equal(t, n, stored.LikeCount, "comment %s", seeded.ID)
		assert.LessOrEqual(t, stored.Depth, domain.MaxCommentParentDepth+1)
	}
}
