// Command reconcile recomputes the denormalized like_count of every post
// and comment from the likes table and repairs rows that drifted. The
// toggle engine keeps the counters exact, so a non-zero repair count is
// worth investigating. It is intended to be invoked by an external cron
// job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/comment"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/karma"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/karmafeed-backend/internal/app"
	"github.com/heartmarshall/karmafeed-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	posts, err := post.New(pool).RecountLikes(ctx)
	if err != nil {
		logger.Error("recount post likes failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	comments, err := comment.New(pool).RecountLikes(ctx)
	if err != nil {
		logger.Error("recount comment likes failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Karma is never stored, so it cannot drift; report it for the cron log.
	karmaTotal, err := karma.New(pool).SumAll(ctx)
	if err != nil {
		logger.Error("sum karma failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if posts+comments > 0 {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "like counters reconciled",
		slog.Int64("posts_repaired", posts),
		slog.Int64("comments_repaired", comments),
		slog.Int64("karma_total", karmaTotal),
	)
}
