package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/comment"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/karma"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/like"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/redis"
	"github.com/heartmarshall/karmafeed-backend/internal/auth"
	"github.com/heartmarshall/karmafeed-backend/internal/config"
	contentsvc "github.com/heartmarshall/karmafeed-backend/internal/service/content"
	karmasvc "github.com/heartmarshall/karmafeed-backend/internal/service/karma"
	likesvc "github.com/heartmarshall/karmafeed-backend/internal/service/like"
	usersvc "github.com/heartmarshall/karmafeed-backend/internal/service/user"
	"github.com/heartmarshall/karmafeed-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL (and Redis when configured), serves HTTP and shuts down
// gracefully when ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	var (
		rdb   *goredis.Client
		cache *redis.LeaderboardCache
	)
	if cfg.Redis.Enabled() {
		rdb, err = redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		cache = redis.NewLeaderboardCache(rdb, cfg.Redis.LeaderboardTTL)
		logger.Info("leaderboard cache enabled", slog.Duration("ttl", cfg.Redis.LeaderboardTTL))
	}

	handler := buildHandler(cfg, logger, pool, rdb, cache)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}

// buildHandler wires repositories, services and handlers. rdb and cache
// are nil when Redis is disabled.
func buildHandler(
	cfg *config.Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	rdb *goredis.Client,
	cache *redis.LeaderboardCache,
) http.Handler {
	tx := postgres.NewTxManager(db)

	users := user.New(db)
	posts := post.New(db)
	comments := comment.New(db)
	likes := like.New(db)
	karmaRepo := karma.New(db)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	// Pass an untyped nil when Redis is off so the service sees no cache.
	var karmaService *karmasvc.Service
	if cache != nil {
		karmaService = karmasvc.NewService(logger, karmaRepo, cache, cfg.Karma)
	} else {
		karmaService = karmasvc.NewService(logger, karmaRepo, nil, cfg.Karma)
	}
	likeService := likesvc.NewService(logger, likes, posts, comments, tx, cfg.Like)
	contentService := contentsvc.NewService(logger, posts, comments, tx, cfg.Content)
	userService := usersvc.NewService(logger, users, karmaService, jwt)

	checks := []rest.HealthCheck{{Name: "database", Critical: true, Ping: db.Ping}}
	if rdb != nil {
		checks = append(checks, rest.HealthCheck{Name: "cache", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	health := rest.NewHealthHandler(BuildVersion(), checks...)

	return rest.NewRouter(rest.RouterDeps{
		Logger:      logger,
		Tokens:      jwt,
		LikeChecker: likeService,
		Users:       rest.NewUserHandler(userService, logger),
		Posts:       rest.NewPostHandler(contentService, logger),
		Likes:       rest.NewLikeHandler(likeService, logger),
		Leaderboard: rest.NewLeaderboardHandler(karmaService, logger),
		Health:      health,
		Server:      cfg.Server,
		CORS:        cfg.CORS,
		RateLimit:   cfg.RateLimit,
	})
}
