package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/config"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/internal/transport/middleware"
	"github.com/heartmarshall/karmafeed-backend/internal/transport/rest/loader"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type likeChecker interface {
	LikedByViewer(ctx context.Context, viewerID uuid.UUID, kind domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

// RouterDeps groups everything the HTTP surface needs.
type RouterDeps struct {
	Logger      *slog.Logger
	Tokens      tokenValidator
	LikeChecker likeChecker
	Users       *UserHandler
	Posts       *PostHandler
	Likes       *LikeHandler
	Leaderboard *LeaderboardHandler
	Health      *HealthHandler

	Server    config.ServerConfig
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
}

// NewRouter builds the HTTP handler with the full middleware stack.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	noop := middleware.Chain()
	apiLimit, likeLimit := noop, noop
	if d.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(d.RateLimit.MaxClients, d.RateLimit.ClientTTL)
		apiLimit = rl.Limit("api", d.RateLimit.RequestsPerMinute)
		likeLimit = middleware.Chain(apiLimit, rl.Limit("likes", d.RateLimit.LikesPerMinute))
	}

	api := func(h http.HandlerFunc) http.Handler { return apiLimit(h) }

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	mux.Handle("POST /auth/register", api(d.Users.Register))
	mux.Handle("GET /me", api(d.Users.Me))
	mux.Handle("GET /users/{id}", api(d.Users.Get))

	mux.Handle("POST /posts", api(d.Posts.Create))
	mux.Handle("GET /posts", api(d.Posts.List))
	mux.Handle("GET /posts/{id}", api(d.Posts.Get))
	mux.Handle("POST /posts/{id}/comments", api(d.Posts.CreateComment))
	mux.Handle("GET /posts/{id}/comments", api(d.Posts.ListComments))

	mux.Handle("POST /posts/{id}/like", likeLimit(http.HandlerFunc(d.Likes.TogglePost)))
	mux.Handle("POST /comments/{id}/like", likeLimit(http.HandlerFunc(d.Likes.ToggleComment)))

	mux.Handle("GET /leaderboard", api(d.Leaderboard.Get))

	return middleware.Chain(
		middleware.RequestID,
		middleware.ClientIP(d.Server.TrustProxy),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
		middleware.Auth(d.Tokens),
		loader.Middleware(d.LikeChecker),
	)(mux)
}
