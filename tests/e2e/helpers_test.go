//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/comment"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/karma"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/like"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/user"
	authpkg "github.com/heartmarshall/karmafeed-backend/internal/auth"
	"github.com/heartmarshall/karmafeed-backend/internal/config"
	contentsvc "github.com/heartmarshall/karmafeed-backend/internal/service/content"
	karmasvc "github.com/heartmarshall/karmafeed-backend/internal/service/karma"
	likesvc "github.com/heartmarshall/karmafeed-backend/internal/service/like"
	usersvc "github.com/heartmarshall/karmafeed-backend/internal/service/user"
	"github.com/heartmarshall/karmafeed-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper). Redis is left out,
// so the leaderboard always reads through to the database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	txm := postgres.NewTxManager(pool)

	posts := post.New(pool)
	comments := comment.New(pool)
	likes := like.New(pool)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	karmaService := karmasvc.NewService(logger, karma.New(pool), nil, config.KarmaConfig{
		LeaderboardDefaultLimit: 5,
		LeaderboardMaxLimit:     100,
	})
	likeService := likesvc.NewService(logger, likes, posts, comments, txm, config.LikeConfig{
		MaxRetries:   10,
		RetryBackoff: time.Millisecond,
	})
	contentService := contentsvc.NewService(logger, posts, comments, txm, config.ContentConfig{
		MaxPostLength:    10000,
		MaxCommentLength: 2000,
		FeedDefaultLimit: 20,
		FeedMaxLimit:     100,
	})
	userService := usersvc.NewService(logger, userrepo.New(pool), karmaService, jwtMgr)

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:      logger,
		Tokens:      jwtMgr,
		LikeChecker: likeService,
		Users:       rest.NewUserHandler(userService, logger),
		Posts:       rest.NewPostHandler(contentService, logger),
		Likes:       rest.NewLikeHandler(likeService, logger),
		Leaderboard: rest.NewLeaderboardHandler(karmaService, logger),
		Health:      rest.NewHealthHandler("test-version", rest.HealthCheck{Name: "database", Critical: true, Ping: pool.Ping}),
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

// restRequest sends a JSON request and returns the raw response.
func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// doJSON sends a request and decodes the response body into a map.
func doJSON(t *testing.T, ts *testServer, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	resp := restRequest(t, ts, method, path, token, body)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// doJSONList is like doJSON for endpoints that return a JSON array.
func doJSONList(t *testing.T, ts *testServer, method, path, token string) (int, []any) {
	t.Helper()

	resp := restRequest(t, ts, method, path, token, nil)
	defer resp.Body.Close()

	var result []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// errorCode extracts error.code from an error envelope.
func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error object in %v", body)
	code, _ := e["code"].(string)
	return code
}

// ---------------------------------------------------------------------------
// Fixture helpers.
// ---------------------------------------------------------------------------

type account struct {
	ID    string
	Token string
}

// uniqueName returns a username that does not collide across tests sharing
// the database container.
func uniqueName(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}

// register creates a user through the API and returns its id and token.
func register(t *testing.T, ts *testServer, username string) account {
	t.Helper()

	status, body := doJSON(t, ts, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %v", username, body)

	u, ok := body["user"].(map[string]any)
	require.True(t, ok)
	return account{ID: u["id"].(string), Token: body["accessToken"].(string)}
}

func createPost(t *testing.T, ts *testServer, token, content string) map[string]any {
	t.Helper()
	status, body := doJSON(t, ts, http.MethodPost, "/posts", token, map[string]string{"content": content})
	require.Equal(t, http.StatusCreated, status, "create post: %v", body)
	return body
}

func createComment(t *testing.T, ts *testServer, token, postID, parentID, content string) map[string]any {
	t.Helper()
	req := map[string]any{"content": content}
	if parentID != "" {
		req["parentId"] = parentID
	}
	status, body := doJSON(t, ts, http.MethodPost, "/posts/"+postID+"/comments", token, req)
	require.Equal(t, http.StatusCreated, status, "create comment: %v", body)
	return body
}

func toggle(t *testing.T, ts *testServer, token, path string) map[string]any {
	t.Helper()
	status, body := doJSON(t, ts, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, status, "toggle %s: %v", path, body)
	return body
}

func profile(t *testing.T, ts *testServer, id string) map[string]any {
	t.Helper()
	status, body := doJSON(t, ts, http.MethodGet, "/users/"+id, "", nil)
	require.Equal(t, http.StatusOK, status, "profile: %v", body)
	return body
}

// num reads a JSON number field as int.
func num(t *testing.T, m map[string]any, key string) int {
	t.Helper()
	v, ok := m[key].(float64)
	require.True(t, ok, "expected number at %q in %v", key, m)
	return int(v)
}
