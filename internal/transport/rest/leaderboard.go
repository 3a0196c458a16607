package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

type leaderboardService interface {
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// LeaderboardHandler serves the rolling 24 hour karma ranking.
type LeaderboardHandler struct {
	svc leaderboardService
	log *slog.Logger
}

// NewLeaderboardHandler creates a LeaderboardHandler.
func NewLeaderboardHandler(svc leaderboardService, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc, log: logger.With("handler", "leaderboard")}
}

// Get handles GET /leaderboard?limit=N. An absent limit uses the default.
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if r.URL.Query().Has("limit") && limit == 0 {
		handleError(h.log, w, r, domain.NewValidationError("limit", "must be at least 1"))
		return
	}

	entries, err := h.svc.Leaderboard(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
