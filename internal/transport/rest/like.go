package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/internal/service/like"
)

// likeService defines the minimal interface needed by LikeHandler.
type likeService interface {
	Toggle(ctx context.Context, input like.ToggleInput) (*domain.ToggleResult, error)
}

// LikeHandler serves the like toggle endpoints.
type LikeHandler struct {
	svc likeService
	log *slog.Logger
}

// NewLikeHandler creates a LikeHandler.
func NewLikeHandler(svc likeService, logger *slog.Logger) *LikeHandler {
	return &LikeHandler{svc: svc, log: logger.With("handler", "like")}
}

// TogglePost handles POST /posts/{id}/like.
func (h *LikeHandler) TogglePost(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.TargetPost)
}

// ToggleComment handles POST /comments/{id}/like.
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.TargetComment)
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, kind domain.TargetKind) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.Toggle(r.Context(), like.ToggleInput{Kind: kind, TargetID: id})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{
		Liked:      res.Liked,
		LikeCount:  res.LikeCount,
		KarmaDelta: res.KarmaDelta,
	})
}
