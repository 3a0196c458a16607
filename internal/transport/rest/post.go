package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/internal/service/content"
)

// contentService defines the minimal interface needed by PostHandler.
type contentService interface {
	CreatePost(ctx context.Context, input content.CreatePostInput) (*domain.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListPosts(ctx context.Context, input content.ListPostsInput) ([]*domain.Post, error)
	CreateComment(ctx context.Context, input content.CreateCommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
}

// PostHandler serves posts and their comment threads.
type PostHandler struct {
	svc contentService
	log *slog.Logger
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(svc contentService, logger *slog.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: logger.With("handler", "post")}
}

type createPostRequest struct {
	Content string `json:"content"`
}

type createCommentRequest struct {
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parentId"`
}

type postListResponse struct {
	Items  []postResponse `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// Create handles POST /posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.svc.CreatePost(r.Context(), content.CreatePostInput{Content: req.Content})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writePost(w, r, http.StatusCreated, p)
}

// Get handles GET /posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.svc.GetPost(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writePost(w, r, http.StatusOK, p)
}

// List handles GET /posts?limit&offset&author.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := listPostsInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	posts, err := h.svc.ListPosts(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := toPostResponses(r.Context(), posts)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, postListResponse{Items: items, Limit: input.Limit, Offset: input.Offset})
}

// CreateComment handles POST /posts/{id}/comments.
func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req createCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.CreateComment(r.Context(), content.CreateCommentInput{
		PostID:   postID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out, err := toCommentResponses(r.Context(), []*domain.Comment{c})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out[0])
}

// ListComments handles GET /posts/{id}/comments.
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	tree, err := h.svc.ListComments(r.Context(), postID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out, err := toCommentResponses(r.Context(), tree)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PostHandler) writePost(w http.ResponseWriter, r *http.Request, status int, p *domain.Post) {
	out, err := toPostResponse(r.Context(), p)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, status, out)
}

func listPostsInput(r *http.Request) (content.ListPostsInput, error) {
	var input content.ListPostsInput
	var err error
	if input.Limit, err = queryInt(r, "limit"); err != nil {
		return input, err
	}
	if input.Offset, err = queryInt(r, "offset"); err != nil {
		return input, err
	}
	if raw := r.URL.Query().Get("author"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return input, domain.NewValidationError("author", "must be a UUID")
		}
		input.AuthorID = &id
	}
	return input, nil
}
