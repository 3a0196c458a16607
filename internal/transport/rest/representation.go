package rest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/internal/render"
	"github.com/heartmarshall/karmafeed-backend/internal/transport/rest/loader"
)

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
}

type profileResponse struct {
	userResponse
	TotalKarma int `json:"totalKarma"`
	Karma24h   int `json:"karma24h"`
}

type postResponse struct {
	ID          uuid.UUID     `json:"id"`
	Author      *userResponse `json:"author,omitempty"`
	Content     string        `json:"content"`
	ContentHTML string        `json:"contentHtml"`
	LikeCount   int           `json:"likeCount"`
	IsLiked     bool          `json:"isLiked"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type commentResponse struct {
	ID          uuid.UUID          `json:"id"`
	PostID      uuid.UUID          `json:"postId"`
	ParentID    *uuid.UUID         `json:"parentId"`
	Author      *userResponse      `json:"author,omitempty"`
	Content     string             `json:"content"`
	ContentHTML string             `json:"contentHtml"`
	Depth       int                `json:"depth"`
	LikeCount   int                `json:"likeCount"`
	IsLiked     bool               `json:"isLiked"`
	CreatedAt   time.Time          `json:"createdAt"`
	Replies     []*commentResponse `json:"replies"`
}

type toggleResponse struct {
	Liked      bool `json:"liked"`
	LikeCount  int  `json:"likeCount"`
	KarmaDelta int  `json:"karmaDelta"`
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

func toProfileResponse(p *domain.UserProfile) profileResponse {
	return profileResponse{
		userResponse: *toUserResponse(&p.User),
		TotalKarma:   p.Karma.Total,
		Karma24h:     p.Karma.Last24h,
	}
}

// toPostResponses renders posts with the viewer's like state. All lookups
// are queued before the first is awaited so they resolve in one batch.
func toPostResponses(ctx context.Context, posts []*domain.Post) ([]postResponse, error) {
	ld := loader.FromContext(ctx)
	thunks := make([]func() (bool, error), len(posts))
	for i, p := range posts {
		thunks[i] = ld.PostLiked.Load(ctx, p.ID)
	}

	out := make([]postResponse, len(posts))
	for i, p := range posts {
		liked, err := thunks[i]()
		if err != nil {
			return nil, err
		}
		out[i] = postResponse{
			ID:          p.ID,
			Author:      toUserResponse(p.Author),
			Content:     p.Content,
			ContentHTML: render.Markdown(p.Content),
			LikeCount:   p.LikeCount,
			IsLiked:     liked,
			CreatedAt:   p.CreatedAt,
		}
	}
	return out, nil
}

func toPostResponse(ctx context.Context, p *domain.Post) (postResponse, error) {
	out, err := toPostResponses(ctx, []*domain.Post{p})
	if err != nil {
		return postResponse{}, err
	}
	return out[0], nil
}

// toCommentResponses renders a comment forest with the viewer's like state.
func toCommentResponses(ctx context.Context, roots []*domain.Comment) ([]*commentResponse, error) {
	ld := loader.FromContext(ctx)
	thunks := make(map[uuid.UUID]func() (bool, error))
	var queue func(cs []*domain.Comment)
	queue = func(cs []*domain.Comment) {
		for _, c := range cs {
			thunks[c.ID] = ld.CommentLiked.Load(ctx, c.ID)
			queue(c.Replies)
		}
	}
	queue(roots)

	var build func(cs []*domain.Comment) ([]*commentResponse, error)
	build = func(cs []*domain.Comment) ([]*commentResponse, error) {
		out := make([]*commentResponse, 0, len(cs))
		for _, c := range cs {
			liked, err := thunks[c.ID]()
			if err != nil {
				return nil, err
			}
			replies, err := build(c.Replies)
			if err != nil {
				return nil, err
			}
			out = append(out, &commentResponse{
				ID:          c.ID,
				PostID:      c.PostID,
				ParentID:    c.ParentID,
				Author:      toUserResponse(c.Author),
				Content:     c.Content,
				ContentHTML: render.Markdown(c.Content),
				Depth:       c.Depth,
				LikeCount:   c.LikeCount,
				IsLiked:     liked,
				CreatedAt:   c.CreatedAt,
				Replies:     replies,
			})
		}
		return out, nil
	}
	return build(roots)
}
