// Package loader provides per-request DataLoaders that batch the viewer's
// like state for every post and comment rendered in one response.
package loader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type likeChecker interface {
	LikedByViewer(ctx context.Context, viewerID uuid.UUID, kind domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

// Loaders holds the per-request DataLoader instances.
type Loaders struct {
	PostLiked    *dataloader.Loader[uuid.UUID, bool]
	CommentLiked *dataloader.Loader[uuid.UUID, bool]
}

// NewLoaders creates loaders for one viewer. uuid.Nil is an anonymous viewer
// for whom every target reads as not liked.
func NewLoaders(likes likeChecker, viewerID uuid.UUID) *Loaders {
	return &Loaders{
		PostLiked:    newLoader(newLikedBatchFn(likes, viewerID, domain.TargetPost)),
		CommentLiked: newLoader(newLikedBatchFn(likes, viewerID, domain.TargetComment)),
	}
}

// Liked returns the loader for the given target kind.
func (l *Loaders) Liked(kind domain.TargetKind) *dataloader.Loader[uuid.UUID, bool] {
	if kind == domain.TargetComment {
		return l.CommentLiked
	}
	return l.PostLiked
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

func newLikedBatchFn(likes likeChecker, viewerID uuid.UUID, kind domain.TargetKind) dataloader.BatchFunc[uuid.UUID, bool] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[bool] {
		liked, err := likes.LikedByViewer(ctx, viewerID, kind, keys)
		if err != nil {
			return errorResults[bool](len(keys), err)
		}

		results := make([]*dataloader.Result[bool], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[bool]{Data: liked[key]}
		}
		return results
	}
}

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

type contextKey string

const loadersKey contextKey = "loaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("loader: loaders not found in context, is the middleware installed?")
	}
	return l
}
