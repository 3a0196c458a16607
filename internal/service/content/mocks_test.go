package content

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// Ensure, that postRepoMock does implement postRepo.
var _ postRepo = &postRepoMock{}

type postRepoMock struct {
	CreateFunc  func(ctx context.Context, p *domain.Post) (*domain.Post, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListFunc    func(ctx context.Context, params post.ListParams) ([]*domain.Post, error)

	calls struct {
		Create []struct {
			P *domain.Post
		}
		List []struct {
			Params post.ListParams
		}
	}
	lockCreate sync.RWMutex
	lockList   sync.RWMutex
}

func (m *postRepoMock) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	if m.CreateFunc == nil {
		panic("postRepoMock.CreateFunc: method is nil but postRepo.Create was just called")
	}
	m.lockCreate.Lock()
	m.calls.Create = append(m.calls.Create, struct{ P *domain.Post }{p})
	m.lockCreate.Unlock()
	return m.CreateFunc(ctx, p)
}

func (m *postRepoMock) CreateCalls() []struct{ P *domain.Post } {
	m.lockCreate.RLock()
	defer m.lockCreate.RUnlock()
	return m.calls.Create
}

func (m *postRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.GetByIDFunc == nil {
		panic("postRepoMock.GetByIDFunc: method is nil but postRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *postRepoMock) List(ctx context.Context, params post.ListParams) ([]*domain.Post, error) {
	if m.ListFunc == nil {
		panic("postRepoMock.ListFunc: method is nil but postRepo.List was just called")
	}
	m.lockList.Lock()
	m.calls.List = append(m.calls.List, struct{ Params post.ListParams }{params})
	m.lockList.Unlock()
	return m.ListFunc(ctx, params)
}

func (m *postRepoMock) ListCalls() []struct{ Params post.ListParams } {
	m.lockList.RLock()
	defer m.lockList.RUnlock()
	return m.calls.List
}

// Ensure, that commentRepoMock does implement commentRepo.
var _ commentRepo = &commentRepoMock{}

type commentRepoMock struct {
	CreateFunc     func(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPostFunc func(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)

	calls struct {
		Create []struct {
			C *domain.Comment
		}
	}
	lockCreate sync.RWMutex
}

func (m *commentRepoMock) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	if m.CreateFunc == nil {
		panic("commentRepoMock.CreateFunc: method is nil but commentRepo.Create was just called")
	}
	m.lockCreate.Lock()
	m.calls.Create = append(m.calls.Create, struct{ C *domain.Comment }{c})
	m.lockCreate.Unlock()
	return m.CreateFunc(ctx, c)
}

func (m *commentRepoMock) CreateCalls() []struct{ C *domain.Comment } {
	m.lockCreate.RLock()
	defer m.lockCreate.RUnlock()
	return m.calls.Create
}

func (m *commentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.GetByIDFunc == nil {
		panic("commentRepoMock.GetByIDFunc: method is nil but commentRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *commentRepoMock) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if m.ListByPostFunc == nil {
		panic("commentRepoMock.ListByPostFunc: method is nil but commentRepo.ListByPost was just called")
	}
	return m.ListByPostFunc(ctx, postID)
}

// Ensure, that txManagerMock does implement txManager.
var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}
