package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// Ensure, that userRepoMock does implement userRepo.
var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	CreateFunc  func(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	calls struct {
		Create []struct {
			U *domain.User
		}
		GetByID []struct {
			ID uuid.UUID
		}
	}
	lockCreate  sync.RWMutex
	lockGetByID sync.RWMutex
}

func (m *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	m.lockCreate.Lock()
	m.calls.Create = append(m.calls.Create, struct{ U *domain.User }{u})
	m.lockCreate.Unlock()
	return m.CreateFunc(ctx, u)
}

func (m *userRepoMock) CreateCalls() []struct{ U *domain.User } {
	m.lockCreate.RLock()
	defer m.lockCreate.RUnlock()
	return m.calls.Create
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	m.lockGetByID.Lock()
	m.calls.GetByID = append(m.calls.GetByID, struct{ ID uuid.UUID }{id})
	m.lockGetByID.Unlock()
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	m.lockGetByID.RLock()
	defer m.lockGetByID.RUnlock()
	return m.calls.GetByID
}

// Ensure, that karmaSummarizerMock does implement karmaSummarizer.
var _ karmaSummarizer = &karmaSummarizerMock{}

type karmaSummarizerMock struct {
	SummaryFunc func(ctx context.Context, userID uuid.UUID) (*domain.KarmaSummary, error)
}

func (m *karmaSummarizerMock) Summary(ctx context.Context, userID uuid.UUID) (*domain.KarmaSummary, error) {
	if m.SummaryFunc == nil {
		panic("karmaSummarizerMock.SummaryFunc: method is nil but karmaSummarizer.Summary was just called")
	}
	return m.SummaryFunc(ctx, userID)
}

// Ensure, that tokenIssuerMock does implement tokenIssuer.
var _ tokenIssuer = &tokenIssuerMock{}

type tokenIssuerMock struct {
	GenerateAccessTokenFunc func(userID uuid.UUID) (string, error)
}

func (m *tokenIssuerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	if m.GenerateAccessTokenFunc == nil {
		panic("tokenIssuerMock.GenerateAccessTokenFunc: method is nil but tokenIssuer.GenerateAccessToken was just called")
	}
	return m.GenerateAccessTokenFunc(userID)
}
