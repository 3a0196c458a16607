package like

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// Ensure, that likeRepoMock does implement likeRepo.
var _ likeRepo = &likeRepoMock{}

type likeRepoMock struct {
	InsertFunc       func(ctx context.Context, like *domain.Like) (bool, error)
	DeleteFunc       func(ctx context.Context, userID uuid.UUID, target domain.Target) (bool, error)
	ExistsFunc       func(ctx context.Context, userID uuid.UUID, target domain.Target) (bool, error)
	LikedTargetsFunc func(ctx context.Context, userID uuid.UUID, kind domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	calls struct {
		Insert []struct {
			Like *domain.Like
		}
		Delete []struct {
			UserID uuid.UUID
			Target domain.Target
		}
	}
	lockInsert sync.RWMutex
	lockDelete sync.RWMutex
}

func (m *likeRepoMock) Insert(ctx context.Context, like *domain.Like) (bool, error) {
	if m.InsertFunc == nil {
		panic("likeRepoMock.InsertFunc: method is nil but likeRepo.Insert was just called")
	}
	m.lockInsert.Lock()
	m.calls.Insert = append(m.calls.Insert, struct{ Like *domain.Like }{like})
	m.lockInsert.Unlock()
	return m.InsertFunc(ctx, like)
}

func (m *likeRepoMock) InsertCalls() []struct{ Like *domain.Like } {
	m.lockInsert.RLock()
	defer m.lockInsert.RUnlock()
	return m.calls.Insert
}

func (m *likeRepoMock) Delete(ctx context.Context, userID uuid.UUID, target domain.Target) (bool, error) {
	if m.DeleteFunc == nil {
		panic("likeRepoMock.DeleteFunc: method is nil but likeRepo.Delete was just called")
	}
	m.lockDelete.Lock()
	m.calls.Delete = append(m.calls.Delete, struct {
		UserID uuid.UUID
		Target domain.Target
	}{userID, target})
	m.lockDelete.Unlock()
	return m.DeleteFunc(ctx, userID, target)
}

func (m *likeRepoMock) DeleteCalls() []struct {
	UserID uuid.UUID
	Target domain.Target
} {
	m.lockDelete.RLock()
	defer m.lockDelete.RUnlock()
	return m.calls.Delete
}

func (m *likeRepoMock) Exists(ctx context.Context, userID uuid.UUID, target domain.Target) (bool, error) {
	if m.ExistsFunc == nil {
		panic("likeRepoMock.ExistsFunc: method is nil but likeRepo.Exists was just called")
	}
	return m.ExistsFunc(ctx, userID, target)
}

func (m *likeRepoMock) LikedTargets(ctx context.Context, userID uuid.UUID, kind domain.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	if m.LikedTargetsFunc == nil {
		panic("likeRepoMock.LikedTargetsFunc: method is nil but likeRepo.LikedTargets was just called")
	}
	return m.LikedTargetsFunc(ctx, userID, kind, ids)
}

// Ensure, that targetStoreMock does implement targetStore.
var _ targetStore = &targetStoreMock{}

type targetStoreMock struct {
	AuthorOfFunc        func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	AdjustLikeCountFunc func(ctx context.Context, id uuid.UUID, delta int) (int, error)

	calls struct {
		AdjustLikeCount []struct {
			ID    uuid.UUID
			Delta int
		}
	}
	lockAdjustLikeCount sync.RWMutex
}

func (m *targetStoreMock) AuthorOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	if m.AuthorOfFunc == nil {
		panic("targetStoreMock.AuthorOfFunc: method is nil but targetStore.AuthorOf was just called")
	}
	return m.AuthorOfFunc(ctx, id)
}

func (m *targetStoreMock) AdjustLikeCount(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	if m.AdjustLikeCountFunc == nil {
		panic("targetStoreMock.AdjustLikeCountFunc: method is nil but targetStore.AdjustLikeCount was just called")
	}
	m.lockAdjustLikeCount.Lock()
	m.calls.AdjustLikeCount = append(m.calls.AdjustLikeCount, struct {
		ID    uuid.UUID
		Delta int
	}{id, delta})
	m.lockAdjustLikeCount.Unlock()
	return m.AdjustLikeCountFunc(ctx, id, delta)
}

func (m *targetStoreMock) AdjustLikeCountCalls() []struct {
	ID    uuid.UUID
	Delta int
} {
	m.lockAdjustLikeCount.RLock()
	defer m.lockAdjustLikeCount.RUnlock()
	return m.calls.AdjustLikeCount
}

// Ensure, that txManagerMock does implement txManager.
var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.lockRunInTx.Lock()
	m.calls.RunInTx = append(m.calls.RunInTx, struct{}{})
	m.lockRunInTx.Unlock()
	if m.RunInTxFunc == nil {
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}

func (m *txManagerMock) RunInTxCalls() int {
	m.lockRunInTx.RLock()
	defer m.lockRunInTx.RUnlock()
	return len(m.calls.RunInTx)
}
