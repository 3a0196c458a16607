package karma

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// Ensure, that karmaRepoMock does implement karmaRepo.
var _ karmaRepo = &karmaRepoMock{}

type karmaRepoMock struct {
	TotalFunc    func(ctx context.Context, userID uuid.UUID) (int, error)
	SinceFunc    func(ctx context.Context, userID uuid.UUID, since, now time.Time) (int, error)
	TopSinceFunc func(ctx context.Context, since, now time.Time, limit int) ([]domain.LeaderboardEntry, error)

	calls struct {
		Since []struct {
			UserID     uuid.UUID
			Since, Now time.Time
		}
		TopSince []struct {
			Since, Now time.Time
			Limit      int
		}
	}
	lockSince    sync.RWMutex
	lockTopSince sync.RWMutex
}

func (m *karmaRepoMock) Total(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.TotalFunc == nil {
		panic("karmaRepoMock.TotalFunc: method is nil but karmaRepo.Total was just called")
	}
	return m.TotalFunc(ctx, userID)
}

func (m *karmaRepoMock) Since(ctx context.Context, userID uuid.UUID, since, now time.Time) (int, error) {
	if m.SinceFunc == nil {
		panic("karmaRepoMock.SinceFunc: method is nil but karmaRepo.Since was just called")
	}
	m.lockSince.Lock()
	m.calls.Since = append(m.calls.Since, struct {
		UserID     uuid.UUID
		Since, Now time.Time
	}{userID, since, now})
	m.lockSince.Unlock()
	return m.SinceFunc(ctx, userID, since, now)
}

func (m *karmaRepoMock) SinceCalls() []struct {
	UserID     uuid.UUID
	Since, Now time.Time
} {
	m.lockSince.RLock()
	defer m.lockSince.RUnlock()
	return m.calls.Since
}

func (m *karmaRepoMock) TopSince(ctx context.Context, since, now time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	if m.TopSinceFunc == nil {
		panic("karmaRepoMock.TopSinceFunc: method is nil but karmaRepo.TopSince was just called")
	}
	m.lockTopSince.Lock()
	m.calls.TopSince = append(m.calls.TopSince, struct {
		Since, Now time.Time
		Limit      int
	}{since, now, limit})
	m.lockTopSince.Unlock()
	return m.TopSinceFunc(ctx, since, now, limit)
}

func (m *karmaRepoMock) TopSinceCalls() []struct {
	Since, Now time.Time
	Limit      int
} {
	m.lockTopSince.RLock()
	defer m.lockTopSince.RUnlock()
	return m.calls.TopSince
}

// Ensure, that leaderboardCacheMock does implement leaderboardCache.
var _ leaderboardCache = &leaderboardCacheMock{}

type leaderboardCacheMock struct {
	GetFunc func(ctx context.Context, limit int) ([]domain.LeaderboardEntry, bool, error)
	SetFunc func(ctx context.Context, limit int, entries []domain.LeaderboardEntry) error

	calls struct {
		Set []struct {
			Limit   int
			Entries []domain.LeaderboardEntry
		}
	}
	lockSet sync.RWMutex
}

func (m *leaderboardCacheMock) Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, bool, error) {
	if m.GetFunc == nil {
		panic("leaderboardCacheMock.GetFunc: method is nil but leaderboardCache.Get was just called")
	}
	return m.GetFunc(ctx, limit)
}

func (m *leaderboardCacheMock) Set(ctx context.Context, limit int, entries []domain.LeaderboardEntry) error {
	m.lockSet.Lock()
	m.calls.Set = append(m.calls.Set, struct {
		Limit   int
		Entries []domain.LeaderboardEntry
	}{limit, entries})
	m.lockSet.Unlock()
	if m.SetFunc == nil {
		return nil
	}
	return m.SetFunc(ctx, limit, entries)
}

func (m *leaderboardCacheMock) SetCalls() []struct {
	Limit   int
	Entries []domain.LeaderboardEntry
} {
	m.lockSet.RLock()
	defer m.lockSet.RUnlock()
	return m.calls.Set
}
