package domain

import (
	"time"

	"github.com/google/uuid"
)

// KarmaWindow is the length of the rolling window used by the leaderboard.
const KarmaWindow = 24 * time.Hour

// KarmaSummary holds karma derived from live like events.
type KarmaSummary struct {
	UserID   uuid.UUID
	Total    int
	Last24h  int
	Computed time.Time
}

// LeaderboardEntry is one ranked user.
type LeaderboardEntry struct {
	UserID   uuid.UUID `json:"userId"   db:"user_id"`
	Username string    `json:"username" db:"username"`
	Bio      string    `json:"bio"      db:"bio"`
	Karma24h int       `json:"karma24h" db:"karma"`
}

// WindowStart returns the inclusive lower bound of the window ending at now.
func WindowStart(now time.Time, window time.Duration) time.Time {
	return now.Add(-window)
}
