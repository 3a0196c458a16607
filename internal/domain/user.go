package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered member of the feed.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserProfile is a user together with karma derived from the like log.
type UserProfile struct {
	User
	Karma KarmaSummary
}
