package domain

import (
	"time"

	"github.com/google/uuid"
)

// Target references a likeable item: a post or a comment.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

func (t Target) String() string {
	return t.Kind.String() + ":" + t.ID.String()
}

// Like is one user's like of one item. ContentAuthorID is the item's author
// at like time and receives KarmaValue points.
type Like struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Target          Target
	ContentAuthorID uuid.UUID
	KarmaValue      int
	CreatedAt       time.Time
}

// ToggleResult describes the state after a like toggle.
type ToggleResult struct {
	Liked      bool
	LikeCount  int
	KarmaDelta int
}
