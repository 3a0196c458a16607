package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxCommentParentDepth is the deepest comment that may still receive replies.
// Replies to it land on depth 5, the last allowed level.
const MaxCommentParentDepth = 4

// Post is a text post in the community feed.
type Post struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Author    *User
	Content   string
	LikeCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment is a threaded reply on a post. Root comments have no parent and
// depth 0; a reply is one level deeper than its parent.
type Comment struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	AuthorID  uuid.UUID
	Author    *User
	ParentID  *uuid.UUID
	Content   string
	Depth     int
	LikeCount int
	CreatedAt time.Time
	UpdatedAt time.Time

	Replies []*Comment
}

// BuildCommentTree links a flat, created_at ordered list of comments into
// trees and returns the roots. Replies whose parent is not in the list are
// dropped.
func BuildCommentTree(flat []*Comment) []*Comment {
	byID := make(map[uuid.UUID]*Comment, len(flat))
	for _, c := range flat {
		c.Replies = []*Comment{}
		byID[c.ID] = c
	}

	roots := make([]*Comment, 0)
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return roots
}
