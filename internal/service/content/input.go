package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/internal/validate"
)

// CreatePostInput holds parameters for creating a post.
type CreatePostInput struct {
	Content string `json:"content" validate:"required"`
}

// Validate validates the input against the configured maximum length.
func (i *CreatePostInput) Validate(maxLen int) error {
	i.Content = strings.TrimSpace(i.Content)
	return validate.Merge(validate.Struct(i), lengthErrors("content", i.Content, maxLen)...)
}

// ListPostsInput pages the feed. Zero Limit selects the default.
type ListPostsInput struct {
	AuthorID *uuid.UUID
	Limit    int `json:"limit"  validate:"gte=0"`
	Offset   int `json:"offset" validate:"gte=0"`
}

// Validate validates the input.
func (i ListPostsInput) Validate(maxLimit int) error {
	var extra []domain.FieldError
	if i.Limit > maxLimit {
		extra = append(extra, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be at most %d", maxLimit)})
	}
	return validate.Merge(validate.Struct(i), extra...)
}

// CreateCommentInput holds parameters for creating a comment. A nil
// ParentID creates a top-level comment.
type CreateCommentInput struct {
	PostID   uuid.UUID  `json:"postId"   validate:"required"`
	ParentID *uuid.UUID `json:"parentId"`
	Content  string     `json:"content"  validate:"required"`
}

// Validate validates the input against the configured maximum length.
func (i *CreateCommentInput) Validate(maxLen int) error {
	i.Content = strings.TrimSpace(i.Content)
	var extra []domain.FieldError
	if i.ParentID != nil && *i.ParentID == uuid.Nil {
		extra = append(extra, domain.FieldError{Field: "parentId", Message: "invalid"})
	}
	extra = append(extra, lengthErrors("content", i.Content, maxLen)...)
	return validate.Merge(validate.Struct(i), extra...)
}

func lengthErrors(field, s string, maxLen int) []domain.FieldError {
	if utf8.RuneCountInString(s) > maxLen {
		return []domain.FieldError{{Field: field, Message: fmt.Sprintf("must be at most %d characters", maxLen)}}
	}
	return nil
}
