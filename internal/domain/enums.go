package domain

// TargetKind identifies the type of a likeable item.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Karma awarded to the content author per like.
const (
	PostLikeKarma    = 5
	CommentLikeKarma = 1
)

func (k TargetKind) String() string { return string(k) }

func (k TargetKind) IsValid() bool {
	switch k {
	case TargetPost, TargetComment:
		return true
	}
	return false
}

// KarmaValue returns the karma a single like on this kind of item is worth.
// Unknown kinds are worth nothing.
func (k TargetKind) KarmaValue() int {
	switch k {
	case TargetPost:
		return PostLikeKarma
	case TargetComment:
		return CommentLikeKarma
	}
	return 0
}
