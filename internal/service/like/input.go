package like

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// ToggleInput names the item to like or unlike.
type ToggleInput struct {
	Kind     domain.TargetKind
	TargetID uuid.UUID
}

// Target returns the input as a domain.Target.
func (i ToggleInput) Target() domain.Target {
	return domain.Target{Kind: i.Kind, ID: i.TargetID}
}

// Validate validates the toggle input.
func (i ToggleInput) Validate() error {
	var errs []domain.FieldError

	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be post or comment"})
	}
	if i.TargetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
