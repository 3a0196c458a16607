package user

import (
	"strings"

	"github.com/heartmarshall/karmafeed-backend/internal/validate"
)

// RegisterInput holds parameters for registration.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Bio      string `json:"bio"      validate:"max=500"`
}

// Validate normalizes and validates the input.
func (i *RegisterInput) Validate() error {
	i.Username = strings.TrimSpace(i.Username)
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	i.Bio = strings.TrimSpace(i.Bio)
	return validate.Struct(i)
}
