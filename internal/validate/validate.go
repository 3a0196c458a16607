// Package validate runs struct-tag validation and converts failures into
// domain.ValidationError so that every layer sees the same error shape.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name, which is what API clients send.
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = val.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	return val
}

// Struct validates s. It returns nil or a *domain.ValidationError.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return domain.NewValidationErrors(fields)
}

// Merge combines field errors from a tag validation result with extra
// hand-written checks. It returns nil when there is nothing to report.
func Merge(err error, extra ...domain.FieldError) error {
	var ve *domain.ValidationError
	switch {
	case err == nil && len(extra) == 0:
		return nil
	case err == nil:
		return domain.NewValidationErrors(extra)
	case errors.As(err, &ve):
		return domain.NewValidationErrors(append(ve.Errors, extra...))
	default:
		return err
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "invalid email"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	case "username":
		return "may contain only letters, digits, '.', '_' and '-'"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "invalid value"
}
