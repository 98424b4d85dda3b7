// Package validation adapts go-playground/validator to echo's Validator
// interface. Every rule on a request struct is evaluated; violations are
// collected into a single batched response instead of failing on the first.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "taskboard/internal/errors"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Validator implements echo.Validator with per-field error batching.
type Validator struct {
	validate *validator.Validate
}

// New builds the validator with the application's custom rules registered.
func New() *Validator {
	v := validator.New()

	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// username charset: letters, digits, underscores.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate runs every declared rule and returns a batched *errors.HTTPError
// listing each violated field, or nil when all rules pass.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate request: %w", err)
	}

	details := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return apperrors.NewValidationError(details)
}

// message renders one violation in the API's human-readable phrasing.
func message(fe validator.FieldError) string {
	field := fe.Field()

	// Username length bounds share a single combined message.
	if field == "username" && (fe.Tag() == "min" || fe.Tag() == "max") {
		return "Username must be between 3 and 30 characters"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label(field))
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label(field), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label(field), fe.Param())
	case "email":
		return "Please provide a valid email"
	case "username":
		return "Username can only contain letters, numbers, and underscores"
	case "oneof":
		switch field {
		case "status":
			return "Status must be pending, in-progress, or completed"
		case "priority":
			return "Priority must be low, medium, or high"
		}
		return fmt.Sprintf("%s must be one of: %s", label(field), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label(field))
	}
}

// label turns a camelCase wire name into a sentence-style label:
// "currentPassword" becomes "Current password".
func label(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
