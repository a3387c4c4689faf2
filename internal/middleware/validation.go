package middleware

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/pioneer/admissions/internal/pkg/apperrors"
)

// BindingError converts an error from gin's ShouldBind* into an
// application error: field failures become a ValidationError, anything
// else (malformed JSON, wrong content type) a bad request.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &apperrors.ValidationError{}
		for _, e := range verrs {
			out.Fields = append(out.Fields, apperrors.FieldError{
				Path:    jsonName(e.Field()),
				Message: formatValidationError(e),
			})
		}
		return out
	}
	return apperrors.NewBadRequestError("Invalid request format")
}

// jsonName lowercases the leading letter of a Go field name
func jsonName(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := jsonName(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	default:
		return field + " validation failed: " + e.Tag()
	}
}
