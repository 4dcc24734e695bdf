package v1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field-scoped validation failure surfaced to clients.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldErrors converts a gin binding error into itemized field errors.
// Raw validator/unmarshal errors are never forwarded to clients.
func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   jsonFieldName(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// jsonFieldName lowercases the first rune; struct fields map 1:1 to their
// lowerCamel JSON tags in this API.
func jsonFieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "eqfield":
		return "must match " + jsonFieldName(fe.Param())
	default:
		return "is invalid"
	}
}
