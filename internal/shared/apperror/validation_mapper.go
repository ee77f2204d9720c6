package apperror

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is one entry of an array-shaped detail payload, mirroring the
// schema-validation rejections the API contract exposes.
type FieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func formatFieldName(s string) string {
	// employee_id -> Employee Id
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapBindingError turns a gin binding failure into the field-error list the
// contract requires. Field names come from the json tags registered in Init.
func MapBindingError(err error) []FieldError {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Malformed JSON and friends: no field to point at.
		return []FieldError{{Loc: []string{"body"}, Msg: "Invalid request body"}}
	}

	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, FieldError{
			Loc: []string{"body", e.Field()},
			Msg: fieldErrorMessage(e),
		})
	}
	return out
}

func fieldErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Field required"
	case "email":
		return "value is not a valid email address"
	case "max":
		return fmt.Sprintf("String should have at most %s characters", e.Param())
	case "oneof":
		return fmt.Sprintf("String should match pattern '^(%s)$'", strings.ReplaceAll(e.Param(), " ", "|"))
	case "ymd":
		return `String should match pattern '^\d{4}-\d{2}-\d{2}$' (expected YYYY-MM-DD)`
	default:
		return fmt.Sprintf("%s is invalid", formatFieldName(e.Field()))
	}
}
