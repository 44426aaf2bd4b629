package store

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match what the caller sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewLink validates a Create candidate and returns the record to store with
// its optional fields materialized. Identity is left for the backend.
func NewLink(in LinkInput) (*Link, error) {
	if err := validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}
	l := &Link{
		Title:       in.Title,
		URL:         in.URL,
		Emoji:       in.Emoji,
		Description: in.Description,
	}
	l.normalize()
	return l, nil
}

// ValidatePatch checks an Update patch and returns it with a supplied empty
// emoji replaced by DefaultEmoji.
func ValidatePatch(p LinkPatch) (LinkPatch, error) {
	if err := validate.Struct(p); err != nil {
		return p, toValidationError(err)
	}
	if p.Emoji != nil && *p.Emoji == "" {
		emoji := DefaultEmoji
		p.Emoji = &emoji
	}
	return p, nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := fieldErrs[0]
	msg := "is invalid"
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = "must not be empty"
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}
