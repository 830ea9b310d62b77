package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the field-error shape the
// handlers render.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	return &Validator{validate: v}
}

// ValidationError is a single field-level error.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validate checks the struct tags and returns nil when everything passes.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ToValidationErrors converts a validator error into the field-error slice.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			out = append(out, ValidationError{
				Field:   fe.Field(),
				Message: messageFor(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return out
	}
	return ValidationErrors{{Field: "", Message: err.Error()}}
}

// FieldError builds a single-field ValidationErrors, used when a storage
// uniqueness conflict is reported as a form error.
func FieldError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message, Rule: "unique"}}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
