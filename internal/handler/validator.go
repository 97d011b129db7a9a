package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation tags for path parameters
const (
	tagPostID = "required,max=64,numeric"
	tagFeedID = "required,max=64,excludesall=/ "
	tagAttr   = "required,max=32"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	validate = &Validator{validate: validator.New()}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateVar validates a single value, reporting failures under field
func (v *Validator) ValidateVar(field string, value interface{}, tag string) map[string]string {
	return FormatValidationError(field, v.validate.Var(value, tag))
}

// FormatValidationError formats validation errors into a user-friendly map
func FormatValidationError(field string, err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		name := strings.ToLower(field)
		switch e.Tag() {
		case "required":
			errs[name] = "This field is required"
		case "numeric":
			errs[name] = "Must be numeric"
		case "max":
			errs[name] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "excludesall":
			errs[name] = "Contains invalid characters"
		default:
			errs[name] = "Invalid value"
		}
	}

	return errs
}
