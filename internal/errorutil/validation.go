package errorutil

import (
	"fmt"
	"strings"
)

// ValidationError represents a collection of validation failures
type ValidationError struct {
	Context string
	Errors  []FieldError
}

// FieldError represents a single field validation failure
type FieldError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s validation failed", e.Context)
	}

	var messages []string
	for _, fieldErr := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldErr.Field, fieldErr.Message))
	}

	return fmt.Sprintf("%s validation failed: %s", e.Context, strings.Join(messages, "; "))
}

// ValidationBuilder accumulates field failures so one pass reports all of them.
type ValidationBuilder struct {
	context string
	errors  []FieldError
}

// NewValidationBuilder creates a new validation builder with context
func NewValidationBuilder(context string) *ValidationBuilder {
	return &ValidationBuilder{
		context: context,
		errors:  make([]FieldError, 0),
	}
}

func (vb *ValidationBuilder) add(field string, value interface{}, message string) *ValidationBuilder {
	vb.errors = append(vb.errors, FieldError{Field: field, Value: value, Message: message})
	return vb
}

// RequiredString validates that a string field is not empty
func (vb *ValidationBuilder) RequiredString(field, value string) *ValidationBuilder {
	if IsEmptyString(value) {
		return vb.add(field, value, "is required")
	}
	return vb
}

// IntRange validates that value lies within [lo, hi].
func (vb *ValidationBuilder) IntRange(field string, value, lo, hi int) *ValidationBuilder {
	if value < lo || value > hi {
		return vb.add(field, value, fmt.Sprintf("must be between %d and %d", lo, hi))
	}
	return vb
}

// OneOf validates that value is one of the allowed options. Empty values are
// skipped; pair with RequiredString when the field is mandatory.
func (vb *ValidationBuilder) OneOf(field, value string, options []string) *ValidationBuilder {
	if value == "" {
		return vb
	}

	for _, option := range options {
		if value == option {
			return vb
		}
	}

	return vb.add(field, value, fmt.Sprintf("must be one of: %s", strings.Join(options, ", ")))
}

// Check records err against field when it is non-nil. It adapts parse
// functions that already know how to reject a value.
func (vb *ValidationBuilder) Check(field string, value interface{}, err error) *ValidationBuilder {
	if err != nil {
		return vb.add(field, value, err.Error())
	}
	return vb
}

// ValidIf conditionally applies validation based on a condition
func (vb *ValidationBuilder) ValidIf(condition bool, validationFunc func(*ValidationBuilder) *ValidationBuilder) *ValidationBuilder {
	if condition {
		return validationFunc(vb)
	}
	return vb
}

// Build returns the validation error if any errors were collected, nil otherwise
func (vb *ValidationBuilder) Build() error {
	if len(vb.errors) == 0 {
		return nil
	}

	return &ValidationError{
		Context: vb.context,
		Errors:  vb.errors,
	}
}

// HasErrors returns true if the builder has collected any validation errors
func (vb *ValidationBuilder) HasErrors() bool {
	return len(vb.errors) > 0
}

// IsEmptyString checks if a string is empty after trimming whitespace
func IsEmptyString(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateConfig runs validations under a "<name> configuration" context.
func ValidateConfig(configName string, validations func(*ValidationBuilder) *ValidationBuilder) error {
	vb := NewValidationBuilder(configName + " configuration")
	vb = validations(vb)
	return vb.Build()
}
