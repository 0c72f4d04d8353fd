package config

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigNotFoundError is returned when an explicitly requested config file
// does not exist.
type ConfigNotFoundError struct {
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// IsConfigNotFound returns true if the error is a ConfigNotFoundError
func IsConfigNotFound(err error) bool {
	var target *ConfigNotFoundError
	return errors.As(err, &target)
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid %s: %s (got %v)", e.Field, e.Message, e.Value)
	}
	return "invalid " + e.Field + ": " + e.Message
}

// MultiValidationError collects every validation failure of one config.
type MultiValidationError struct {
	Errors []error
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "found %d configuration errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidationErrors returns the individual errors
func (e *MultiValidationError) ValidationErrors() []error {
	return e.Errors
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *MultiValidationError) Unwrap() []error {
	return e.Errors
}
