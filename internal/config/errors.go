// Package config validates and normalizes project configurations and loads
// CLI defaults. Validation is pure: it never touches the file system, and it
// reports the first violated rule in a fixed order so messages are stable.
package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrIncompatibleOptions indicates two individually valid options cannot be combined.
	ErrIncompatibleOptions = errors.New("config: incompatible options")

	// ErrPresetNotFound indicates the preset file does not exist.
	ErrPresetNotFound = errors.New("config: preset file not found")

	// ErrInvalidYAML indicates invalid YAML syntax in a preset or defaults file.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")
)

// ValidationError reports the single field that made a configuration invalid.
type ValidationError struct {
	Field   string
	Reason  string
	Value   any
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// Is reports every ValidationError as ErrInvalidConfig, including
// incompatibility errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func invalid(field, reason string, value any) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Value: value, Wrapped: ErrInvalidConfig}
}

func incompatible(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Wrapped: ErrIncompatibleOptions}
}
