package config

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a rejected configuration value. It is raised at setup time,
// before any surface sampling or animation work begins.
type ConfigurationError struct {
	// Field is the configuration key that failed validation (e.g. "resolutionU").
	Field string

	// Value is the rejected value as supplied by the caller.
	Value any

	// Reason describes the constraint the value violated.
	Reason string
}

// Error implements the error interface.
//
// Returns:
//   - string: a human readable description of the rejected field
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// NewConfigurationError creates a ConfigurationError for the given field.
//
// Parameters:
//   - field: the configuration key that failed validation
//   - value: the rejected value
//   - reason: the violated constraint
//
// Returns:
//   - *ConfigurationError: the constructed error
func NewConfigurationError(field string, value any, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}

// IsConfigurationError reports whether err, or any error it wraps, is a ConfigurationError.
//
// Parameters:
//   - err: the error to inspect
//
// Returns:
//   - bool: true if a ConfigurationError is present in the chain
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
