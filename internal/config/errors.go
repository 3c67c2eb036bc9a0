package config

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch indicates the value type doesn't match the expected type.
var ErrTypeMismatch = errors.New("type mismatch")

// ValidationError represents a setting that failed validation.
type ValidationError struct {
	// Path is the setting path (e.g., "history.max_size").
	Path string
	// Value is the invalid value.
	Value any
	// Message describes why the value is invalid.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Path, e.Value, e.Message)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
