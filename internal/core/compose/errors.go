// Package compose contains pure functions for reading the stack's Docker
// Compose file. This is part of the Functional Core - no I/O; the shell
// hands in the raw YAML.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrEmptyInput  = errors.New("compose spec is empty")
	ErrInvalidYAML = errors.New("invalid YAML syntax")
	ErrNoServices  = errors.New("compose spec must define at least one service")
)

// ParseError wraps errors with context about where parsing failed.
type ParseError struct {
	Field   string // e.g., "services.api"
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
