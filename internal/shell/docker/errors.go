package docker

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrConnectionFailed = errors.New("docker connection failed")
	ErrTimeout          = errors.New("operation timed out")
)

// ClientError wraps errors with additional context.
type ClientError struct {
	Op      string // Operation that failed
	ID      string // Container ID or project name if applicable
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.ID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a new ClientError.
func NewClientError(op, id, message string, err error) *ClientError {
	return &ClientError{
		Op:      op,
		ID:      id,
		Message: message,
		Err:     err,
	}
}
