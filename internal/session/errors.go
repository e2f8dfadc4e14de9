package session

import (
	"errors"
	"fmt"
)

// Error represents a session-level failure.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	ErrCodeInvalidCommand     = "INVALID_COMMAND"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
	ErrCodeClosed             = "SESSION_CLOSED"
)

// NewError creates a new session error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsInvalidCommand reports whether err rejects a malformed command.
func IsInvalidCommand(err error) bool {
	var sessErr *Error
	return errors.As(err, &sessErr) && sessErr.Code == ErrCodeInvalidCommand
}
