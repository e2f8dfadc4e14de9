package device

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	ErrCodeDeviceUnavailable = "DEVICE_UNAVAILABLE"
	ErrCodeWriteFailure      = "WRITE_FAILURE"
)

// Error is a device-level failure.
type Error struct {
	Code     string
	Endpoint string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	prefix := e.Code
	if e.Endpoint != "" {
		prefix = fmt.Sprintf("%s [%s]", e.Code, e.Endpoint)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code, endpoint, message string, cause error) *Error {
	return &Error{
		Code:     code,
		Endpoint: endpoint,
		Message:  message,
		Cause:    cause,
	}
}

// IsUnavailable reports whether err is a DEVICE_UNAVAILABLE error.
func IsUnavailable(err error) bool {
	return hasCode(err, ErrCodeDeviceUnavailable)
}

// IsWriteFailure reports whether err is a WRITE_FAILURE error.
func IsWriteFailure(err error) bool {
	return hasCode(err, ErrCodeWriteFailure)
}

func hasCode(err error, code string) bool {
	var devErr *Error
	return errors.As(err, &devErr) && devErr.Code == code
}
