package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the target row of a mutation no longer exists.
var ErrNotFound = errors.New("not found")

// ErrPermissionDenied is returned when the device refuses push registration.
var ErrPermissionDenied = errors.New("push permission denied")

// ValidationError rejects user input before it reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransportError wraps a failure to reach the backend or a backend-side failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
