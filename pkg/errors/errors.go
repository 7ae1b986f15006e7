package errors

import (
	"fmt"
	"net/http"
)

// TransportError represents a failed round trip against the directory
// API: network failure, timeout, or a non-2xx status. It deliberately
// carries no recovery information beyond the fact that the operation
// failed; retry policy belongs to the caller.
type TransportError struct {
	Op     string // operation name: "list users", "create user", ...
	Status int    // HTTP status code, 0 when the request never completed
	Err    error
}

// NewTransportError creates a new transport error
func NewTransportError(op string, status int, err error) *TransportError {
	return &TransportError{
		Op:     op,
		Status: status,
		Err:    err,
	}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s failed: %s", e.Op, http.StatusText(e.Status))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed", e.Op)
}

// Unwrap returns the wrapped error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}
