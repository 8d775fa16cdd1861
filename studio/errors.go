package studio

import (
	"errors"
	"fmt"
)

// ValidationError is raised before any request is sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ServerError means the request reached the backend but the backend reported
// a failure, or answered without the expected field.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// TransportError wraps a network or decoding failure
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("server connection failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a *ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsServer reports whether err is a *ServerError
func IsServer(err error) bool {
	var s *ServerError
	return errors.As(err, &s)
}

// IsTransport reports whether err is a *TransportError
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

func serverError(message, fallback string) *ServerError {
	if message == "" {
		message = fallback
	}
	return &ServerError{Message: message}
}
