package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails parsing or a range check
// (e.g. missing date, negative odometer, unresolvable unit price).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when well-formed input contradicts stored state,
// such as an end mileage below the session's start or a taken username.
// Handlers should map this to HTTP 400, reported separately from ErrValidation.
var ErrConflict = errors.New("conflict")

// ErrUnauthenticated is returned by the auth boundary when the caller has no
// valid identity proof or supplied wrong credentials.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("not authenticated")

// ValidationError identifies the first field that failed validation and a
// human-readable reason. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError carries a human-readable reason for a domain conflict.
// It matches ErrConflict under errors.Is.
type ConflictError struct {
	Message string
}

// NewConflictError returns a *ConflictError with the given message.
func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string { return "conflict: " + e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }
