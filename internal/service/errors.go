package service

import (
	"errors"

	"users-api/internal/domain"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned when the addressed user or session does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthenticated is returned when a token is missing or resolves to nobody.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden is returned when the caller does not own the target resource.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries per-field violations of a rejected save.
type ValidationError struct {
	Fields domain.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
