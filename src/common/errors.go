// Package common defines sentinel errors shared by the store, service and
// HTTP layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// Service-level errors.
	ErrInvalidOperation = errors.New("invalid operation")
	ErrValidation       = errors.New("validation error")
	ErrUnexpected       = errors.New("unexpected error")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)
