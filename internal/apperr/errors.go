// Package apperr defines the error kinds shared across services and mapped
// to HTTP responses by the server layer. Callers discriminate with errors.Is.
package apperr

import "errors"

var (
	// ErrDuplicateName signals a client, category, template or item name
	// collision (compared case-insensitively).
	ErrDuplicateName = errors.New("duplicate name")

	// ErrDuplicateOrder signals a second order for the same category and
	// calendar day.
	ErrDuplicateOrder = errors.New("duplicate order")

	// ErrValidation signals a missing or invalid input value.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound signals an operation on a missing entity id.
	ErrNotFound = errors.New("not found")

	// ErrPersistence signals a local or remote store read/write failure.
	// In-memory state is NOT rolled back when a mutation returns it.
	ErrPersistence = errors.New("persistence failure")
)
