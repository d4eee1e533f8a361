package storage

import "errors"

// Storage errors shared by all implementations.
var (
	// ErrNotFound is returned when the requested data does not exist,
	// including a token cache that has never been written.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
