package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("repository: not found")

	// ErrBookingOverlap is returned when an active booking already holds part of the interval.
	ErrBookingOverlap = errors.New("repository: booking overlaps an active booking")

	// ErrDuplicateEmail is returned when an account with the same email exists.
	ErrDuplicateEmail = errors.New("repository: email already registered")

	// ErrSessionNotFound is returned when a session key has expired or was never stored.
	ErrSessionNotFound = errors.New("repository: session not found")

	// ErrBuildQuery wraps squirrel builder failures.
	ErrBuildQuery = errors.New("repository: failed to build query")
)
