package store

import "errors"

var (
	// ErrNotFound is returned when a referenced location or session does
	// not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned on constraint violations such as inserting
	// a location with an id that already exists.
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalid is returned when input fails validation (bad coordinates,
	// radius outside the configured bounds, missing name).
	ErrInvalid = errors.New("invalid input")
)
