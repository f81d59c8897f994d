package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrMalformedRecord is returned when a stored record fails schema validation
	ErrMalformedRecord = errors.New("malformed record")

	// ErrAlreadyExists is returned when a record would overwrite another one
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
