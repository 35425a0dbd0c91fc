package store

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSlug is returned when a category slug is already taken
	ErrDuplicateSlug = errors.New("duplicate slug")

	// ErrAlreadyExists is returned when creating a row whose unique key is taken
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned for values the store refuses to persist
	ErrInvalidInput = errors.New("invalid input")
)
