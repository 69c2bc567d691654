package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict (slug, email, token).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput indicates a request payload that fails validation.
	ErrInvalidInput = errors.New("invalid input")
)
