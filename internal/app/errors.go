package app

import "errors"

// ErrNotFound and related errors describe persistence and input failures.
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidBlob = errors.New("invalid board blob")
	ErrEmptyTitle  = errors.New("title must not be empty")
)
