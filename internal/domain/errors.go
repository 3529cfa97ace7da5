package domain

import "errors"

var (
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidTitle  = errors.New("invalid title")
	ErrInvalidText   = errors.New("invalid text")
	ErrInvalidColor  = errors.New("invalid color")
	ErrInvalidStatus = errors.New("invalid status")
)
