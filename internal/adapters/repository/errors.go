package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound    = errors.New("district not found")
	ErrInvalidName = errors.New("invalid district name")
)
