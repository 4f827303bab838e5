package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrNotFound     = errors.New("district not ranked")
	ErrDuplicate    = errors.New("district already ranked")
	ErrInvalidLimit = errors.New("invalid ranking limit")
)
