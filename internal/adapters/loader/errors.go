package loader

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownCategory = errors.New("unknown source category")
	ErrMissingColumn   = errors.New("missing column")
	ErrReadSource      = errors.New("read source failed")
)
