package model

import "errors"

// Sentinel error kinds shared by the domain packages. Callers match them with errors.Is.
var (
	// ErrInsufficientInformation reports that a required selector was omitted.
	ErrInsufficientInformation = errors.New("insufficient information")
	// ErrUnknownData reports a selector value outside the supported domain.
	ErrUnknownData = errors.New("unknown data")
	// ErrEmptyData reports a computation that needs at least one data point and has none.
	ErrEmptyData = errors.New("empty data")
)
