package render

import "errors"

// Sentinel errors returned by the renderer.
var (
	ErrTemplate = errors.New("template failed")
	ErrWrite    = errors.New("write failed")
)
