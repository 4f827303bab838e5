package render

import (
	"time"

	"github.com/okian/headcount/pkg/logger"
)

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithWorkers bounds how many districts are rendered concurrently.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithBuildID stamps pages and the manifest with id instead of a random one.
func WithBuildID(id string) Option {
	return func(r *Renderer) {
		if id != "" {
			r.buildID = id
		}
	}
}

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger used for build progress.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}
