package framery

import (
	"github.com/framelab/framery/codec"
	"github.com/framelab/framery/resource"
)

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithWorkers caps the number of records decoded concurrently.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		l.workers = n
	}
}

// WithResourceConfig bounds the run's memory and IO footprint.
func WithResourceConfig(cfg resource.Config) Option {
	return func(l *Loader) {
		l.res = resource.NewController(cfg)
	}
}

// WithPageCodec injects the page-decode capability used by the
// multipage and single-frame paths. Loading those formats without one
// is a dependency error.
func WithPageCodec(pc codec.PageCodec) Option {
	return func(l *Loader) {
		l.pageCodec = pc
	}
}
