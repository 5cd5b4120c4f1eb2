// Package decode converts raw per-file records into keyed frames.
//
// Three decoders cover the supported container formats: StackDecoder
// for flat binary stacks of a configured shape, MultipageDecoder for
// containers holding an unknown number of 2-D pages, and
// SingleFrameDecoder for one-image files. All three are pure functions
// of their record and configuration, so records may be decoded in
// parallel, in any order; global ordering is carried entirely by the
// frame keys.
//
// Key contract, shared by all decoders:
//
//  1. No two frames across a run share a key.
//  2. Every frame from record i keys strictly before every frame from
//     record i+1.
//  3. Keys are dense for StackDecoder and SingleFrameDecoder; the
//     MultipageDecoder may leave gaps when files hold different page
//     counts, so consumers must never assume contiguity.
package decode

import (
	"github.com/framelab/framery/frame"
)

// Decoder turns one record into its ordered frames.
//
// Decode must be safe for concurrent use and must not retain state
// across records.
type Decoder interface {
	// Decode returns the finite, ordered frame list for one record.
	Decode(rec frame.Record) ([]frame.Frame, error)

	// Metadata describes a run over the given number of records. The
	// frame count is exact where it is statically determined by the
	// configuration, and explicitly unknown where it depends on
	// per-file content.
	Metadata(records int) frame.Metadata
}

// Options holds the optional decode configuration.
type Options struct {
	// PlanesPerFrame, if set, subdivides each file into frames of
	// that many planes. Must be positive when present.
	PlanesPerFrame *int
}

// Option mutates Options.
type Option func(*Options)

// WithPlanesPerFrame splits every decoded file into frames of n
// planes each. Passing a non-positive n is a configuration error,
// reported by the decoder constructor.
func WithPlanesPerFrame(n int) Option {
	return func(o *Options) {
		o.PlanesPerFrame = &n
	}
}

func applyOptions(opts []Option) Options {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// validatePlanes enforces the eager planesPerFrame check shared by the
// stack and multipage decoders.
func validatePlanes(o Options) error {
	if o.PlanesPerFrame != nil && *o.PlanesPerFrame <= 0 {
		return &PlanesPerFrameError{PlanesPerFrame: *o.PlanesPerFrame}
	}
	return nil
}
