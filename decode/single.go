package decode

import (
	"errors"

	"github.com/framelab/framery/codec"
	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

// SingleFrameDecoder decodes each record into exactly one frame keyed
// by the record position. It performs no splitting: planesPerFrame,
// if configured, does not apply to this format and is ignored.
type SingleFrameDecoder struct {
	pc codec.PageCodec
}

// NewSingleFrameDecoder builds a single-frame decoder on top of the
// given page codec. A nil codec is a dependency failure.
func NewSingleFrameDecoder(pc codec.PageCodec, opts ...Option) (*SingleFrameDecoder, error) {
	if pc == nil {
		return nil, ErrNoPageCodec
	}
	// Options are accepted for interface symmetry; this format has no
	// configuration-driven splitting.
	_ = applyOptions(opts)
	return &SingleFrameDecoder{pc: pc}, nil
}

// Decode implements Decoder.
func (d *SingleFrameDecoder) Decode(rec frame.Record) ([]frame.Frame, error) {
	r, err := d.pc.Open(rec.Buffer)
	if err != nil {
		return nil, &ContainerError{Position: rec.Position, cause: err}
	}
	ary, err := r.Next()
	if errors.Is(err, codec.ErrNoMorePages) {
		return nil, &EmptyContainerError{Position: rec.Position}
	}
	if err != nil {
		return nil, &PageError{Position: rec.Position, Page: 0, cause: err}
	}
	return []frame.Frame{{Key: uint64(rec.Position), Array: ary}}, nil
}

// Metadata implements Decoder. One frame per record, known before any
// buffer is decoded.
func (d *SingleFrameDecoder) Metadata(records int) frame.Metadata {
	return frame.NewMetadata(nil, dtype.Invalid, records)
}
