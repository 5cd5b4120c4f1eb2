package decode

import (
	"errors"

	"github.com/framelab/framery/codec"
	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

// MultipageDecoder walks the pages of a container record in order,
// grouping them into frames of planesPerFrame pages, or one frame per
// file when no split is configured.
//
// Unlike the stack decoder, the per-record frame count here is
// data-dependent: it is known only after the page walk for that record
// completes. Each record keys its frames with its own observed count,
// which tolerates files with differing page counts at the cost of
// possible gaps in the global key sequence.
type MultipageDecoder struct {
	pc     codec.PageCodec
	planes *int
}

// NewMultipageDecoder builds a multipage decoder on top of the given
// page codec. A nil codec is a dependency failure, reported here so
// nothing is ever scheduled against a missing capability.
func NewMultipageDecoder(pc codec.PageCodec, opts ...Option) (*MultipageDecoder, error) {
	if pc == nil {
		return nil, ErrNoPageCodec
	}
	o := applyOptions(opts)
	if err := validatePlanes(o); err != nil {
		return nil, err
	}
	return &MultipageDecoder{pc: pc, planes: o.PlanesPerFrame}, nil
}

// Decode implements Decoder. Pages are read strictly in increasing
// order until the codec signals the end of the container; a non-empty
// pending group is always flushed as the final frame, however short.
func (d *MultipageDecoder) Decode(rec frame.Record) ([]frame.Frame, error) {
	r, err := d.pc.Open(rec.Buffer)
	if err != nil {
		return nil, &ContainerError{Position: rec.Position, cause: err}
	}

	var groups []*frame.Array
	var pending []*frame.Array
	for page := 0; ; page++ {
		ary, err := r.Next()
		if errors.Is(err, codec.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, &PageError{Position: rec.Position, Page: page, cause: err}
		}
		pending = append(pending, ary)
		if d.planes != nil && len(pending) == *d.planes {
			group, err := frame.StackPlanes(pending...)
			if err != nil {
				return nil, &ContainerError{Position: rec.Position, cause: err}
			}
			groups = append(groups, group)
			pending = nil
		}
	}
	if len(pending) > 0 {
		group, err := frame.StackPlanes(pending...)
		if err != nil {
			return nil, &ContainerError{Position: rec.Position, cause: err}
		}
		groups = append(groups, group)
	}

	// nvals is this record's own frame count, not a shared constant.
	nvals := len(groups)
	frames := make([]frame.Frame, nvals)
	for i, group := range groups {
		frames[i] = frame.Frame{
			Key:   uint64(rec.Position)*uint64(nvals) + uint64(i),
			Array: group,
		}
	}
	return frames, nil
}

// Metadata implements Decoder. Without a split every file is one
// frame, so the count equals the record count; with a split the count
// depends on observed page counts and is reported as unknown.
func (d *MultipageDecoder) Metadata(records int) frame.Metadata {
	if d.planes == nil {
		return frame.NewMetadata(nil, dtype.Invalid, records)
	}
	return frame.NewMetadataUnknown(nil, dtype.Invalid)
}
