package decode

import (
	"fmt"

	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

// StackDecoder reshapes flat binary stack records into frames. The
// shape and element type come from configuration and are identical for
// every record, so the per-file group count is a run-wide constant and
// frame keys stay collision-free across records.
type StackDecoder struct {
	elem   dtype.Type
	dims   frame.Dimensions
	planes *int

	// groupsPerFile is the number of frames each record yields when
	// splitting; 1 when not.
	groupsPerFile int
}

// NewStackDecoder builds a stack decoder for records of the given
// shape and element type. Validation is eager: an empty shape, a
// non-positive axis or a non-positive planesPerFrame fails here,
// before any record is read.
func NewStackDecoder(elem dtype.Type, dims frame.Dimensions, opts ...Option) (*StackDecoder, error) {
	if !elem.Valid() {
		return nil, fmt.Errorf("invalid element type %v", elem)
	}
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	if err := validatePlanes(o); err != nil {
		return nil, err
	}

	d := &StackDecoder{
		elem:          elem,
		dims:          dims,
		planes:        o.PlanesPerFrame,
		groupsPerFile: 1,
	}
	if o.PlanesPerFrame != nil {
		total := dims.Last()
		p := *o.PlanesPerFrame
		d.groupsPerFile = total / p
		if total%p != 0 {
			d.groupsPerFile++
		}
	}
	return d, nil
}

// Decode implements Decoder. The record buffer must hold exactly the
// byte size implied by the configured shape; the array reinterprets it
// without copying.
func (d *StackDecoder) Decode(rec frame.Record) ([]frame.Frame, error) {
	want := d.dims.ElemCount() * d.elem.Size()
	if len(rec.Buffer) != want {
		return nil, &BufferSizeError{Position: rec.Position, Want: want, Got: len(rec.Buffer)}
	}
	ary := &frame.Array{Dims: d.dims, Elem: d.elem, Data: rec.Buffer}

	if d.planes == nil {
		return []frame.Frame{{Key: uint64(rec.Position), Array: ary}}, nil
	}
	return d.split(rec.Position, ary)
}

// split walks the final axis, closing a group at every exact multiple
// of planesPerFrame and flushing any remaining short run of planes as
// one last group. The flush only fires when planes remain, so an exact
// multiple never yields an empty frame.
func (d *StackDecoder) split(position int, ary *frame.Array) ([]frame.Frame, error) {
	total := d.dims.Last()
	p := *d.planes
	base := uint64(position) * uint64(d.groupsPerFile)

	frames := make([]frame.Frame, 0, d.groupsPerFile)
	local := 0
	last := 0
	for cur := 1; cur <= total; cur++ {
		if cur%p == 0 {
			group, err := ary.PlaneRange(last, cur)
			if err != nil {
				return nil, err
			}
			frames = append(frames, frame.Frame{Key: base + uint64(local), Array: group})
			local++
			last = cur
		}
	}
	if last < total {
		group, err := ary.PlaneRange(last, total)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame.Frame{Key: base + uint64(local), Array: group})
	}
	return frames, nil
}

// Metadata implements Decoder. The frame count is statically known in
// both modes: the shape is shared configuration, so every record
// yields the same group count.
func (d *StackDecoder) Metadata(records int) frame.Metadata {
	if d.planes == nil {
		return frame.NewMetadata(d.dims, d.elem, records)
	}
	return frame.NewMetadata(d.dims.WithLast(*d.planes), d.elem, records*d.groupsPerFile)
}
