// Package collection accumulates the keyed frames of one ingestion run
// together with the run's metadata.
//
// A Collection is the downstream container the decoders emit into. It
// enforces the run invariants at insert time: key uniqueness (tracked
// in a roaring bitmap) and a uniform shape and element type across
// frames, where only the final axis may differ on a trailing,
// undersized group.
package collection

import (
	"errors"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

// ErrNoArrays is returned by FromArrays when called with nothing.
var ErrNoArrays = errors.New("no arrays given")

// DuplicateKeyError indicates two frames in one run sharing a key.
type DuplicateKeyError struct {
	Key uint64
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate frame key %d", e.Key)
}

// Collection is a thread-safe set of keyed frames.
type Collection struct {
	mu     sync.Mutex
	meta   frame.Metadata
	frames map[uint64]*frame.Array
	keys   *roaring64.Bitmap

	// refDims is the observed reference shape: the dims of the widest
	// frame seen so far. refElem is the observed element type.
	refDims frame.Dimensions
	refElem dtype.Type
}

// New creates an empty collection carrying the run's declared
// metadata.
func New(meta frame.Metadata) *Collection {
	return &Collection{
		meta:   meta,
		frames: make(map[uint64]*frame.Array),
		keys:   roaring64.New(),
	}
}

// Insert adds one frame. It fails on a duplicate key or on a frame
// whose shape or element type breaks the run invariants.
func (c *Collection) Insert(f frame.Frame) error {
	if f.Array == nil {
		return errors.New("nil frame array")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.keys.Contains(f.Key) {
		return &DuplicateKeyError{Key: f.Key}
	}
	if err := c.checkShape(f.Array); err != nil {
		return err
	}

	c.keys.Add(f.Key)
	c.frames[f.Key] = f.Array
	return nil
}

// checkShape verifies f against the observed reference shape. Frames
// must share the element type and all dims except the final axis; a
// shape missing the final axis entirely is also accepted, covering a
// trailing single-plane group emitted without a stacking axis.
func (c *Collection) checkShape(ary *frame.Array) error {
	if c.refElem == dtype.Invalid {
		c.refElem = ary.Elem
		c.refDims = ary.Dims
		return nil
	}
	if ary.Elem != c.refElem {
		return &frame.ElemMismatchError{Want: c.refElem, Got: ary.Elem}
	}

	ref, got := c.refDims, ary.Dims
	switch {
	case len(got) == len(ref):
		if !got[:len(got)-1].Equal(ref[:len(ref)-1]) {
			return &frame.ShapeMismatchError{Want: ref, Got: got}
		}
	case len(got) == len(ref)-1:
		if !got.Equal(ref[:len(ref)-1]) {
			return &frame.ShapeMismatchError{Want: ref, Got: got}
		}
	case len(got) == len(ref)+1:
		if !got[:len(got)-1].Equal(ref) {
			return &frame.ShapeMismatchError{Want: ref, Got: got}
		}
		c.refDims = got
	default:
		return &frame.ShapeMismatchError{Want: ref, Got: got}
	}
	return nil
}

// Len returns the number of frames inserted so far.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

// Keys returns all frame keys in ascending order.
func (c *Collection) Keys() []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys.ToArray()
}

// Get returns the array stored under key.
func (c *Collection) Get(key uint64) (*frame.Array, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ary, ok := c.frames[key]
	return ary, ok
}

// Frames returns all frames in ascending key order.
func (c *Collection) Frames() []frame.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]frame.Frame, 0, len(c.frames))
	it := c.keys.Iterator()
	for it.HasNext() {
		key := it.Next()
		out = append(out, frame.Frame{Key: key, Array: c.frames[key]})
	}
	return out
}

// Metadata returns the run metadata. Shape and element type left open
// by the declared metadata are backfilled from the observed frames.
func (c *Collection) Metadata() frame.Metadata {
	c.mu.Lock()
	defer c.mu.Unlock()

	meta := c.meta
	if meta.Dims == nil {
		meta.Dims = c.refDims
	}
	if meta.Elem == dtype.Invalid {
		meta.Elem = c.refElem
	}
	return meta
}

// FromArrays builds a collection directly from in-memory arrays,
// keyed 0..n-1 in the given order. Every array must have the same
// shape and element type; this path is stricter than Insert since no
// splitting is involved.
func FromArrays(arrays ...*frame.Array) (*Collection, error) {
	if len(arrays) == 0 {
		return nil, ErrNoArrays
	}
	first := arrays[0]
	for _, ary := range arrays[1:] {
		if !ary.Dims.Equal(first.Dims) {
			return nil, &frame.ShapeMismatchError{Want: first.Dims, Got: ary.Dims}
		}
		if ary.Elem != first.Elem {
			return nil, &frame.ElemMismatchError{Want: first.Elem, Got: ary.Elem}
		}
	}

	c := New(frame.NewMetadata(first.Dims, first.Elem, len(arrays)))
	for i, ary := range arrays {
		if err := c.Insert(frame.Frame{Key: uint64(i), Array: ary}); err != nil {
			return nil, err
		}
	}
	return c, nil
}
