package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

func ary(t *testing.T, dims frame.Dimensions) *frame.Array {
	t.Helper()
	a, err := frame.NewArray(dims, dtype.Uint8, make([]byte, dims.ElemCount()))
	require.NoError(t, err)
	return a
}

func TestInsert_DuplicateKey(t *testing.T) {
	c := New(frame.NewMetadataUnknown(nil, 0))
	require.NoError(t, c.Insert(frame.Frame{Key: 3, Array: ary(t, frame.Dimensions{2, 2})}))

	err := c.Insert(frame.Frame{Key: 3, Array: ary(t, frame.Dimensions{2, 2})})
	var dke *DuplicateKeyError
	require.ErrorAs(t, err, &dke)
	assert.Equal(t, uint64(3), dke.Key)
}

func TestInsert_ShapeInvariants(t *testing.T) {
	c := New(frame.NewMetadataUnknown(nil, 0))
	require.NoError(t, c.Insert(frame.Frame{Key: 0, Array: ary(t, frame.Dimensions{2, 2, 2})}))

	// Final axis may differ (trailing short group).
	assert.NoError(t, c.Insert(frame.Frame{Key: 1, Array: ary(t, frame.Dimensions{2, 2, 1})}))

	// A shape missing the final axis is the single-plane variant.
	assert.NoError(t, c.Insert(frame.Frame{Key: 2, Array: ary(t, frame.Dimensions{2, 2})}))

	// Any other difference is an error.
	err := c.Insert(frame.Frame{Key: 3, Array: ary(t, frame.Dimensions{3, 2, 2})})
	var sme *frame.ShapeMismatchError
	assert.ErrorAs(t, err, &sme)
}

func TestInsert_SinglePlaneFirst(t *testing.T) {
	// The short variant arriving before any full-size frame must not
	// poison the reference shape: parallel decode gives no ordering.
	c := New(frame.NewMetadataUnknown(nil, 0))
	require.NoError(t, c.Insert(frame.Frame{Key: 2, Array: ary(t, frame.Dimensions{2, 2})}))
	assert.NoError(t, c.Insert(frame.Frame{Key: 0, Array: ary(t, frame.Dimensions{2, 2, 2})}))
	assert.NoError(t, c.Insert(frame.Frame{Key: 1, Array: ary(t, frame.Dimensions{2, 2, 3})}))
}

func TestInsert_ElemMismatch(t *testing.T) {
	c := New(frame.NewMetadataUnknown(nil, 0))
	require.NoError(t, c.Insert(frame.Frame{Key: 0, Array: ary(t, frame.Dimensions{2, 2})}))

	bad, err := frame.NewArray(frame.Dimensions{2, 2}, dtype.Int16, make([]byte, 8))
	require.NoError(t, err)
	err = c.Insert(frame.Frame{Key: 1, Array: bad})
	var eme *frame.ElemMismatchError
	assert.ErrorAs(t, err, &eme)
}

func TestKeysAndFrames_Sorted(t *testing.T) {
	c := New(frame.NewMetadataUnknown(nil, 0))
	for _, key := range []uint64{5, 1, 9, 0} {
		require.NoError(t, c.Insert(frame.Frame{Key: key, Array: ary(t, frame.Dimensions{2, 2})}))
	}

	assert.Equal(t, []uint64{0, 1, 5, 9}, c.Keys())

	frames := c.Frames()
	require.Len(t, frames, 4)
	for i := 1; i < len(frames); i++ {
		assert.Less(t, frames[i-1].Key, frames[i].Key)
	}

	_, ok := c.Get(5)
	assert.True(t, ok)
	_, ok = c.Get(2)
	assert.False(t, ok)
	assert.Equal(t, 4, c.Len())
}

func TestMetadata_Backfill(t *testing.T) {
	c := New(frame.NewMetadataUnknown(nil, 0))
	require.NoError(t, c.Insert(frame.Frame{Key: 0, Array: ary(t, frame.Dimensions{4, 3})}))

	meta := c.Metadata()
	assert.True(t, meta.Dims.Equal(frame.Dimensions{4, 3}))
	assert.Equal(t, dtype.Uint8, meta.Elem)
	_, known := meta.FrameCount()
	assert.False(t, known)
}

func TestFromArrays(t *testing.T) {
	a := ary(t, frame.Dimensions{2, 3})
	b := ary(t, frame.Dimensions{2, 3})

	c, err := FromArrays(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1}, c.Keys())

	n, known := c.Metadata().FrameCount()
	assert.True(t, known)
	assert.Equal(t, 2, n)
	assert.True(t, c.Metadata().Dims.Equal(frame.Dimensions{2, 3}))
}

func TestFromArrays_Mismatch(t *testing.T) {
	_, err := FromArrays()
	assert.ErrorIs(t, err, ErrNoArrays)

	_, err = FromArrays(ary(t, frame.Dimensions{2, 3}), ary(t, frame.Dimensions{3, 2}))
	var sme *frame.ShapeMismatchError
	assert.ErrorAs(t, err, &sme)

	other, errNew := frame.NewArray(frame.Dimensions{2, 3}, dtype.Int16, make([]byte, 12))
	require.NoError(t, errNew)
	_, err = FromArrays(ary(t, frame.Dimensions{2, 3}), other)
	var eme *frame.ElemMismatchError
	assert.ErrorAs(t, err, &eme)
}
