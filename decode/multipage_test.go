package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framelab/framery/codec"
	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

// planarContainer builds a planar container of npages 2x2 uint8 pages
// with distinct content per page.
func planarContainer(t *testing.T, npages int) []byte {
	t.Helper()
	pages := make([][]byte, npages)
	for i := range pages {
		b := byte(i * 4)
		pages[i] = []byte{b, b + 1, b + 2, b + 3}
	}
	buf, err := codec.EncodePlanar(dtype.Uint8, 2, 2, pages...)
	require.NoError(t, err)
	return buf
}

func TestNewMultipageDecoder_Validation(t *testing.T) {
	_, err := NewMultipageDecoder(nil)
	assert.ErrorIs(t, err, ErrNoPageCodec)

	_, err = NewMultipageDecoder(codec.Planar{}, WithPlanesPerFrame(0))
	var ppf *PlanesPerFrameError
	assert.ErrorAs(t, err, &ppf)
}

func TestMultipageDecoder_OneFramePerFile(t *testing.T) {
	dec, err := NewMultipageDecoder(codec.Planar{})
	require.NoError(t, err)

	frames, err := dec.Decode(frame.Record{Position: 2, Buffer: planarContainer(t, 3)})
	require.NoError(t, err)
	require.Len(t, frames, 1)

	// All pages of the file stack into one frame with a new axis.
	assert.Equal(t, uint64(2), frames[0].Key)
	assert.True(t, frames[0].Array.Dims.Equal(frame.Dimensions{2, 2, 3}))

	meta := dec.Metadata(4)
	n, ok := meta.FrameCount()
	assert.True(t, ok)
	assert.Equal(t, 4, n)
}

func TestMultipageDecoder_SplitGrouping(t *testing.T) {
	dec, err := NewMultipageDecoder(codec.Planar{}, WithPlanesPerFrame(2))
	require.NoError(t, err)

	// 5 pages, groups of 2: frames of 2, 2 and 1 page. The trailing
	// single-page group is always emitted and keeps the page shape.
	frames, err := dec.Decode(frame.Record{Position: 0, Buffer: planarContainer(t, 5)})
	require.NoError(t, err)
	require.Len(t, frames, 3)

	assert.True(t, frames[0].Array.Dims.Equal(frame.Dimensions{2, 2, 2}))
	assert.True(t, frames[1].Array.Dims.Equal(frame.Dimensions{2, 2, 2}))
	assert.True(t, frames[2].Array.Dims.Equal(frame.Dimensions{2, 2}))

	assert.Equal(t, uint64(0), frames[0].Key)
	assert.Equal(t, uint64(1), frames[1].Key)
	assert.Equal(t, uint64(2), frames[2].Key)

	// Page order is preserved across the grouping.
	vals, err := frames[2].Array.Uint8s()
	require.NoError(t, err)
	assert.Equal(t, []uint8{16, 17, 18, 19}, vals)
}

func TestMultipageDecoder_PerRecordNvals(t *testing.T) {
	// Records with different observed page counts each compute their
	// own nvals as the key multiplier, not a shared constant. Record
	// 0 (3 pages, groups of 2) yields 2 frames keyed 0,1; record 1
	// (5 pages) yields 3 frames keyed 1*3+{0,1,2} = 3,4,5. Key 2 is
	// a gap: multipage keys are ordered and unique but not dense.
	dec, err := NewMultipageDecoder(codec.Planar{}, WithPlanesPerFrame(2))
	require.NoError(t, err)

	first, err := dec.Decode(frame.Record{Position: 0, Buffer: planarContainer(t, 3)})
	require.NoError(t, err)
	second, err := dec.Decode(frame.Record{Position: 1, Buffer: planarContainer(t, 5)})
	require.NoError(t, err)

	var keys []uint64
	for _, f := range first {
		keys = append(keys, f.Key)
	}
	for _, f := range second {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []uint64{0, 1, 3, 4, 5}, keys)
}

func TestMultipageDecoder_KeyOrderingAcrossRecords(t *testing.T) {
	// Files with equal page counts: record 1's keys start right after
	// record 0's with no collisions.
	dec, err := NewMultipageDecoder(codec.Planar{}, WithPlanesPerFrame(2))
	require.NoError(t, err)

	first, err := dec.Decode(frame.Record{Position: 0, Buffer: planarContainer(t, 5)})
	require.NoError(t, err)
	second, err := dec.Decode(frame.Record{Position: 1, Buffer: planarContainer(t, 5)})
	require.NoError(t, err)

	assert.Equal(t, uint64(2), first[len(first)-1].Key)
	assert.Equal(t, uint64(3), second[0].Key)
	assert.Equal(t, uint64(5), second[len(second)-1].Key)
}

func TestMultipageDecoder_EmptyContainer(t *testing.T) {
	dec, err := NewMultipageDecoder(codec.Planar{}, WithPlanesPerFrame(2))
	require.NoError(t, err)

	frames, err := dec.Decode(frame.Record{Position: 0, Buffer: planarContainer(t, 0)})
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestMultipageDecoder_MalformedContainer(t *testing.T) {
	dec, err := NewMultipageDecoder(codec.Planar{})
	require.NoError(t, err)

	_, err = dec.Decode(frame.Record{Position: 3, Buffer: []byte("garbage")})
	var ce *ContainerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 3, ce.Position)
}

func TestMultipageDecoder_TruncatedPage(t *testing.T) {
	dec, err := NewMultipageDecoder(codec.Planar{})
	require.NoError(t, err)

	buf := planarContainer(t, 2)
	_, err = dec.Decode(frame.Record{Position: 1, Buffer: buf[:len(buf)-1]})
	var pe *PageError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Position)
	assert.Equal(t, 1, pe.Page)
}

func TestMultipageDecoder_SplitMetadataUnknown(t *testing.T) {
	dec, err := NewMultipageDecoder(codec.Planar{}, WithPlanesPerFrame(2))
	require.NoError(t, err)

	_, ok := dec.Metadata(10).FrameCount()
	assert.False(t, ok)
}

func TestMultipageDecoder_Idempotent(t *testing.T) {
	dec, err := NewMultipageDecoder(codec.Planar{}, WithPlanesPerFrame(2))
	require.NoError(t, err)

	rec := frame.Record{Position: 6, Buffer: planarContainer(t, 5)}
	first, err := dec.Decode(rec)
	require.NoError(t, err)
	second, err := dec.Decode(rec)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Key, second[i].Key)
		assert.True(t, first[i].Array.Equal(second[i].Array))
	}
}
