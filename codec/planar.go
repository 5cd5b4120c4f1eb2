package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

// Planar is a minimal multipage container: a fixed header describing
// the page shape and element type, followed by raw little-endian page
// payloads back to back until the buffer ends.
//
// Layout:
//
//	[0:4]   magic "PLNR"
//	[4]     format version (1)
//	[5]     element type
//	[6:10]  page width, uint32 LE (fastest-varying axis)
//	[10:14] page height, uint32 LE
//	[14:]   pages, width*height*elemSize bytes each
//
// It exists for synthetic fixtures and tests; real deployments inject
// a codec for their container format of choice.
type Planar struct{}

const (
	planarMagic      = "PLNR"
	planarVersion    = 1
	planarHeaderSize = 14
)

// Name implements PageCodec.
func (Planar) Name() string { return "planar" }

// Open implements PageCodec.
func (Planar) Open(buf []byte) (PageReader, error) {
	if len(buf) < planarHeaderSize {
		return nil, fmt.Errorf("planar: container truncated: %d bytes", len(buf))
	}
	if string(buf[0:4]) != planarMagic {
		return nil, fmt.Errorf("planar: bad magic %q", buf[0:4])
	}
	if buf[4] != planarVersion {
		return nil, fmt.Errorf("planar: unsupported version %d", buf[4])
	}
	elem := dtype.Type(buf[5])
	if !elem.Valid() {
		return nil, fmt.Errorf("planar: invalid element type %d", buf[5])
	}
	w := int(binary.LittleEndian.Uint32(buf[6:]))
	h := int(binary.LittleEndian.Uint32(buf[10:]))
	dims := frame.Dimensions{w, h}
	if err := dims.Validate(); err != nil {
		return nil, fmt.Errorf("planar: %w", err)
	}
	return &planarReader{
		dims: dims,
		elem: elem,
		rest: buf[planarHeaderSize:],
	}, nil
}

// EncodePlanar builds a Planar container from raw page payloads. Every
// page must be exactly w*h*elem.Size() bytes.
func EncodePlanar(elem dtype.Type, w, h int, pages ...[]byte) ([]byte, error) {
	if !elem.Valid() {
		return nil, fmt.Errorf("planar: invalid element type %v", elem)
	}
	pageBytes := w * h * elem.Size()
	out := make([]byte, planarHeaderSize, planarHeaderSize+pageBytes*len(pages))
	copy(out[0:4], planarMagic)
	out[4] = planarVersion
	out[5] = byte(elem)
	binary.LittleEndian.PutUint32(out[6:], uint32(w))
	binary.LittleEndian.PutUint32(out[10:], uint32(h))
	for i, p := range pages {
		if len(p) != pageBytes {
			return nil, fmt.Errorf("planar: page %d has %d bytes, want %d", i, len(p), pageBytes)
		}
		out = append(out, p...)
	}
	return out, nil
}

type planarReader struct {
	dims frame.Dimensions
	elem dtype.Type
	rest []byte
}

func (r *planarReader) Next() (*frame.Array, error) {
	if len(r.rest) == 0 {
		return nil, ErrNoMorePages
	}
	pageBytes := r.dims.ElemCount() * r.elem.Size()
	if len(r.rest) < pageBytes {
		return nil, fmt.Errorf("planar: truncated page: %d of %d bytes", len(r.rest), pageBytes)
	}
	data := r.rest[:pageBytes]
	r.rest = r.rest[pageBytes:]
	return frame.NewArray(r.dims, r.elem, data)
}
