package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

// PNG decodes a single-page PNG buffer. Grayscale images map to uint8
// or uint16 arrays of shape (width, height); everything else is
// flattened to RGBA with the channel as the fastest-varying axis,
// shape (4, width, height).
//
// A PNG holds exactly one image, so Next returns one page and then
// ErrNoMorePages. Used with the single-frame decoder; also valid (if
// unusual) as a one-page container for the multipage decoder.
type PNG struct{}

// Name implements PageCodec.
func (PNG) Name() string { return "png" }

// Open implements PageCodec.
func (PNG) Open(buf []byte) (PageReader, error) {
	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	ary, err := pngToArray(img)
	if err != nil {
		return nil, err
	}
	return &singlePageReader{page: ary}, nil
}

func pngToArray(img image.Image) (*frame.Array, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		// Row-major gray pixels are exactly column-major (w,h) bytes.
		data := make([]byte, w*h)
		for y := 0; y < h; y++ {
			copy(data[y*w:], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return frame.NewArray(frame.Dimensions{w, h}, dtype.Uint8, data)
	case *image.Gray16:
		// Gray16 pixel bytes are big-endian; flip to little-endian.
		data := make([]byte, w*h*2)
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				data[(y*w+x)*2] = row[x*2+1]
				data[(y*w+x)*2+1] = row[x*2]
			}
		}
		return frame.NewArray(frame.Dimensions{w, h}, dtype.Uint16, data)
	default:
		rgba := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		data := make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			copy(data[y*w*4:], rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
		}
		return frame.NewArray(frame.Dimensions{4, w, h}, dtype.Uint8, data)
	}
}

type singlePageReader struct {
	page *frame.Array
	done bool
}

func (r *singlePageReader) Next() (*frame.Array, error) {
	if r.done {
		return nil, ErrNoMorePages
	}
	r.done = true
	return r.page, nil
}
