// Package codec defines the page-decode capability injected into the
// multipage and single-frame decoders.
//
// A PageCodec turns one raw container buffer into a sequence of 2-D
// pages, read strictly in increasing page order. The end of the
// container is signalled by ErrNoMorePages, never by a page count: the
// number of pages in a container is not known up front.
package codec

import (
	"errors"

	"github.com/framelab/framery/frame"
)

// ErrNoMorePages is the terminal condition of a page walk.
var ErrNoMorePages = errors.New("no more pages")

// PageReader yields successive pages from one container buffer.
// Readers are single-use and need not be safe for concurrent use; each
// record decode opens its own reader.
type PageReader interface {
	// Next returns the next page, or ErrNoMorePages after the last
	// one. Any other error means the container is malformed.
	Next() (*frame.Array, error)
}

// PageCodec opens raw container buffers for sequential page reading.
// Implementations must be safe for concurrent use; the decoders open
// records from many goroutines at once.
type PageCodec interface {
	// Name identifies the codec, e.g. in logs and error messages.
	Name() string
	// Open prepares buf for page reading. The reader may retain buf.
	Open(buf []byte) (PageReader, error)
}
