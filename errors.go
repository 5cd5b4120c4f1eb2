package framery

import (
	"errors"
	"fmt"

	"github.com/framelab/framery/collection"
	"github.com/framelab/framery/decode"
	"github.com/framelab/framery/frame"
)

var (
	// ErrConfig classifies invalid ingestion configuration: missing or
	// invalid dims, a non-positive planesPerFrame, or mismatched
	// shapes in a user-supplied array batch. Raised before any record
	// is scheduled for decode.
	ErrConfig = errors.New("invalid configuration")

	// ErrDecode classifies malformed record content: buffer size
	// mismatches, truncated containers, bad pages, key collisions.
	// Any one such failure aborts the whole ingestion.
	ErrDecode = errors.New("decode failed")

	// ErrDependency classifies a missing required capability, such as
	// an absent page codec. Raised at construction time.
	ErrDependency = errors.New("missing dependency")
)

// translateError maps inner typed errors onto the package's public
// error classes. The original error stays reachable via errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, decode.ErrNoPageCodec) {
		return fmt.Errorf("%w: %w", ErrDependency, err)
	}

	// Decode class first. ContainerError and PageError wrap causes
	// observed inside a record's content — including shape and element
	// mismatches raised while stacking pages — so they must claim the
	// error before the bare mismatch checks below, which only see
	// unwrapped errors from the configuration-time paths.
	var cont *decode.ContainerError
	if errors.As(err, &cont) {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	var page *decode.PageError
	if errors.As(err, &page) {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	var size *decode.BufferSizeError
	if errors.As(err, &size) {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	var empty *decode.EmptyContainerError
	if errors.As(err, &empty) {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	var dup *collection.DuplicateKeyError
	if errors.As(err, &dup) {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	var mismatch *frame.SizeMismatchError
	if errors.As(err, &mismatch) {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	// Configuration class.
	if errors.Is(err, frame.ErrMissingDims) || errors.Is(err, collection.ErrNoArrays) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	var ide *frame.InvalidDimensionError
	if errors.As(err, &ide) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	var ppf *decode.PlanesPerFrameError
	if errors.As(err, &ppf) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	var shape *frame.ShapeMismatchError
	if errors.As(err, &shape) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	var elem *frame.ElemMismatchError
	if errors.As(err, &elem) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return err
}
