package decode

import (
	"errors"
	"fmt"
)

// ErrNoPageCodec is returned when a decoder that needs a page codec is
// constructed without one. This is a dependency failure and surfaces
// before any record is read.
var ErrNoPageCodec = errors.New("page codec is required")

// PlanesPerFrameError indicates a non-positive planesPerFrame value.
type PlanesPerFrameError struct {
	PlanesPerFrame int
}

func (e *PlanesPerFrameError) Error() string {
	return fmt.Sprintf("planes per frame must be positive, got %d", e.PlanesPerFrame)
}

// BufferSizeError indicates a stack record whose buffer does not match
// the exact byte size implied by the configured shape and element type.
type BufferSizeError struct {
	Position int
	Want     int
	Got      int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("record %d: buffer size mismatch: want %d bytes, got %d",
		e.Position, e.Want, e.Got)
}

// ContainerError indicates a record whose container could not be
// opened or whose pages are mutually inconsistent.
//
// The underlying cause can be accessed via errors.Unwrap.
type ContainerError struct {
	Position int
	cause    error
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Position, e.cause)
}

func (e *ContainerError) Unwrap() error { return e.cause }

// PageError indicates a malformed page inside a container.
//
// The underlying cause can be accessed via errors.Unwrap.
type PageError struct {
	Position int
	Page     int
	cause    error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("record %d: page %d: %v", e.Position, e.Page, e.cause)
}

func (e *PageError) Unwrap() error { return e.cause }

// EmptyContainerError indicates a single-frame record whose container
// held no page at all.
type EmptyContainerError struct {
	Position int
}

func (e *EmptyContainerError) Error() string {
	return fmt.Sprintf("record %d: container holds no page", e.Position)
}
