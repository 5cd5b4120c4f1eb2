// Package frame defines the data model shared across the ingestion
// pipeline: raw records on the way in, shaped arrays and keyed frames
// on the way out.
package frame

import (
	"github.com/framelab/framery/dtype"
)

// Record carries the raw bytes of one source file tagged with its
// position in the upstream sorted order. Positions are dense and
// 0-based after any slicing; a record is immutable once produced.
type Record struct {
	Position int
	Name     string
	Buffer   []byte
}

// Frame is one logical image at one timepoint, identified by its
// global ordering key. Keys are unique and non-negative within a run
// but not guaranteed contiguous.
type Frame struct {
	Key   uint64
	Array *Array
}

// Metadata describes an ingestion run: the frame shape and element
// type (when statically known from configuration) and the total frame
// count, which is exact for some decode modes and only discoverable by
// exhaustive consumption for others.
type Metadata struct {
	// Dims is the configured frame shape, or nil when the shape is
	// only known after decoding.
	Dims Dimensions
	// Elem is the configured element type, or dtype.Invalid when the
	// type is determined by the page codec.
	Elem dtype.Type

	frameCount int
	known      bool
}

// NewMetadata returns metadata with an exact frame count.
func NewMetadata(dims Dimensions, elem dtype.Type, frameCount int) Metadata {
	return Metadata{Dims: dims, Elem: elem, frameCount: frameCount, known: true}
}

// NewMetadataUnknown returns metadata whose frame count is unknown
// until the run has been fully observed.
func NewMetadataUnknown(dims Dimensions, elem dtype.Type) Metadata {
	return Metadata{Dims: dims, Elem: elem}
}

// FrameCount returns the total frame count and whether it is exact.
// A false second return means the count is data-dependent and callers
// must discover it by consuming the run.
func (m Metadata) FrameCount() (int, bool) {
	return m.frameCount, m.known
}
