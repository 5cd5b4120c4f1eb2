// Package testutil provides fixture builders for tests and benchmarks.
//
// It generates synthetic stack buffers and planar containers with
// deterministic content, so round-trip assertions can compare exact
// values.
package testutil

import (
	"encoding/binary"
	"math/rand"

	"github.com/framelab/framery/codec"
	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

// RNG is a seeded random source for reproducible fixtures.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic random source.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// FillBytes fills p with random bytes.
func (g *RNG) FillBytes(p []byte) {
	g.r.Read(p)
}

// SequentialInt16Stack builds a little-endian int16 stack buffer for
// the given shape, holding the values 0..n-1 in storage order.
func SequentialInt16Stack(dims frame.Dimensions) []byte {
	n := dims.ElemCount()
	buf := make([]byte, n*2)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(i))
	}
	return buf
}

// SequentialInt16Values returns the values SequentialInt16Stack
// encodes, for round-trip comparisons.
func SequentialInt16Values(dims frame.Dimensions) []int16 {
	n := dims.ElemCount()
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i)
	}
	return out
}

// PlanarContainer builds a planar container of npages w-by-h uint8
// pages. Page i holds the bytes i*w*h .. (i+1)*w*h-1, truncated to a
// byte, so page content is distinct and predictable.
func PlanarContainer(npages, w, h int) []byte {
	pageBytes := w * h
	pages := make([][]byte, npages)
	for i := range pages {
		page := make([]byte, pageBytes)
		for j := range page {
			page[j] = byte(i*pageBytes + j)
		}
		pages[i] = page
	}
	buf, err := codec.EncodePlanar(dtype.Uint8, w, h, pages...)
	if err != nil {
		panic(err) // fixture dimensions are caller bugs
	}
	return buf
}
