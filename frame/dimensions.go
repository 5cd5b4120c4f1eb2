package frame

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Dimensions describes the shape of an array, fastest-varying axis
// first. All entries must be positive and the sequence must be
// non-empty.
type Dimensions []int

// Validate checks that dims is non-empty and strictly positive.
func (d Dimensions) Validate() error {
	if len(d) == 0 {
		return ErrMissingDims
	}
	for i, n := range d {
		if n <= 0 {
			return &InvalidDimensionError{Axis: i, Size: n}
		}
	}
	return nil
}

// ElemCount returns the total number of elements implied by the shape.
func (d Dimensions) ElemCount() int {
	n := 1
	for _, v := range d {
		n *= v
	}
	return n
}

// Last returns the size of the slowest-varying (final) axis.
func (d Dimensions) Last() int {
	return d[len(d)-1]
}

// WithLast returns a copy of d with the final axis resized to n.
func (d Dimensions) WithLast(n int) Dimensions {
	out := slices.Clone(d)
	out[len(out)-1] = n
	return out
}

// WithTrailing returns a copy of d extended by one new slowest-varying
// axis of size n.
func (d Dimensions) WithTrailing(n int) Dimensions {
	out := make(Dimensions, len(d)+1)
	copy(out, d)
	out[len(d)] = n
	return out
}

// Equal reports whether two shapes are identical.
func (d Dimensions) Equal(other Dimensions) bool {
	return slices.Equal(d, other)
}

func (d Dimensions) String() string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// InvalidDimensionError indicates a non-positive axis size.
type InvalidDimensionError struct {
	Axis int
	Size int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid dimension: axis %d has size %d", e.Axis, e.Size)
}
