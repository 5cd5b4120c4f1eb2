package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/framelab/framery/dtype"
)

// ErrMissingDims is returned when a shape is required but empty.
var ErrMissingDims = errors.New("dims must be non-empty")

// Array is a multidimensional numeric array stored as raw little-endian
// bytes in column-major order: the first axis varies fastest, so a
// slice along the final axis is a contiguous byte run.
type Array struct {
	Dims Dimensions
	Elem dtype.Type
	Data []byte
}

// NewArray wraps data as an array of the given shape and element type.
// The data is not copied. The byte length must match the shape exactly.
func NewArray(dims Dimensions, elem dtype.Type, data []byte) (*Array, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if !elem.Valid() {
		return nil, fmt.Errorf("invalid element type %v", elem)
	}
	want := dims.ElemCount() * elem.Size()
	if len(data) != want {
		return nil, &SizeMismatchError{Want: want, Got: len(data)}
	}
	return &Array{Dims: dims, Elem: elem, Data: data}, nil
}

// SizeMismatchError indicates a buffer whose length does not match the
// byte size implied by a shape and element type.
type SizeMismatchError struct {
	Want int
	Got  int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("buffer size mismatch: want %d bytes, got %d", e.Want, e.Got)
}

// ByteSize returns the total storage size in bytes.
func (a *Array) ByteSize() int {
	return a.Dims.ElemCount() * a.Elem.Size()
}

// planeBytes is the byte size of one slice along the final axis.
func (a *Array) planeBytes() int {
	inner := 1
	for _, v := range a.Dims[:len(a.Dims)-1] {
		inner *= v
	}
	return inner * a.Elem.Size()
}

// PlaneRange returns the sub-array covering final-axis indices
// [lo, hi). The returned array shares storage with a.
func (a *Array) PlaneRange(lo, hi int) (*Array, error) {
	if lo < 0 || hi > a.Dims.Last() || lo >= hi {
		return nil, fmt.Errorf("plane range [%d,%d) out of bounds for %v", lo, hi, a.Dims)
	}
	pb := a.planeBytes()
	return &Array{
		Dims: a.Dims.WithLast(hi - lo),
		Elem: a.Elem,
		Data: a.Data[lo*pb : hi*pb],
	}, nil
}

// Plane returns the single final-axis slice at index i. The returned
// array shares storage with a.
func (a *Array) Plane(i int) (*Array, error) {
	return a.PlaneRange(i, i+1)
}

// StackPlanes combines arrays of identical shape and element type into
// one array with a new slowest-varying axis of size len(planes). A
// single plane is returned unchanged, keeping its own shape.
func StackPlanes(planes ...*Array) (*Array, error) {
	if len(planes) == 0 {
		return nil, errors.New("no planes to stack")
	}
	if len(planes) == 1 {
		return planes[0], nil
	}
	first := planes[0]
	data := make([]byte, 0, first.ByteSize()*len(planes))
	for _, p := range planes {
		if !p.Dims.Equal(first.Dims) {
			return nil, &ShapeMismatchError{Want: first.Dims, Got: p.Dims}
		}
		if p.Elem != first.Elem {
			return nil, &ElemMismatchError{Want: first.Elem, Got: p.Elem}
		}
		data = append(data, p.Data...)
	}
	return &Array{
		Dims: first.Dims.WithTrailing(len(planes)),
		Elem: first.Elem,
		Data: data,
	}, nil
}

// ShapeMismatchError indicates arrays of differing shape where a
// uniform shape is required.
type ShapeMismatchError struct {
	Want Dimensions
	Got  Dimensions
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: want %v, got %v", e.Want, e.Got)
}

// ElemMismatchError indicates arrays of differing element type where a
// uniform type is required.
type ElemMismatchError struct {
	Want dtype.Type
	Got  dtype.Type
}

func (e *ElemMismatchError) Error() string {
	return fmt.Sprintf("element type mismatch: want %v, got %v", e.Want, e.Got)
}

// Equal reports whether two arrays have identical shape, element type
// and content.
func (a *Array) Equal(other *Array) bool {
	return a.Elem == other.Elem && a.Dims.Equal(other.Dims) && bytes.Equal(a.Data, other.Data)
}

func (a *Array) typedLen(t dtype.Type) (int, error) {
	if a.Elem != t {
		return 0, &ElemMismatchError{Want: t, Got: a.Elem}
	}
	return a.Dims.ElemCount(), nil
}

// Uint8s returns the elements as a uint8 slice.
func (a *Array) Uint8s() ([]uint8, error) {
	n, err := a.typedLen(dtype.Uint8)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	copy(out, a.Data)
	return out, nil
}

// Int8s returns the elements as an int8 slice.
func (a *Array) Int8s() ([]int8, error) {
	n, err := a.typedLen(dtype.Int8)
	if err != nil {
		return nil, err
	}
	out := make([]int8, n)
	for i := range out {
		out[i] = int8(a.Data[i])
	}
	return out, nil
}

// Uint16s returns the elements as a uint16 slice.
func (a *Array) Uint16s() ([]uint16, error) {
	n, err := a.typedLen(dtype.Uint16)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(a.Data[i*2:])
	}
	return out, nil
}

// Int16s returns the elements as an int16 slice.
func (a *Array) Int16s() ([]int16, error) {
	n, err := a.typedLen(dtype.Int16)
	if err != nil {
		return nil, err
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(a.Data[i*2:]))
	}
	return out, nil
}

// Uint32s returns the elements as a uint32 slice.
func (a *Array) Uint32s() ([]uint32, error) {
	n, err := a.typedLen(dtype.Uint32)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(a.Data[i*4:])
	}
	return out, nil
}

// Int32s returns the elements as an int32 slice.
func (a *Array) Int32s() ([]int32, error) {
	n, err := a.typedLen(dtype.Int32)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(a.Data[i*4:]))
	}
	return out, nil
}

// Uint64s returns the elements as a uint64 slice.
func (a *Array) Uint64s() ([]uint64, error) {
	n, err := a.typedLen(dtype.Uint64)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(a.Data[i*8:])
	}
	return out, nil
}

// Int64s returns the elements as an int64 slice.
func (a *Array) Int64s() ([]int64, error) {
	n, err := a.typedLen(dtype.Int64)
	if err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(a.Data[i*8:]))
	}
	return out, nil
}

// Float32s returns the elements as a float32 slice.
func (a *Array) Float32s() ([]float32, error) {
	n, err := a.typedLen(dtype.Float32)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(a.Data[i*4:]))
	}
	return out, nil
}

// Float64s returns the elements as a float64 slice.
func (a *Array) Float64s() ([]float64, error) {
	n, err := a.typedLen(dtype.Float64)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(a.Data[i*8:]))
	}
	return out, nil
}
