// Package dtype defines the fixed-width numeric element types frames
// are made of.
//
// Every element type maps to exactly one Go integer or float type of a
// known byte width. Buffers are always interpreted little-endian.
package dtype

import "fmt"

// Type identifies a fixed-width numeric element type.
type Type uint8

const (
	// Invalid is the zero value; it never describes real data.
	Invalid Type = iota
	Uint8
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Uint64
	Int64
	Float32
	Float64
)

// Default is the element type assumed for binary stack data when the
// caller does not specify one.
const Default = Int16

// Size returns the width of one element in bytes.
func (t Type) Size() int {
	switch t {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether t is one of the defined element types.
func (t Type) Valid() bool {
	return t > Invalid && t <= Float64
}

func (t Type) String() string {
	switch t {
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Uint16:
		return "uint16"
	case Int16:
		return "int16"
	case Uint32:
		return "uint32"
	case Int32:
		return "int32"
	case Uint64:
		return "uint64"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("dtype.Type(%d)", uint8(t))
	}
}

// Parse returns the Type named by s.
func Parse(s string) (Type, error) {
	switch s {
	case "uint8":
		return Uint8, nil
	case "int8":
		return Int8, nil
	case "uint16":
		return Uint16, nil
	case "int16":
		return Int16, nil
	case "uint32":
		return Uint32, nil
	case "int32":
		return Int32, nil
	case "uint64":
		return Uint64, nil
	case "int64":
		return Int64, nil
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	default:
		return Invalid, fmt.Errorf("unknown element type %q", s)
	}
}
