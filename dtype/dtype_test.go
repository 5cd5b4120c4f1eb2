package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Type
		size int
	}{
		{"uint8", Uint8, 1},
		{"int8", Int8, 1},
		{"uint16", Uint16, 2},
		{"int16", Int16, 2},
		{"uint32", Uint32, 4},
		{"int32", Int32, 4},
		{"uint64", Uint64, 8},
		{"int64", Int64, 8},
		{"float32", Float32, 4},
		{"float64", Float64, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.size, got.Size())
			assert.Equal(t, tt.name, got.String())
			assert.True(t, got.Valid())
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("complex128")
	require.Error(t, err)

	_, err = Parse("")
	require.Error(t, err)
}

func TestInvalid(t *testing.T) {
	assert.False(t, Invalid.Valid())
	assert.Equal(t, 0, Invalid.Size())
}
