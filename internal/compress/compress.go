// Package compress handles transparent decompression of source file
// buffers, selected by filename suffix.
package compress

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Trim strips a recognized compression suffix from name, returning the
// logical filename. Names without a compression suffix pass through
// unchanged.
func Trim(name string) string {
	for _, suffix := range []string{".gz", ".zst", ".lz4"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

// Decode decompresses data according to the compression suffix of
// name, if any. Unsuffixed data is returned as-is.
func Decode(name string, data []byte) ([]byte, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", name, err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", name, err)
		}
		return out, nil
	case strings.HasSuffix(name, ".zst"):
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("zstd %s: %w", name, err)
		}
		defer r.Close()
		out, err := io.ReadAll(r.IOReadCloser())
		if err != nil {
			return nil, fmt.Errorf("zstd %s: %w", name, err)
		}
		return out, nil
	case strings.HasSuffix(name, ".lz4"):
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 %s: %w", name, err)
		}
		return out, nil
	default:
		return data, nil
	}
}
