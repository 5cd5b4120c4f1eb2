// Package recordsource enumerates source files and delivers their raw
// bytes as positioned records.
//
// A Source hides where the bytes live (local directory, memory, object
// storage). Opening a source performs the enumeration contract in one
// place: filter by extension, sort by name, slice by a half-open
// [start, stop) range. The resulting RecordSet assigns dense 0-based
// positions and serves individual records by position, so a run can
// fetch and decode records in parallel, in any order.
//
// Buffers are decompressed transparently when the filename carries a
// recognized compression suffix (.gz, .zst, .lz4); extension filtering
// applies to the logical name with that suffix stripped.
package recordsource

import (
	"context"
	"sort"
	"strings"

	"github.com/framelab/framery/frame"
	"github.com/framelab/framery/internal/compress"
)

// Source enumerates a set of source files.
type Source interface {
	// Open applies the enumeration contract and returns the record
	// set for this run.
	Open(ctx context.Context) (RecordSet, error)
}

// RecordSet is an opened, ordered set of records.
//
// Implementations must be safe for concurrent use: records are fetched
// from many goroutines at once.
type RecordSet interface {
	// Len returns the number of records, available before any buffer
	// is fetched.
	Len() int
	// Record materializes the full buffer for the given position.
	Record(ctx context.Context, pos int) (frame.Record, error)
}

// Options holds the shared enumeration configuration.
type Options struct {
	// Ext keeps only files with this extension (without the dot).
	// Empty keeps everything.
	Ext string
	// Start and Stop bound the sorted file list with half-open
	// [Start, Stop) semantics. Stop < 0 means the end of the list.
	Start int
	Stop  int
	// Recursive descends into subdirectories where the source has
	// them.
	Recursive bool
}

// Option mutates Options.
type Option func(*Options)

// WithExt keeps only files whose logical name has the given extension.
func WithExt(ext string) Option {
	return func(o *Options) {
		o.Ext = strings.TrimPrefix(ext, ".")
	}
}

// WithRange restricts the sorted file list to [start, stop).
// A negative stop means the end of the list.
func WithRange(start, stop int) Option {
	return func(o *Options) {
		o.Start = start
		o.Stop = stop
	}
}

// WithRecursive enables recursive directory traversal.
func WithRecursive() Option {
	return func(o *Options) {
		o.Recursive = true
	}
}

// NewOptions applies opts over the defaults (no extension filter, full
// range, non-recursive).
func NewOptions(opts ...Option) Options {
	o := Options{Stop: -1}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Select applies the filter, sort and slice steps of the enumeration
// contract to a list of file names. Out-of-range bounds clamp rather
// than fail, matching slice indexing conventions.
func Select(names []string, o Options) []string {
	var kept []string
	for _, name := range names {
		if o.Ext == "" || strings.HasSuffix(compress.Trim(name), "."+o.Ext) {
			kept = append(kept, name)
		}
	}
	sort.Strings(kept)

	start, stop := o.Start, o.Stop
	if start < 0 {
		start = 0
	}
	if stop < 0 || stop > len(kept) {
		stop = len(kept)
	}
	if start >= stop {
		return nil
	}
	return kept[start:stop]
}
