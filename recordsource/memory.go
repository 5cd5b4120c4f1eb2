package recordsource

import (
	"context"
	"sync"

	"github.com/framelab/framery/frame"
	"github.com/framelab/framery/internal/compress"
)

// Memory is an in-memory Source for tests and for callers that already
// hold their files as byte slices. Thread-safe.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	opts  Options
}

// NewMemory creates an empty in-memory source.
func NewMemory(opts ...Option) *Memory {
	return &Memory{
		blobs: make(map[string][]byte),
		opts:  NewOptions(opts...),
	}
}

// Put stores a named buffer. The data is copied.
func (m *Memory) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	m.blobs[name] = copied
}

// Open implements Source.
func (m *Memory) Open(_ context.Context) (RecordSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		names = append(names, name)
	}
	return &memorySet{src: m, names: Select(names, m.opts)}, nil
}

type memorySet struct {
	src   *Memory
	names []string
}

func (s *memorySet) Len() int {
	return len(s.names)
}

func (s *memorySet) Record(_ context.Context, pos int) (frame.Record, error) {
	name := s.names[pos]

	s.src.mu.RLock()
	data := s.src.blobs[name]
	s.src.mu.RUnlock()

	// Copy to keep records immutable against later Puts.
	copied := make([]byte, len(data))
	copy(copied, data)

	copied, err := compress.Decode(name, copied)
	if err != nil {
		return frame.Record{}, err
	}
	return frame.Record{Position: pos, Name: compress.Trim(name), Buffer: copied}, nil
}
