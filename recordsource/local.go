package recordsource

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/framelab/framery/frame"
	"github.com/framelab/framery/internal/compress"
)

// Local is a Source over a directory on the local filesystem.
type Local struct {
	dir  string
	opts Options
}

// NewLocal creates a local source rooted at dir.
func NewLocal(dir string, opts ...Option) *Local {
	return &Local{dir: dir, opts: NewOptions(opts...)}
}

// Open implements Source.
func (l *Local) Open(_ context.Context) (RecordSet, error) {
	var names []string
	if l.opts.Recursive {
		err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(l.dir, path)
			if err != nil {
				return err
			}
			names = append(names, filepath.ToSlash(rel))
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(l.dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			names = append(names, e.Name())
		}
	}

	return &localSet{dir: l.dir, names: Select(names, l.opts)}, nil
}

type localSet struct {
	dir   string
	names []string
}

func (s *localSet) Len() int {
	return len(s.names)
}

func (s *localSet) Record(_ context.Context, pos int) (frame.Record, error) {
	name := s.names[pos]
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(name)))
	if err != nil {
		return frame.Record{}, err
	}
	data, err = compress.Decode(name, data)
	if err != nil {
		return frame.Record{}, err
	}
	return frame.Record{Position: pos, Name: compress.Trim(name), Buffer: data}, nil
}
