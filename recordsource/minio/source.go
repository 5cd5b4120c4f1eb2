// Package minio provides a record source backed by MinIO or any
// S3-compatible object store.
package minio

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/framelab/framery/frame"
	"github.com/framelab/framery/internal/compress"
	"github.com/framelab/framery/recordsource"
)

// Source enumerates objects under a bucket prefix.
type Source struct {
	client *minio.Client
	bucket string
	prefix string
	opts   recordsource.Options
}

// New creates a MinIO-backed source. prefix is prepended to all keys
// (e.g. "sessions/run42/").
func New(client *minio.Client, bucket, prefix string, opts ...recordsource.Option) *Source {
	return &Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
		opts:   recordsource.NewOptions(opts...),
	}
}

// Open implements recordsource.Source.
func (s *Source) Open(ctx context.Context) (recordsource.RecordSet, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: s.opts.Recursive,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		name = strings.TrimPrefix(name, "/")
		if name != "" && !strings.HasSuffix(name, "/") {
			names = append(names, name)
		}
	}

	return &recordSet{src: s, names: recordsource.Select(names, s.opts)}, nil
}

type recordSet struct {
	src   *Source
	names []string
}

func (rs *recordSet) Len() int {
	return len(rs.names)
}

func (rs *recordSet) Record(ctx context.Context, pos int) (frame.Record, error) {
	name := rs.names[pos]
	key := path.Join(rs.src.prefix, name)

	obj, err := rs.src.client.GetObject(ctx, rs.src.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return frame.Record{}, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return frame.Record{}, err
	}
	data, err = compress.Decode(name, data)
	if err != nil {
		return frame.Record{}, err
	}
	return frame.Record{Position: pos, Name: compress.Trim(name), Buffer: data}, nil
}
