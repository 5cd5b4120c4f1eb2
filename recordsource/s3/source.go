// Package s3 provides a record source backed by Amazon S3.
package s3

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/framelab/framery/frame"
	"github.com/framelab/framery/internal/compress"
	"github.com/framelab/framery/recordsource"
)

// Client is the subset of the S3 API the source uses. *s3.Client
// satisfies it; tests substitute a mock.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Source enumerates objects under a bucket prefix.
type Source struct {
	client Client
	bucket string
	prefix string
	opts   recordsource.Options
}

// New creates an S3-backed source. prefix is prepended to all keys.
func New(client Client, bucket, prefix string, opts ...recordsource.Option) *Source {
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
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			name = strings.TrimPrefix(name, "/")
			if name != "" && !strings.HasSuffix(name, "/") {
				names = append(names, name)
			}
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

	resp, err := rs.src.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(rs.src.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return frame.Record{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return frame.Record{}, err
	}
	data, err = compress.Decode(name, data)
	if err != nil {
		return frame.Record{}, err
	}
	return frame.Record{Position: pos, Name: compress.Trim(name), Buffer: data}, nil
}
