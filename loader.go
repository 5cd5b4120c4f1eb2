package framery

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/framelab/framery/codec"
	"github.com/framelab/framery/collection"
	"github.com/framelab/framery/decode"
	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
	"github.com/framelab/framery/recordsource"
	"github.com/framelab/framery/resource"
)

// Loader runs ingestions: it opens a record source, decodes every
// record in parallel through a format decoder, and collects the keyed
// frames. A Loader is immutable after construction and safe for
// concurrent use.
type Loader struct {
	logger    *Logger
	workers   int
	res       *resource.Controller
	pageCodec codec.PageCodec
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger:  NoopLogger(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, fn := range opts {
		fn(l)
	}
	if l.workers <= 0 {
		l.workers = runtime.GOMAXPROCS(0)
	}
	return l
}

// FromStack ingests flat binary stack records of the given shape and
// element type. With decode.WithPlanesPerFrame(n) each file is
// subdivided along its final axis into frames of n planes.
func (l *Loader) FromStack(ctx context.Context, src recordsource.Source, elem dtype.Type, dims frame.Dimensions, opts ...decode.Option) (*collection.Collection, error) {
	dec, err := decode.NewStackDecoder(elem, dims, opts...)
	if err != nil {
		return nil, translateError(err)
	}
	return l.ingest(ctx, src, dec, "stack")
}

// FromMultipage ingests multipage container records through the
// configured page codec. With decode.WithPlanesPerFrame(n) every n
// pages form one frame; otherwise each file is a single frame.
func (l *Loader) FromMultipage(ctx context.Context, src recordsource.Source, opts ...decode.Option) (*collection.Collection, error) {
	dec, err := decode.NewMultipageDecoder(l.pageCodec, opts...)
	if err != nil {
		return nil, translateError(err)
	}
	return l.ingest(ctx, src, dec, "multipage")
}

// FromSingle ingests single-image records through the configured page
// codec, one frame per file.
func (l *Loader) FromSingle(ctx context.Context, src recordsource.Source) (*collection.Collection, error) {
	dec, err := decode.NewSingleFrameDecoder(l.pageCodec)
	if err != nil {
		return nil, translateError(err)
	}
	return l.ingest(ctx, src, dec, "single")
}

// FromArrays builds a collection directly from in-memory arrays keyed
// by their order. Mainly useful for tests and for callers that already
// decoded their data.
func (l *Loader) FromArrays(arrays ...*frame.Array) (*collection.Collection, error) {
	coll, err := collection.FromArrays(arrays...)
	if err != nil {
		return nil, translateError(err)
	}
	return coll, nil
}

// ingest fans records out to the worker pool. Decoders are pure, so
// records run in any order; the first failure cancels the remaining
// work and fails the whole run.
func (l *Loader) ingest(ctx context.Context, src recordsource.Source, dec decode.Decoder, format string) (*collection.Collection, error) {
	logger := l.logger.WithFormat(format)

	set, err := src.Open(ctx)
	if err != nil {
		logger.LogRun(ctx, 0, 0, err)
		return nil, err
	}

	coll := collection.New(dec.Metadata(set.Len()))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for pos := 0; pos < set.Len(); pos++ {
		g.Go(func() error {
			rec, err := set.Record(gctx, pos)
			if err != nil {
				return err
			}
			// Limits are charged post-read since record sizes are
			// unknown up front; see the resource package doc for the
			// resulting overshoot bound.
			if err := l.res.AcquireIO(gctx, len(rec.Buffer)); err != nil {
				return err
			}
			if err := l.res.AcquireMemory(gctx, int64(len(rec.Buffer))); err != nil {
				return err
			}
			defer l.res.ReleaseMemory(int64(len(rec.Buffer)))

			frames, err := dec.Decode(rec)
			logger.WithPosition(pos).LogRecordDecode(gctx, len(frames), err)
			if err != nil {
				return err
			}
			for _, f := range frames {
				if err := coll.Insert(f); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		err = translateError(err)
		logger.LogRun(ctx, set.Len(), coll.Len(), err)
		return nil, err
	}

	logger.LogRun(ctx, set.Len(), coll.Len(), nil)
	return coll, nil
}
