// Command framery ingests a directory of image records into a keyed
// frame collection and reports what it found. The run is described by
// a TOML config file; see ex.config.toml for a template.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/framelab/framery"
	"github.com/framelab/framery/codec"
	"github.com/framelab/framery/collection"
	"github.com/framelab/framery/decode"
	"github.com/framelab/framery/recordsource"
)

func main() {
	configPath := flag.String("config", "framery.toml", "path to the run config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "framery: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadRunConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)

	src := recordsource.NewLocal(cfg.Dir, sourceOptions(cfg)...)
	loader := framery.New(
		framery.WithLogger(logger),
		framery.WithWorkers(cfg.Workers),
		framery.WithPageCodec(codec.PNG{}),
	)

	var coll *collection.Collection
	switch cfg.Format {
	case "stack":
		coll, err = loader.FromStack(ctx, src, cfg.Elem, cfg.Dims, decodeOptions(cfg)...)
	case "multipage":
		coll, err = loader.FromMultipage(ctx, src, decodeOptions(cfg)...)
	case "single":
		coll, err = loader.FromSingle(ctx, src)
	}
	if err != nil {
		return err
	}

	report(logger, cfg, coll)
	return nil
}

func newLogger(cfg runConfig) *framery.Logger {
	if cfg.LogFormat == "json" {
		return framery.NewJSONLogger(cfg.LogLevel)
	}
	return framery.NewTextLogger(cfg.LogLevel)
}

func sourceOptions(cfg runConfig) []recordsource.Option {
	opts := []recordsource.Option{
		recordsource.WithRange(cfg.Start, cfg.Stop),
	}
	if cfg.Ext != "" {
		opts = append(opts, recordsource.WithExt(cfg.Ext))
	}
	if cfg.Recursive {
		opts = append(opts, recordsource.WithRecursive())
	}
	return opts
}

func decodeOptions(cfg runConfig) []decode.Option {
	var opts []decode.Option
	if cfg.PlanesPerFrame != nil {
		opts = append(opts, decode.WithPlanesPerFrame(*cfg.PlanesPerFrame))
	}
	return opts
}

func report(logger *framery.Logger, cfg runConfig, coll *collection.Collection) {
	meta := coll.Metadata()
	attrs := []any{
		"dir", cfg.Dir,
		"format", cfg.Format,
		"frames", coll.Len(),
		"dims", meta.Dims.String(),
		"dtype", meta.Elem.String(),
	}
	if n, known := meta.FrameCount(); known {
		attrs = append(attrs, "expected_frames", n)
	}
	logger.Info("ingestion complete", attrs...)
}
