package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/framelab/framery/dtype"
	"github.com/framelab/framery/frame"
)

type fileConfig struct {
	Dir            string `toml:"dir"`
	Format         string `toml:"format"`
	Dims           []int  `toml:"dims"`
	Dtype          string `toml:"dtype"`
	PlanesPerFrame int    `toml:"planes_per_frame"`
	Ext            string `toml:"ext"`
	Start          int    `toml:"start"`
	Stop           int    `toml:"stop"`
	Recursive      bool   `toml:"recursive"`
	Workers        int    `toml:"workers"`
	LogFormat      string `toml:"log_format"`
	LogLevel       string `toml:"log_level"`
}

type runConfig struct {
	Dir            string
	Format         string
	Dims           frame.Dimensions
	Elem           dtype.Type
	PlanesPerFrame *int
	Ext            string
	Start          int
	Stop           int
	Recursive      bool
	Workers        int
	LogFormat      string
	LogLevel       slog.Level
}

func defaultRunConfig() runConfig {
	return runConfig{
		Format:    "stack",
		Elem:      dtype.Default,
		Stop:      -1,
		LogFormat: "text",
		LogLevel:  slog.LevelInfo,
	}
}

func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load config: %w", err)
	}

	cfg.Dir = strings.TrimSpace(raw.Dir)
	if cfg.Dir == "" {
		return runConfig{}, fmt.Errorf("config %s: dir is required", path)
	}

	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(raw.Format)
	}
	switch cfg.Format {
	case "stack", "multipage", "single":
	default:
		return runConfig{}, fmt.Errorf("config %s: unknown format %q", path, cfg.Format)
	}

	if meta.IsDefined("dims") {
		cfg.Dims = frame.Dimensions(raw.Dims)
	}
	if cfg.Format == "stack" && len(cfg.Dims) == 0 {
		return runConfig{}, fmt.Errorf("config %s: dims is required for stack format", path)
	}

	if meta.IsDefined("dtype") {
		elem, err := dtype.Parse(strings.TrimSpace(raw.Dtype))
		if err != nil {
			return runConfig{}, fmt.Errorf("config %s: %w", path, err)
		}
		cfg.Elem = elem
	}

	if meta.IsDefined("planes_per_frame") {
		n := raw.PlanesPerFrame
		cfg.PlanesPerFrame = &n
	}

	if meta.IsDefined("ext") {
		cfg.Ext = strings.TrimSpace(raw.Ext)
	}
	if meta.IsDefined("start") {
		cfg.Start = raw.Start
	}
	if meta.IsDefined("stop") {
		cfg.Stop = raw.Stop
	}
	if meta.IsDefined("recursive") {
		cfg.Recursive = raw.Recursive
	}

	if meta.IsDefined("workers") {
		if raw.Workers < 0 {
			return runConfig{}, fmt.Errorf("config %s: workers must not be negative", path)
		}
		cfg.Workers = raw.Workers
	}

	if meta.IsDefined("log_format") {
		format := strings.TrimSpace(raw.LogFormat)
		switch format {
		case "text", "json":
			cfg.LogFormat = format
		default:
			return runConfig{}, fmt.Errorf("config %s: unknown log_format %q", path, format)
		}
	}

	if meta.IsDefined("log_level") {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(raw.LogLevel))); err != nil {
			return runConfig{}, fmt.Errorf("config %s: %w", path, err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}
