package framery

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with framery-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPosition adds a record position field to the logger.
func (l *Logger) WithPosition(pos int) *Logger {
	return &Logger{
		Logger: l.Logger.With("position", pos),
	}
}

// WithFormat adds a source format field to the logger.
func (l *Logger) WithFormat(format string) *Logger {
	return &Logger{
		Logger: l.Logger.With("format", format),
	}
}

// LogRecordDecode logs the outcome of decoding one record. The record
// position is expected on the logger already, via WithPosition.
func (l *Logger) LogRecordDecode(ctx context.Context, frames int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "record decode failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "record decoded",
			"frames", frames,
		)
	}
}

// LogRun logs the completion of an ingestion run.
func (l *Logger) LogRun(ctx context.Context, records, frames int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ingestion failed",
			"records", records,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "ingestion completed",
			"records", records,
			"frames", frames,
		)
	}
}
