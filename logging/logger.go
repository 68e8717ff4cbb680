// SPDX-License-Identifier: MIT

// Package logging wraps log/slog with the field names and operation loggers
// used across dpmix. Kernels log at Debug level, the driver at Info.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with sampler-specific context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger writing human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// NewJSONLogger creates a Logger writing JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	}))}
}

// ParseLevel maps "debug", "info", "warn", "error" onto slog levels.
// Unknown names fall back to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithChain tags records with a chain identifier.
func (l *Logger) WithChain(id int) *Logger {
	return &Logger{Logger: l.Logger.With("chain", id)}
}

// WithColumn tags records with a global column index.
func (l *Logger) WithColumn(col int) *Logger {
	return &Logger{Logger: l.Logger.With("column", col)}
}

// LogSweep logs one row-reassignment sweep.
func (l *Logger) LogSweep(ctx context.Context, rows, clusters int, score float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "row sweep failed",
			"rows", rows,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "row sweep completed",
		"rows", rows,
		"clusters", clusters,
		"score", score,
	)
}

// LogAlpha logs a concentration resampling step.
func (l *Logger) LogAlpha(ctx context.Context, from, to float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "alpha transition failed", "alpha", from, "error", err)
		return
	}
	l.DebugContext(ctx, "alpha transition completed", "from", from, "to", to)
}

// LogHypers logs one column's hyperparameter resampling.
func (l *Logger) LogHypers(ctx context.Context, col int, hypers map[string]float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "hyper transition failed", "column", col, "error", err)
		return
	}
	l.DebugContext(ctx, "hyper transition completed", "column", col, "hypers", hypers)
}

// LogColumnRemoved logs a column leaving the view.
func (l *Logger) LogColumnRemoved(ctx context.Context, col, remaining int) {
	l.InfoContext(ctx, "column removed", "column", col, "remaining", remaining)
}

// LogIteration logs one driver iteration.
func (l *Logger) LogIteration(ctx context.Context, iter, clusters int, alpha, score float64) {
	l.InfoContext(ctx, "iteration completed",
		"iter", iter,
		"clusters", clusters,
		"alpha", alpha,
		"score", score,
	)
}

// LogRunCompleted logs the end of a sampling run.
func (l *Logger) LogRunCompleted(ctx context.Context, iterations, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed", "iterations", iterations, "rows", rows, "error", err)
		return
	}
	l.InfoContext(ctx, "run completed", "iterations", iterations, "rows", rows)
}
