package embedq

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with embedq-specific context.
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

// LogLoad logs the load stage.
func (l *Logger) LogLoad(ctx context.Context, input string, rows, cols int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"input", input,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "matrix loaded",
			"input", input,
			"rows", rows,
			"cols", cols,
		)
	}
}

// LogReduce logs the PCA stage.
func (l *Logger) LogReduce(ctx context.Context, fromDim, toDim int, explainedVariance float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "pca failed",
			"from_dim", fromDim,
			"to_dim", toDim,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "pca completed",
			"from_dim", fromDim,
			"to_dim", toDim,
			"explained_variance", explainedVariance,
		)
	}
}

// LogQuantize logs the quantization stage.
func (l *Logger) LogQuantize(ctx context.Context, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "quantization failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "quantization completed",
			"rows", rows,
		)
	}
}

// LogWrite logs the serialization stage.
func (l *Logger) LogWrite(ctx context.Context, output string, sizeBytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"output", output,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "output written",
			"output", output,
			"size_bytes", sizeBytes,
		)
	}
}
