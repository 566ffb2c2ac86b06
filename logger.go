package tilego

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/tilego/tile"
)

// Logger wraps slog.Logger with tilego-specific context.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSource adds a source name field to the logger.
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", name),
	}
}

// WithTile adds a tile id field to the logger.
func (l *Logger) WithTile(id tile.OverscaledID) *Logger {
	return &Logger{
		Logger: l.Logger.With("tile", id.String()),
	}
}

// LogSetData logs a full source data replacement.
func (l *Logger) LogSetData(ctx context.Context, features int, updateable bool) {
	l.InfoContext(ctx, "source data set",
		"features", features,
		"updateable", updateable,
	)
}

// LogUpdate logs a diff submission.
func (l *Logger) LogUpdate(ctx context.Context, added, removed, updated int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "update failed",
			"added", added,
			"removed", removed,
			"updated", updated,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "update queued",
			"added", added,
			"removed", removed,
			"updated", updated,
		)
	}
}

// LogCommit logs a diff application.
func (l *Logger) LogCommit(ctx context.Context, features int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "commit failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "commit completed",
			"features", features,
		)
	}
}

// LogRetention logs a tile retention cycle; TileSet.Update calls it after
// every cycle.
func (l *Logger) LogRetention(ctx context.Context, retained, removed int) {
	l.DebugContext(ctx, "retention cycle completed",
		"retained", retained,
		"removed", removed,
	)
}

// LogSnapshot logs a snapshot operation.
func (l *Logger) LogSnapshot(ctx context.Context, key string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"key", key,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"key", key,
		)
	}
}
