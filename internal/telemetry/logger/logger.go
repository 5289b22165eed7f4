package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is the logging interface used by the server.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
	// Slog returns the underlying *slog.Logger for components that take one.
	Slog() *slog.Logger
	// Close releases the log file, if any.
	Close() error
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// Format is the output format (json, text).
	Format string
	// Output is the output writer (defaults to os.Stderr). Ignored when
	// File.Path is set.
	Output io.Writer
	// AddSource adds source file information to log entries.
	AddSource bool
	// File enables rotated file output.
	File FileConfig
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

type slogLogger struct {
	logger *slog.Logger
	ctx    context.Context
	closer io.Closer
}

// New creates a logger. The level becomes the process-wide level that
// SetLevel adjusts later.
func New(cfg Config) (Logger, error) {
	globalLevel.Set(parseLevel(cfg.Level))

	w, closer, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	return &slogLogger{
		logger: slog.New(newHandler(cfg.Format, w, &slog.HandlerOptions{
			Level:       globalLevel,
			AddSource:   cfg.AddSource,
			ReplaceAttr: replaceAttr,
		})),
		ctx:    context.Background(),
		closer: closer,
	}, nil
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.DebugContext(l.ctx, msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.InfoContext(l.ctx, msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.WarnContext(l.ctx, msg, args...)
}

func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.ErrorContext(l.ctx, msg, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	c := *l
	c.logger = l.logger.With(args...)
	return &c
}

// WithContext binds ctx so its connection ID is attached to every entry.
func (l *slogLogger) WithContext(ctx context.Context) Logger {
	c := *l
	c.ctx = ctx
	return &c
}

func (l *slogLogger) Slog() *slog.Logger {
	return l.logger
}

// Close closes the rotated log file. Loggers derived with With share it.
func (l *slogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
