package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures rotated file output. Sizes are in megabytes and
// ages in days, as lumberjack takes them.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// openOutput returns the writer for cfg and, for file output, the closer
// that releases it.
func openOutput(cfg Config) (io.Writer, io.Closer, error) {
	if cfg.File.Path == "" {
		if cfg.Output == nil {
			return os.Stderr, nil, nil
		}
		return cfg.Output, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.File.Path,
		MaxSize:    cfg.File.MaxSizeMB,
		MaxBackups: cfg.File.MaxBackups,
		MaxAge:     cfg.File.MaxAgeDays,
		Compress:   cfg.File.Compress,
	}
	return lj, lj, nil
}
