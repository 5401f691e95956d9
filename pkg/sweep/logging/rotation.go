package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const megabyte = 1024 * 1024

// RotationConfig configures log file rotation.
type RotationConfig struct {
	// MaxSize is the size in bytes at which the file is rotated.
	// It is rounded up to whole megabytes. Zero uses the default.
	MaxSize int64

	// MaxAge is the number of days to keep rotated files. Zero keeps them
	// regardless of age.
	MaxAge int

	// MaxBackups is the number of rotated files to keep. Zero keeps all.
	MaxBackups int

	// Compress gzips rotated files.
	Compress bool
}

// DefaultRotationConfig returns the rotation used when nothing is configured.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MaxSize:    10 * megabyte,
		MaxAge:     30,
		MaxBackups: 5,
	}
}

// sizeMB converts MaxSize to lumberjack's megabyte unit.
func (c RotationConfig) sizeMB() int {
	if c.MaxSize <= 0 {
		return int(DefaultRotationConfig().MaxSize / megabyte)
	}
	return int((c.MaxSize + megabyte - 1) / megabyte)
}

// newFileWriter opens a rotating writer at path, creating its directory.
func newFileWriter(path string, cfg RotationConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.sizeMB(),
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
		Compress:   cfg.Compress,
	}, nil
}
