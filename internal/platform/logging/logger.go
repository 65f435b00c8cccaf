package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	apperrors "kitchen/internal/platform/errors"
)

// New opens (or appends to) the log file at path and returns a structured
// logger writing to it. The returned closer releases the file handle.
func New(path, level string) (hclog.Logger, io.Closer, error) {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return nil, nil, fmt.Errorf("%w: unknown log level %q", apperrors.ErrConfiguration, level)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open log file: %w", err)
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "kitchen",
		Level:      lvl,
		Output:     f,
		TimeFormat: time.RFC3339,
	})
	return logger, f, nil
}

// OrNull returns logger, or a logger that discards everything when nil.
func OrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
