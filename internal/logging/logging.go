// Package logging builds the zerolog loggers used across lessonplan.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging settings.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
	// File receives the logs of the terminal UI, whose stdout is taken.
	// Empty means <data dir>/lessonplan.log.
	File string `yaml:"file"`
}

// DefaultConfig returns info-level console logging.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
	}
}

// New returns a logger writing to w. An unknown level falls back to info.
func New(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !isTerminal(w)}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// OpenFile opens path for appending, creating its directory. The caller
// closes the file.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
