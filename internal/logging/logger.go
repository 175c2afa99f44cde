// Package logging builds the application's zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"functionallab/coach-os/internal/config"
)

// New creates a logger from the log configuration. The returned closer
// releases the rotating file sink, if any; it is never nil.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	console := selectOutput(cfg.Format, os.Stderr)

	var writer io.Writer = console
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return zerolog.Nop(), closer, err
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		writer = zerolog.MultiLevelWriter(console, lj)
		closer = lj
	}

	return NewWithWriter(cfg.Level, writer), closer, nil
}

// NewWithWriter creates a logger writing to w. Intended for tests and tools.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// selectOutput picks a console writer for terminals and raw JSON otherwise.
func selectOutput(format string, f *os.File) io.Writer {
	switch format {
	case "json":
		return f
	case "console":
		return zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	if term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	return f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
