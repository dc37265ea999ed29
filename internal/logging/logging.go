// Package logging builds the charmbracelet logger shared by the CLI and the
// generator, optionally writing JSON lines to a rotating file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/circuitgen/internal/config"
)

const prefix = "circuitgen"

// New creates a logger from cfg. The LOG_LEVEL environment variable overrides
// cfg.Level. With cfg.File set, entries go to a rotating file as JSON instead
// of stderr. Close the returned io.Closer when done.
func New(cfg config.LoggingConfig) (*log.Logger, io.Closer, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with the console writer made explicit.
func NewWithWriter(cfg config.LoggingConfig, console io.Writer) (*log.Logger, io.Closer, error) {
	levelName := cfg.Level
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		levelName = env
	}
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}

	opts := log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	}

	if cfg.File == "" {
		return log.NewWithOptions(console, opts), nopCloser{}, nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	opts.Formatter = log.JSONFormatter
	return log.NewWithOptions(file, opts), file, nil
}

// ParseLevel converts a level name to a log level. Empty means info.
func ParseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return log.InfoLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: unknown level %q", s)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
