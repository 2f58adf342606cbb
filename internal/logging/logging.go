// Package logging provides structured logging with slog for the keyer
// binaries.
//
// Features:
//   - text and JSON output formats
//   - log levels (debug, info, warn, error)
//   - stdout, stderr, or file output
//   - per-component child loggers
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options configures Setup.
type Options struct {
	// Level is "debug", "info", "warn", or "error". Empty means info.
	Level string

	// Format is "text" or "json". Empty means text.
	Format string

	// Output is "stdout", "stderr", or a file path. Empty means
	// stderr.
	Output string

	// Component tags every record with a component name.
	Component string
}

// Setup builds a logger from the options and installs it as the slog
// default. The returned close function releases the log file, if any.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer
	closer := func() error { return nil }
	switch opts.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		if err := os.MkdirAll(filepath.Dir(opts.Output), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	hopts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}

	logger := slog.New(handler)
	if opts.Component != "" {
		logger = logger.With("component", opts.Component)
	}
	slog.SetDefault(logger)
	return logger, closer, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
