//go:build !linux

package main

import (
	"log/slog"

	"keyer/internal/hid"
)

func newSink(dryRun bool, log *slog.Logger) (hid.Keyboard, func() error, error) {
	// Without uinput the engine can still run end to end; output goes
	// to the log.
	return &logSink{log: log}, func() error { return nil }, nil
}
