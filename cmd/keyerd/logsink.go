package main

import (
	"log/slog"

	"keyer/internal/hid"
)

// logSink is a dry-run Keyboard that logs instead of typing.
type logSink struct {
	log *slog.Logger
}

func (s *logSink) Press(code hid.Code)   { s.log.Info("press", "key", code) }
func (s *logSink) Release(code hid.Code) { s.log.Info("release", "key", code) }

func (s *logSink) SetBatteryLevel(pct uint8) {
	s.log.Info("battery level", "percent", pct)
}

func (s *logSink) IsConnected() bool { return true }
