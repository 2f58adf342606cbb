//go:build linux

package main

import (
	"log/slog"

	"github.com/micmonay/keybd_event"

	"keyer/internal/hid"
)

// keybdSink emits key events through a uinput virtual keyboard.
type keybdSink struct {
	kb  keybd_event.KeyBonding
	log *slog.Logger
}

func newSink(dryRun bool, log *slog.Logger) (hid.Keyboard, func() error, error) {
	if dryRun {
		return &logSink{log: log}, func() error { return nil }, nil
	}
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, nil, err
	}
	return &keybdSink{kb: kb, log: log}, func() error { return nil }, nil
}

func (s *keybdSink) Press(code hid.Code) {
	lin, ok := linuxKeycodes[code]
	if !ok {
		s.log.Warn("no host keycode", "key", code)
		return
	}
	s.kb.Clear()
	s.kb.SetKeys(lin)
	if err := s.kb.Press(); err != nil {
		s.log.Warn("virtual key press failed", "key", code, "error", err)
	}
}

func (s *keybdSink) Release(code hid.Code) {
	lin, ok := linuxKeycodes[code]
	if !ok {
		return
	}
	s.kb.Clear()
	s.kb.SetKeys(lin)
	if err := s.kb.Release(); err != nil {
		s.log.Warn("virtual key release failed", "key", code, "error", err)
	}
}

func (s *keybdSink) SetBatteryLevel(pct uint8) {
	s.log.Debug("battery level", "percent", pct)
}

func (s *keybdSink) IsConnected() bool { return true }
