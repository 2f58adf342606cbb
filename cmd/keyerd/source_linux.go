//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	evdev "github.com/holoplot/go-evdev"

	"keyer/internal/chord"
	"keyer/internal/clock"
	"keyer/internal/config"
	"keyer/internal/engine"
	"keyer/internal/gpio"
)

// evdevSource reads key events from one evdev device and forwards the
// configured keys as button edges.
type evdevSource struct {
	dev  *evdev.InputDevice
	path string
	keys map[evdev.EvCode]chord.Button
	pins *gpio.SimBank
	grab bool
	log  *slog.Logger
}

func openSource(cfg config.InputConfig, pins *gpio.SimBank, log *slog.Logger) (eventSource, error) {
	path := cfg.Device
	if path == "" {
		found, err := findKeyboard()
		if err != nil {
			return nil, err
		}
		path = found
	}
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if cfg.Grab {
		if err := dev.Grab(); err != nil {
			dev.Close()
			return nil, fmt.Errorf("grab %s: %w", path, err)
		}
	}
	keys := make(map[evdev.EvCode]chord.Button, chord.NumButtons)
	for b, code := range cfg.Keys {
		keys[evdev.EvCode(code)] = chord.Button(b)
	}
	return &evdevSource{dev: dev, path: path, keys: keys, pins: pins, grab: cfg.Grab, log: log}, nil
}

// findKeyboard returns the first device advertising EV_KEY.
func findKeyboard() (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", err
	}
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		types := dev.CapableTypes()
		dev.Close()
		for _, t := range types {
			if t == evdev.EV_KEY {
				return p.Path, nil
			}
		}
	}
	return "", errors.New("no keyboard-capable input device found")
}

func (s *evdevSource) Path() string { return s.path }

func (s *evdevSource) Close() error {
	if s.grab {
		s.dev.Ungrab()
	}
	return s.dev.Close()
}

// Feed pumps device events into the engine until ctx is cancelled or
// the device goes away. Unmapped keys and key repeats are ignored.
func (s *evdevSource) Feed(ctx context.Context, e *engine.Engine, clk clock.Clock) {
	for ctx.Err() == nil {
		ev, err := s.dev.ReadOne()
		if err != nil {
			if ctx.Err() == nil {
				s.log.Error("input device lost", "device", s.path, "error", err)
			}
			return
		}
		if ev.Type != evdev.EV_KEY || ev.Value == 2 {
			continue
		}
		b, ok := s.keys[ev.Code]
		if !ok {
			continue
		}
		s.pins.Set(b, ev.Value == 1)
		e.OnEdge(b, clk.Now())
	}
}

func cmdDevices() {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing devices: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Printf("%s\t%s\n", p.Path, p.Name)
	}
}
