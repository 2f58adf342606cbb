//go:build !linux

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"keyer/internal/config"
	"keyer/internal/gpio"
)

var errLinuxOnly = errors.New("host input capture requires Linux evdev")

func openSource(cfg config.InputConfig, pins *gpio.SimBank, log *slog.Logger) (eventSource, error) {
	return nil, errLinuxOnly
}

func cmdDevices() {
	fmt.Fprintln(os.Stderr, errLinuxOnly)
	os.Exit(1)
}
