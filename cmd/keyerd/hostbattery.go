package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"keyer/internal/battery"
)

// hostBatterySampler reports the host battery through the same path
// the firmware reports its cell, or nil when the host has none.
func hostBatterySampler() battery.Sampler {
	matches, _ := filepath.Glob("/sys/class/power_supply/BAT*/capacity")
	if len(matches) == 0 {
		return nil
	}
	path := matches[0]
	return func() (int, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, err
		}
		pct, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			return 0, err
		}
		return battery.RawFromPercent(uint8(pct)), nil
	}
}
