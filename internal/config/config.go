// Package config handles configuration loading and validation for the
// keyer binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the complete configuration.
type Config struct {
	// Engine configuration for the input engine timings.
	Engine EngineConfig `toml:"engine" json:"engine" yaml:"engine"`

	// Battery configuration for the periodic charge reports.
	Battery BatteryConfig `toml:"battery" json:"battery" yaml:"battery"`

	// Input configuration for the host-side event source.
	Input InputConfig `toml:"input" json:"input" yaml:"input"`

	// Scorer configuration for the typing-cost simulator.
	Scorer ScorerConfig `toml:"scorer" json:"scorer" yaml:"scorer"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// EngineConfig holds the gesture-recognizer timings.
type EngineConfig struct {
	// DebounceMicros is the per-button debounce window in microseconds.
	DebounceMicros int64 `toml:"debounce_micros" json:"debounce_micros" yaml:"debounce_micros"`

	// ArpeggioMinSpacingMs is the minimum press spacing of an arpeggio
	// in milliseconds.
	ArpeggioMinSpacingMs int64 `toml:"arpeggio_min_spacing_ms" json:"arpeggio_min_spacing_ms" yaml:"arpeggio_min_spacing_ms"`

	// ArpeggioMaxHoldMs is the longest second-button hold that still
	// commits an arpeggio, in milliseconds.
	ArpeggioMaxHoldMs int64 `toml:"arpeggio_max_hold_ms" json:"arpeggio_max_hold_ms" yaml:"arpeggio_max_hold_ms"`

	// ChordAutostartMs is the chord-hold delay in milliseconds.
	// 0 disables chord autostart.
	ChordAutostartMs int64 `toml:"chord_autostart_ms" json:"chord_autostart_ms" yaml:"chord_autostart_ms"`

	// QueueCapacity bounds the raw edge queue.
	QueueCapacity int `toml:"queue_capacity" json:"queue_capacity" yaml:"queue_capacity"`

	// PasskeyTimeoutSec bounds PIN collection during pairing.
	PasskeyTimeoutSec int `toml:"passkey_timeout_sec" json:"passkey_timeout_sec" yaml:"passkey_timeout_sec"`
}

// BatteryConfig holds battery sampling settings.
type BatteryConfig struct {
	// IntervalSec is the sampling period in seconds. 0 disables
	// battery reporting.
	IntervalSec int `toml:"interval_sec" json:"interval_sec" yaml:"interval_sec"`
}

// InputConfig configures the host-side event source used by keyerd.
type InputConfig struct {
	// Device is the evdev device path. Empty means scan for the first
	// keyboard-capable device.
	Device string `toml:"device" json:"device" yaml:"device"`

	// Grab takes exclusive ownership of the device so chorded input
	// does not leak through as ordinary keystrokes.
	Grab bool `toml:"grab" json:"grab" yaml:"grab"`

	// Keys maps the ten buttons to evdev key codes, in button order
	// (three thumb buttons, then INDEX_3, MIDDLE_4, RING_5, LITTLE_6,
	// INDEX_7, MIDDLE_8, RING_9).
	Keys []uint16 `toml:"keys" json:"keys" yaml:"keys"`
}

// ScorerConfig carries cost-table overrides for the simulator. Empty
// slices keep the reference tables.
type ScorerConfig struct {
	// TravelMs is the per-row travel cost per finger, thumb first.
	TravelMs []uint32 `toml:"travel_ms" json:"travel_ms" yaml:"travel_ms"`

	// PressMs is the press cost per finger and row, thumb first.
	PressMs [][]uint32 `toml:"press_ms" json:"press_ms" yaml:"press_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is debug, info, warn, or error.
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is text or json.
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is stdout, stderr, or a file path.
	Output string `toml:"output" json:"output" yaml:"output"`
}

// DefaultConfig returns the reference settings: 15 ms debounce, the
// 80/240 ms arpeggio windows, chord autostart disabled, battery every
// five seconds.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			DebounceMicros:       15000,
			ArpeggioMinSpacingMs: 80,
			ArpeggioMaxHoldMs:    240,
			ChordAutostartMs:     0,
			QueueCapacity:        100,
			PasskeyTimeoutSec:    30,
		},
		Battery: BatteryConfig{
			IntervalSec: 5,
		},
		Input: InputConfig{
			Grab: true,
			// KEY_SPACE, KEY_C, KEY_X for the thumb, then the home row
			// KEY_F, KEY_D, KEY_S, KEY_A and the upper row KEY_R,
			// KEY_E, KEY_W.
			Keys: []uint16{57, 46, 45, 33, 32, 31, 30, 19, 18, 17},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "keyer", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "keyer", "config.toml")
}

// Load reads a TOML config file over the defaults. A missing file is
// not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for impossible values.
func (c *Config) Validate() error {
	if c.Engine.DebounceMicros < 0 {
		return errors.New("engine.debounce_micros must not be negative")
	}
	if c.Engine.ArpeggioMinSpacingMs < 0 || c.Engine.ArpeggioMaxHoldMs < 0 {
		return errors.New("arpeggio windows must not be negative")
	}
	if c.Engine.ChordAutostartMs < 0 {
		return errors.New("engine.chord_autostart_ms must not be negative")
	}
	if c.Engine.QueueCapacity < 1 {
		return errors.New("engine.queue_capacity must be at least 1")
	}
	if c.Battery.IntervalSec < 0 {
		return errors.New("battery.interval_sec must not be negative")
	}
	if n := len(c.Input.Keys); n != 0 && n != 10 {
		return fmt.Errorf("input.keys must list exactly 10 key codes, got %d", n)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not debug, info, warn, or error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not text or json", c.Logging.Format)
	}
	if len(c.Scorer.TravelMs) != 0 && len(c.Scorer.TravelMs) != 5 {
		return errors.New("scorer.travel_ms must list five fingers")
	}
	if len(c.Scorer.PressMs) != 0 && len(c.Scorer.PressMs) != 5 {
		return errors.New("scorer.press_ms must list five fingers")
	}
	return nil
}

// AutostartDelay converts the autostart setting to a duration,
// translating "disabled" to an unreachable delay.
func (c *EngineConfig) AutostartDelay() time.Duration {
	if c.ChordAutostartMs <= 0 {
		return time.Duration(1<<62 - 1)
	}
	return time.Duration(c.ChordAutostartMs) * time.Millisecond
}
