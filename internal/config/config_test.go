package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Engine.DebounceMicros != 15000 {
		t.Errorf("debounce = %d, want 15000", cfg.Engine.DebounceMicros)
	}
	if cfg.Engine.ArpeggioMinSpacingMs != 80 || cfg.Engine.ArpeggioMaxHoldMs != 240 {
		t.Errorf("arpeggio windows = %d/%d, want 80/240",
			cfg.Engine.ArpeggioMinSpacingMs, cfg.Engine.ArpeggioMaxHoldMs)
	}
	if cfg.Engine.ChordAutostartMs != 0 {
		t.Errorf("autostart = %d, want disabled", cfg.Engine.ChordAutostartMs)
	}
	if len(cfg.Input.Keys) != 10 {
		t.Errorf("default key bindings = %d, want 10", len(cfg.Input.Keys))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	path := ConfigPath()
	if !strings.HasSuffix(path, filepath.Join("keyer", "config.toml")) {
		t.Errorf("unexpected config path %s", path)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.DebounceMicros != 15000 {
		t.Errorf("missing file did not yield defaults")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[engine]
chord_autostart_ms = 350
queue_capacity = 64

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.ChordAutostartMs != 350 {
		t.Errorf("autostart = %d, want 350", cfg.Engine.ChordAutostartMs)
	}
	if cfg.Engine.QueueCapacity != 64 {
		t.Errorf("queue = %d, want 64", cfg.Engine.QueueCapacity)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched settings keep their defaults.
	if cfg.Engine.DebounceMicros != 15000 {
		t.Errorf("debounce = %d, want 15000", cfg.Engine.DebounceMicros)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[engine]
queue_capacity = 0
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("invalid config accepted")
	}
}

func TestValidateErrors(t *testing.T) {
	mutate := []func(*Config){
		func(c *Config) { c.Engine.DebounceMicros = -1 },
		func(c *Config) { c.Engine.ArpeggioMinSpacingMs = -1 },
		func(c *Config) { c.Engine.QueueCapacity = 0 },
		func(c *Config) { c.Battery.IntervalSec = -5 },
		func(c *Config) { c.Input.Keys = []uint16{1, 2, 3} },
		func(c *Config) { c.Logging.Level = "loud" },
		func(c *Config) { c.Logging.Format = "xml" },
		func(c *Config) { c.Scorer.TravelMs = []uint32{1} },
		func(c *Config) { c.Scorer.PressMs = [][]uint32{{1}} },
	}
	for i, f := range mutate {
		cfg := DefaultConfig()
		f(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d validated", i)
		}
	}
}

func TestAutostartDelay(t *testing.T) {
	c := EngineConfig{ChordAutostartMs: 350}
	if got := c.AutostartDelay(); got != 350*time.Millisecond {
		t.Errorf("delay = %v", got)
	}
	c.ChordAutostartMs = 0
	if got := c.AutostartDelay(); got < 100000*time.Hour {
		t.Errorf("disabled delay = %v, want effectively never", got)
	}
}
