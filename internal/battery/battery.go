// Package battery periodically samples the battery voltage divider and
// forwards the charge percentage to the HID transport.
package battery

import (
	"log/slog"
	"time"

	"keyer/internal/clock"
	"keyer/internal/hid"
)

// Calibration constants for the reference voltage divider, measured
// against a multimeter.
const (
	voltsPerCount = 4.187 / 2441.0
	emptyMillis   = 3000 // 3.000 V reads as 0%
	fullMillis    = 4185 // 4.185 V reads as 100%
)

// Sampler reads the raw ADC count on the battery pin.
type Sampler func() (int, error)

// Percent converts a raw ADC count to a 0-100 charge percentage.
func Percent(raw int) uint8 {
	mv := int(float64(raw) * voltsPerCount * 1000)
	if mv < emptyMillis {
		mv = emptyMillis
	}
	if mv > fullMillis {
		mv = fullMillis
	}
	return uint8((mv - emptyMillis) * 100 / (fullMillis - emptyMillis))
}

// RawFromPercent inverts Percent for sources that report a percentage
// rather than an ADC count, such as a host power supply.
func RawFromPercent(pct uint8) int {
	if pct > 100 {
		pct = 100
	}
	mv := emptyMillis + int(pct)*(fullMillis-emptyMillis)/100
	return int(float64(mv) / 1000 / voltsPerCount)
}

// Monitor drives periodic battery updates. Sampling errors are logged
// and skipped; the next tick tries again.
type Monitor struct {
	sample Sampler
	kb     hid.Keyboard
	timer  clock.Timer
	log    *slog.Logger
}

// NewMonitor returns a Monitor reporting into kb. Its ticks dispatch
// on the scheduler's consumer loop like every other timer.
func NewMonitor(sched clock.Scheduler, sample Sampler, kb hid.Keyboard, log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.Default()
	}
	m := &Monitor{sample: sample, kb: kb, log: log}
	m.timer = sched.Periodic("battery", m.read)
	return m
}

// Start begins sampling every interval.
func (m *Monitor) Start(interval time.Duration) {
	m.timer.Start(interval)
}

// Stop halts sampling.
func (m *Monitor) Stop() {
	m.timer.Stop()
}

func (m *Monitor) read() {
	raw, err := m.sample()
	if err != nil {
		m.log.Warn("battery sample failed", "error", err)
		return
	}
	pct := Percent(raw)
	m.log.Debug("battery level", "raw", raw, "percent", pct)
	m.kb.SetBatteryLevel(pct)
}
