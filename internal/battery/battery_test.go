package battery

import (
	"errors"
	"testing"
	"time"

	"keyer/internal/clock"
	"keyer/internal/hid"
)

func TestPercentBounds(t *testing.T) {
	if got := Percent(0); got != 0 {
		t.Errorf("Percent(0) = %d, want 0", got)
	}
	// 2441 counts read as 4.187 V, just past full (4.185 V).
	if got := Percent(2441); got != 100 {
		t.Errorf("Percent(2441) = %d, want 100", got)
	}
}

func TestPercentMidRange(t *testing.T) {
	// 3.6 V sits a little over halfway between 3.0 and 4.185.
	voltsPerCount := 4.187 / 2441.0
	raw := int(3.6 / voltsPerCount)
	got := Percent(raw)
	if got < 48 || got > 53 {
		t.Errorf("Percent(%d) = %d, want around 50", raw, got)
	}
}

func TestRawFromPercentRoundTrip(t *testing.T) {
	for _, pct := range []uint8{0, 25, 50, 75, 100} {
		back := Percent(RawFromPercent(pct))
		diff := int(back) - int(pct)
		if diff < -1 || diff > 1 {
			t.Errorf("Percent(RawFromPercent(%d)) = %d", pct, back)
		}
	}
}

func TestMonitorReportsPeriodically(t *testing.T) {
	m := clock.NewManual()
	rec := hid.NewRecorder()
	raw := RawFromPercent(80)
	mon := NewMonitor(m, func() (int, error) { return raw, nil }, rec, nil)
	mon.Start(5 * time.Second)

	m.Advance(16 * time.Second)
	mon.Stop()
	m.Advance(time.Minute)

	var levels []uint8
	for _, op := range rec.Ops {
		if op.Kind == hid.OpBattery {
			levels = append(levels, op.Battery)
		}
	}
	if len(levels) != 3 {
		t.Fatalf("got %d battery reports, want 3", len(levels))
	}
	for _, lvl := range levels {
		if lvl < 79 || lvl > 81 {
			t.Errorf("level = %d, want about 80", lvl)
		}
	}
}

func TestMonitorSkipsFailedSamples(t *testing.T) {
	m := clock.NewManual()
	rec := hid.NewRecorder()
	calls := 0
	mon := NewMonitor(m, func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("adc busy")
		}
		return RawFromPercent(50), nil
	}, rec, nil)
	mon.Start(5 * time.Second)

	m.Advance(11 * time.Second)

	var levels []uint8
	for _, op := range rec.Ops {
		if op.Kind == hid.OpBattery {
			levels = append(levels, op.Battery)
		}
	}
	if len(levels) != 1 {
		t.Fatalf("got %d reports, want 1 (first sample failed)", len(levels))
	}
}
