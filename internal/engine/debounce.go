package engine

import (
	"time"

	"keyer/internal/chord"
	"keyer/internal/clock"
	"keyer/internal/gpio"
)

// debouncer converts raw edge events for one button into logical
// press/release transitions.
//
// The first edge after a quiet period is reported immediately, so a
// clean press has zero added latency. Edges inside the debounce window
// are ignored, and a one-shot timer re-reads the GPIO one window after
// the last edge; if the reported state drifted from the real pin state
// the timer corrects it. A bounce storm can therefore be briefly
// mis-reported but never for longer than the window.
type debouncer struct {
	button  chord.Button
	window  time.Duration
	clk     clock.Clock
	pins    gpio.Reader
	timer   clock.Timer
	report  func(b chord.Button, pressed bool)
	pressed bool
	last    int64 // microseconds of last reported or observed change
}

func newDebouncer(b chord.Button, window time.Duration, sched clock.Scheduler, pins gpio.Reader, report func(chord.Button, bool)) *debouncer {
	d := &debouncer{
		button: b,
		window: window,
		clk:    sched,
		pins:   pins,
		report: report,
	}
	d.last = sched.Now()
	d.pressed = pins.Pressed(b)
	d.timer = sched.OneShot(b.String(), d.onTimer)
	return d
}

// onEdge handles one queued edge with its interrupt timestamp.
func (d *debouncer) onEdge(t int64) {
	delta := t - d.last
	d.last = t
	if delta > d.window.Microseconds() {
		d.pressed = !d.pressed
		d.report(d.button, d.pressed)
	}
	// Ground-truth read one window from now; also catches edges the
	// window swallowed.
	d.timer.Start(d.window)
}

// onTimer reconciles the reported state with the actual pin state.
func (d *debouncer) onTimer() {
	actual := d.pins.Pressed(d.button)
	if actual != d.pressed {
		d.pressed = actual
		d.last = d.clk.Now()
		d.report(d.button, d.pressed)
	}
}
