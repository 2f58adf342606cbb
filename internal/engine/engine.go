// Package engine turns raw button edges into action invocations.
//
// The pipeline is: interrupt-posted edges enter a bounded queue, a
// single dispatcher goroutine debounces them into logical press and
// release events, and the gesture recognizer decides between four
// disjoint outcomes:
//
//   - a unique action fires on press, as soon as only one layer slot
//     remains compatible with the partial press state;
//   - a chord action fires on release of the composed chord;
//   - a chord-hold action starts when the chord has been held past the
//     autostart delay and stops when any member button is released;
//   - an arpeggio action fires when exactly two buttons are pressed in
//     sequence inside the arpeggio timing windows.
//
// All timer callbacks are delivered on the dispatcher goroutine, so no
// gesture state is locked. While the transport is disconnected,
// logical events are dropped; while a passkey is being collected,
// presses feed the PIN buffer instead of the recognizer.
package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"keyer/internal/action"
	"keyer/internal/chord"
	"keyer/internal/clock"
	"keyer/internal/gpio"
	"keyer/internal/hid"
	"keyer/internal/layout"
)

// Config holds the engine timing parameters.
type Config struct {
	// DebounceWindow is the per-button debounce duration. Edges closer
	// together than this are treated as bounces.
	DebounceWindow time.Duration

	// ArpeggioMinSpacing is the minimum delay between the two presses
	// of an arpeggio.
	ArpeggioMinSpacing time.Duration

	// ArpeggioMaxHold is the longest the second button may stay down
	// for the release to still commit an arpeggio.
	ArpeggioMaxHold time.Duration

	// ChordAutostart is the hold duration after which a chord's action
	// starts without waiting for release. Set it very large to disable
	// the feature.
	ChordAutostart time.Duration

	// QueueCapacity bounds the edge queue.
	QueueCapacity int

	// PasskeyTimeout bounds how long pairing waits for PIN digits.
	PasskeyTimeout time.Duration
}

// DefaultConfig returns the reference timings. Chord autostart ships
// disabled: it makes learning the layout much harder, so the delay is
// set beyond any realistic hold. Lower it to ~350ms once comfortable.
func DefaultConfig() Config {
	return Config{
		DebounceWindow:     15 * time.Millisecond,
		ArpeggioMinSpacing: 80 * time.Millisecond,
		ArpeggioMaxHold:    240 * time.Millisecond,
		ChordAutostart:     time.Duration(1<<62 - 1),
		QueueCapacity:      100,
		PasskeyTimeout:     30 * time.Second,
	}
}

// Edge is one raw transition observed on a button pin.
type Edge struct {
	Button chord.Button
	Time   int64 // microseconds
}

type arpeggioState uint8

const (
	arpReady arpeggioState = iota
	arpOneDown
	arpTwoDown
	arpInactive
)

// Engine is the input engine. Create it with New, feed edges with
// OnEdge, and drive it with Run.
type Engine struct {
	cfg   Config
	sched clock.Scheduler
	kb    hid.Keyboard
	exec  *action.Executor
	layer *layout.Layer
	arps  *layout.Arpeggios
	log   *slog.Logger

	edges   chan Edge
	cmds    chan func()
	dropped atomic.Uint64

	debouncers  [chord.NumButtons]*debouncer
	buttonsDown [chord.NumButtons]bool

	chordAction *action.Action
	autostart   clock.Timer

	arpState arpeggioState
	arpStart int64
	arpFirst chord.Button
	arpLast  chord.Button

	passkey passkeyCollector
}

// New builds an engine over the given scheduler, pin reader, transport,
// and chord tables.
func New(cfg Config, sched clock.Scheduler, pins gpio.Reader, kb hid.Keyboard, layer *layout.Layer, arps *layout.Arpeggios, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 100
	}
	e := &Engine{
		cfg:   cfg,
		sched: sched,
		kb:    kb,
		exec:  action.NewExecutor(kb, log),
		layer: layer,
		arps:  arps,
		log:   log,
		edges: make(chan Edge, cfg.QueueCapacity),
		cmds:  make(chan func(), 8),
	}
	e.autostart = sched.OneShot("chord-autostart", e.onAutostart)
	for b := chord.Button(0); b < chord.NumButtons; b++ {
		e.debouncers[b] = newDebouncer(b, cfg.DebounceWindow, sched, pins, e.report)
	}
	return e
}

// Executor exposes the action executor, mainly to tests.
func (e *Engine) Executor() *action.Executor { return e.exec }

// SetLayer installs a substitute chord table. The base layer is the
// one passed to New; callers must invoke this from the dispatcher
// (via a command) or before Run.
func (e *Engine) SetLayer(l *layout.Layer) { e.layer = l }

// OnEdge posts a raw edge to the dispatcher. It never blocks: when the
// queue is full the edge is dropped and the debouncer's ground-truth
// timer repairs the state on the next quiet window.
func (e *Engine) OnEdge(b chord.Button, t int64) {
	select {
	case e.edges <- Edge{Button: b, Time: t}:
	default:
		e.dropped.Add(1)
	}
}

// Dropped reports how many edges overflowed the queue.
func (e *Engine) Dropped() uint64 { return e.dropped.Load() }

// Run dispatches edges, timer callbacks, and commands until ctx is
// cancelled. It is the only goroutine that touches gesture state.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case edge := <-e.edges:
			e.debouncers[edge.Button].onEdge(edge.Time)
		case fn := <-e.sched.Calls():
			fn()
		case fn := <-e.cmds:
			fn()
		}
	}
}

// Step processes pending edges and commands without blocking. Tests
// use it together with a Manual scheduler.
func (e *Engine) Step() {
	for {
		select {
		case edge := <-e.edges:
			e.debouncers[edge.Button].onEdge(edge.Time)
		case fn := <-e.cmds:
			fn()
		default:
			return
		}
	}
}

// report receives debounced logical transitions.
func (e *Engine) report(b chord.Button, pressed bool) {
	if e.passkey.collecting {
		if pressed {
			e.passkey.add(e, byte(b))
		}
		return
	}
	if !e.kb.IsConnected() {
		e.log.Debug("transport not connected, dropping event", "button", b, "pressed", pressed)
		return
	}
	if pressed {
		e.onPress(b)
	} else {
		e.onRelease(b)
	}
}

func (e *Engine) currentChord() chord.Chord {
	return chord.FromButtons(e.buttonsDown)
}

func (e *Engine) onPress(b chord.Button) {
	now := e.sched.Now()
	e.advanceArpeggio(b, now)

	e.buttonsDown[b] = true
	if u := e.layer.UniqueWithin(e.currentChord()); u != nil {
		// A unique action starts immediately and is not part of the
		// forming chord, so independent unique actions can coexist.
		e.buttonsDown[b] = false
		e.autostart.Stop()
		e.log.Debug("unique action", "button", b)
		e.exec.SetActive(b, u)
		e.exec.Start(u)
		return
	}
	e.autostart.Start(e.cfg.ChordAutostart)
}

func (e *Engine) onRelease(b chord.Button) {
	now := e.sched.Now()
	committed := e.commitArpeggio(b, now)

	if !committed {
		switch {
		case e.exec.StopActive(b):
			e.log.Debug("stopped active button action", "button", b)
		case e.chordAction != nil && e.buttonsDown[b]:
			e.log.Debug("stopping chord hold")
			e.exec.Stop(e.chordAction)
			e.chordAction = nil
		case e.autostart.Active():
			e.autostart.Stop()
			if a := e.layer.At(e.currentChord()); a != nil {
				e.log.Debug("chord action", "chord", e.currentChord().String())
				e.exec.Execute(a)
				// The chord may have attached a hold debt to the very
				// button that just came up; settle it immediately.
				e.exec.StopActive(b)
			} else {
				e.log.Debug("no chord action", "chord", e.currentChord().String())
			}
		}
	}

	e.buttonsDown[b] = false
	if e.currentChord().IsZero() {
		e.arpState = arpReady
	}
}

// advanceArpeggio drives the FSM on a press.
func (e *Engine) advanceArpeggio(b chord.Button, now int64) {
	switch e.arpState {
	case arpReady:
		e.arpFirst = b
		e.arpStart = now
		e.arpState = arpOneDown
	case arpOneDown:
		if now-e.arpStart >= e.cfg.ArpeggioMinSpacing.Microseconds() {
			e.arpLast = b
			e.arpStart = now
			e.arpState = arpTwoDown
		} else {
			e.arpState = arpInactive
		}
	default:
		e.arpState = arpInactive
	}
}

// commitArpeggio drives the FSM on a release and reports whether an
// arpeggio action fired.
func (e *Engine) commitArpeggio(b chord.Button, now int64) bool {
	if e.arpState != arpTwoDown {
		return false
	}
	e.arpState = arpInactive
	if now-e.arpStart > e.cfg.ArpeggioMaxHold.Microseconds() {
		return false
	}
	a := e.arps.At(e.arpFirst, e.arpLast)
	if a == nil {
		return false
	}
	e.log.Debug("arpeggio action", "first", e.arpFirst, "second", e.arpLast)
	e.exec.Execute(a)
	e.autostart.Stop()
	return true
}

// onAutostart starts the currently held chord's action without waiting
// for release.
func (e *Engine) onAutostart() {
	if e.chordAction != nil {
		e.log.Error("chord action already active at autostart")
		return
	}
	if a := e.layer.At(e.currentChord()); a != nil {
		e.log.Debug("starting chord hold", "chord", e.currentChord().String())
		e.exec.Start(a)
		e.chordAction = a
	}
}

// do runs fn on the dispatcher goroutine.
func (e *Engine) do(fn func()) {
	e.cmds <- fn
}
