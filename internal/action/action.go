// Package action implements the composable chord actions: what keys
// and modifiers a chord asserts on Start and negates on Stop.
//
// An Action is a node in a linear chain. Start descends the chain head
// to tail; Stop ascends tail to head, so the last key pressed is the
// first released. Execute is Start immediately followed by Stop (a
// tap). All operations are infallible notifications to the HID sink.
//
// Variants:
//   - Key: presses a usage code on Start, releases it on Stop, then
//     releases any outstanding temporary modifiers.
//   - Mod (temporary modifier): Start toggles the modifier - pressed
//     and recorded if absent, released and dropped if already
//     outstanding. Stop does nothing; the next Key's Stop cleans up.
//   - Hold (hold modifier): Start presses the modifier and parks a
//     release action in the anchor button's active slot, so releasing
//     that button later releases the modifier. If the slot is already
//     occupied the modifier is kept as is.
//
// Actions are immutable after layout setup and may be shared between
// chord slots.
package action

import (
	"log/slog"

	"keyer/internal/chord"
	"keyer/internal/hid"
)

type kind uint8

const (
	kindKey kind = iota
	kindTempMod
	kindHoldMod
	kindRelease
)

// Action is one node of an action chain.
type Action struct {
	kind    kind
	code    hid.Code
	anchor  chord.Button
	next    *Action
	release *Action // owned by Hold nodes
}

// Key returns an action that types the given usage code.
func Key(code hid.Code) *Action {
	return &Action{kind: kindKey, code: code}
}

// Mod returns a temporary-modifier action.
func Mod(code hid.Code) *Action {
	return &Action{kind: kindTempMod, code: code}
}

// Hold returns a hold-modifier action anchored to the given button.
func Hold(anchor chord.Button, code hid.Code) *Action {
	a := &Action{kind: kindHoldMod, code: code, anchor: anchor}
	a.release = &Action{kind: kindRelease, code: code}
	return a
}

// String renders the chain for logs and layout dumps, e.g.
// "Mod(CtrlL)+Key(Right)".
func (a *Action) String() string {
	if a == nil {
		return "<nil>"
	}
	var s string
	for n := a; n != nil; n = n.next {
		if s != "" {
			s += "+"
		}
		switch n.kind {
		case kindKey:
			s += "Key(" + n.code.String() + ")"
		case kindTempMod:
			s += "Mod(" + n.code.String() + ")"
		case kindHoldMod:
			s += "Hold(" + n.anchor.String() + "," + n.code.String() + ")"
		case kindRelease:
			s += "Release(" + n.code.String() + ")"
		}
	}
	return s
}

// Then appends next to the chain and returns the head, so layouts read
// Mod(hid.KeyLeftCtrl).Then(Key(hid.KeyRight)).
func (a *Action) Then(next *Action) *Action {
	tail := a
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = next
	return a
}

// Executor owns the runtime state actions mutate: the HID sink, the
// outstanding temporary modifiers, and the per-button Stop-debt table.
// It must only be driven from the engine dispatcher goroutine.
type Executor struct {
	kb     hid.Keyboard
	log    *slog.Logger
	temp   []hid.Code
	active [chord.NumButtons]*Action
}

// NewExecutor returns an Executor emitting into kb.
func NewExecutor(kb hid.Keyboard, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{kb: kb, log: log}
}

// Start runs the chain's Start pass, head to tail.
func (e *Executor) Start(a *Action) {
	for ; a != nil; a = a.next {
		e.start(a)
	}
}

// Stop runs the chain's Stop pass, tail to head.
func (e *Executor) Stop(a *Action) {
	if a == nil {
		return
	}
	e.Stop(a.next)
	e.stop(a)
}

// Execute starts then immediately stops the chain.
func (e *Executor) Execute(a *Action) {
	e.Start(a)
	e.Stop(a)
}

func (e *Executor) start(a *Action) {
	switch a.kind {
	case kindKey:
		e.log.Debug("pressing key", "key", a.code)
		e.kb.Press(a.code)
	case kindTempMod:
		for i, mod := range e.temp {
			if mod == a.code {
				e.log.Debug("releasing modifier", "mod", a.code, "action", "toggle")
				e.kb.Release(a.code)
				e.temp = append(e.temp[:i], e.temp[i+1:]...)
				return
			}
		}
		e.log.Debug("pressing modifier", "mod", a.code, "action", "temporary")
		e.kb.Press(a.code)
		e.temp = append(e.temp, a.code)
	case kindHoldMod:
		if e.active[a.anchor] != nil {
			e.log.Debug("keeping modifier", "mod", a.code, "anchor", a.anchor)
			return
		}
		e.log.Debug("pressing modifier", "mod", a.code, "anchor", a.anchor)
		e.kb.Press(a.code)
		e.active[a.anchor] = a.release
	case kindRelease:
	}
}

func (e *Executor) stop(a *Action) {
	switch a.kind {
	case kindKey:
		e.log.Debug("releasing key", "key", a.code)
		e.kb.Release(a.code)
		e.ReleaseTempModifiers()
	case kindRelease:
		e.log.Debug("releasing modifier", "mod", a.code, "action", "hold ended")
		e.kb.Release(a.code)
	case kindTempMod, kindHoldMod:
	}
}

// ReleaseTempModifiers releases and forgets every outstanding
// temporary modifier.
func (e *Executor) ReleaseTempModifiers() {
	for _, mod := range e.temp {
		e.log.Debug("releasing modifier", "mod", mod, "action", "sweep")
		e.kb.Release(mod)
	}
	e.temp = e.temp[:0]
}

// Active returns the action whose Stop is owed when button b is
// released, or nil.
func (e *Executor) Active(b chord.Button) *Action {
	return e.active[b]
}

// SetActive records a Stop debt for button b.
func (e *Executor) SetActive(b chord.Button, a *Action) {
	e.active[b] = a
}

// StopActive stops and clears button b's debt. It reports whether a
// debt was present.
func (e *Executor) StopActive(b chord.Button) bool {
	a := e.active[b]
	if a == nil {
		return false
	}
	e.active[b] = nil
	e.Stop(a)
	return true
}
