// Package gpio fixes the wiring between logical buttons and GPIO pins
// and defines the ground-truth read the debouncer depends on.
//
// Buttons are wired active-low with pull-ups: a low pin is a pressed
// button. Real pin drivers live outside this repository; the engine
// only consumes the Reader contract.
package gpio

import (
	"sync"

	"keyer/internal/chord"
)

// Pin is a GPIO pin number.
type Pin uint8

// ButtonPins maps each logical button to its pin on the reference
// hardware.
var ButtonPins = [chord.NumButtons]Pin{
	chord.Thumb0:  2,
	chord.Thumb1:  5,
	chord.Thumb2:  0,
	chord.Index3:  46,
	chord.Middle4: 13,
	chord.Ring5:   35,
	chord.Little6: 37,
	chord.Index7:  38,
	chord.Middle8: 8,
	chord.Ring9:   42,
}

// BatteryPin is the ADC pin the battery voltage divider feeds.
const BatteryPin Pin = 3

// Reader answers the current pressed state of a button, already
// corrected for the active-low wiring.
type Reader interface {
	Pressed(b chord.Button) bool
}

// SimBank is an in-memory Reader for tests and host simulation. It is
// safe to Set from an event-source goroutine while the engine reads.
type SimBank struct {
	mu      sync.RWMutex
	pressed [chord.NumButtons]bool
}

// Set records the pressed state of button b.
func (s *SimBank) Set(b chord.Button, pressed bool) {
	s.mu.Lock()
	s.pressed[b] = pressed
	s.mu.Unlock()
}

// Pressed implements Reader.
func (s *SimBank) Pressed(b chord.Button) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pressed[b]
}
