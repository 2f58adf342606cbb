// Package chord defines the data model shared by the input engine and
// the layout scorer: fingers, physical buttons, and the finger-position
// tuples ("chords") that bind to actions.
//
// The reference hand has ten buttons arranged in finger columns:
//   - thumb: three buttons (positions 1, 2, 3)
//   - index, middle, ring: two buttons each (positions 1, 2)
//   - little: one button (position 1)
//
// Position 0 always means "this finger is not part of the chord".
package chord

import (
	"errors"
	"fmt"
)

// Finger identifies one of the five fingers, thumb first.
type Finger uint8

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Little

	NumFingers = 5
)

var fingerNames = [NumFingers]string{"thumb", "index", "middle", "ring", "little"}

func (f Finger) String() string {
	if int(f) < len(fingerNames) {
		return fingerNames[f]
	}
	return fmt.Sprintf("finger(%d)", uint8(f))
}

// maxPosition holds the highest chord position each finger can take.
var maxPosition = [NumFingers]uint8{3, 2, 2, 2, 1}

// MaxPosition returns the highest position finger f can contribute to a
// chord. Positions run 1..MaxPosition; 0 means not pressed.
func MaxPosition(f Finger) uint8 {
	return maxPosition[f]
}

// Button identifies one of the ten mechanical switches. The numbering
// matches the reference hardware wiring.
type Button uint8

const (
	Thumb0 Button = iota
	Thumb1
	Thumb2
	Index3
	Middle4
	Ring5
	Little6
	Index7
	Middle8
	Ring9

	NumButtons = 10
)

var buttonNames = [NumButtons]string{
	"THUMB_0", "THUMB_1", "THUMB_2", "INDEX_3", "MIDDLE_4",
	"RING_5", "LITTLE_6", "INDEX_7", "MIDDLE_8", "RING_9",
}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("BUTTON_%d", uint8(b))
}

// buttonFinger maps each button to its owning finger.
var buttonFinger = [NumButtons]Finger{
	Thumb0:  Thumb,
	Thumb1:  Thumb,
	Thumb2:  Thumb,
	Index3:  Index,
	Middle4: Middle,
	Ring5:   Ring,
	Little6: Little,
	Index7:  Index,
	Middle8: Middle,
	Ring9:   Ring,
}

// buttonPosition maps each button to the chord position it produces
// when pressed.
var buttonPosition = [NumButtons]uint8{
	Thumb0:  1,
	Thumb1:  2,
	Thumb2:  3,
	Index3:  1,
	Middle4: 1,
	Ring5:   1,
	Little6: 1,
	Index7:  2,
	Middle8: 2,
	Ring9:   2,
}

// Finger returns the finger that owns button b.
func (b Button) Finger() Finger {
	return buttonFinger[b]
}

// Position returns the chord position button b produces when pressed.
func (b Button) Position() uint8 {
	return buttonPosition[b]
}

// ButtonAt returns the button owned by finger f at position pos.
// ok is false when no such button exists.
func ButtonAt(f Finger, pos uint8) (Button, bool) {
	for b := Button(0); b < NumButtons; b++ {
		if buttonFinger[b] == f && buttonPosition[b] == pos {
			return b, true
		}
	}
	return 0, false
}

// Chord is a finger-position tuple, thumb first. The zero value is not
// a valid binding target but is a valid (empty) press state.
type Chord [NumFingers]uint8

// IsZero reports whether no finger contributes to the chord.
func (c Chord) IsZero() bool {
	return c == Chord{}
}

// String renders the chord in the digit-string form used by layout
// files and the scorer, always five digits, e.g. "21000".
func (c Chord) String() string {
	var buf [NumFingers]byte
	for i, pos := range c {
		buf[i] = '0' + pos
	}
	return string(buf[:])
}

// ErrChordSyntax is returned by Parse for strings that are not digit
// strings of at most NumFingers characters.
var ErrChordSyntax = errors.New("chord must be a string of up to five digits")

// ErrChordRange is returned by Parse when a digit exceeds the owning
// finger's highest position.
var ErrChordRange = errors.New("chord position out of range for finger")

// Parse converts a digit string such as "2100" into a Chord. The first
// digit is the thumb. Positions beyond the string length are implicitly
// zero, so "21" and "21000" are the same chord. "0000" parses to the
// zero chord.
func Parse(s string) (Chord, error) {
	var c Chord
	if s == "" || len(s) > NumFingers {
		return c, fmt.Errorf("%w: %q", ErrChordSyntax, s)
	}
	for i := 0; i < len(s); i++ {
		d := s[i]
		if d < '0' || d > '9' {
			return Chord{}, fmt.Errorf("%w: %q", ErrChordSyntax, s)
		}
		pos := d - '0'
		if pos > maxPosition[i] {
			return Chord{}, fmt.Errorf("%w: %s position %d in %q", ErrChordRange, Finger(i), pos, s)
		}
		c[i] = pos
	}
	return c, nil
}

// FromButtons folds the per-button press state into the chord it
// currently forms. At most one button per finger may be down; when the
// hardware invariant is violated the lowest-numbered button wins.
func FromButtons(down [NumButtons]bool) Chord {
	var c Chord
	for b := Button(0); b < NumButtons; b++ {
		if down[b] && c[buttonFinger[b]] == 0 {
			c[buttonFinger[b]] = buttonPosition[b]
		}
	}
	return c
}
