// Package sim implements the typing-cost simulator: a deterministic
// scorer that estimates, in milliseconds, the hand effort of typing a
// reference text with a given character-to-chords mapping.
//
// The model is intentionally lazy: fingers only move when the target
// chord needs them, a move of a pressed finger doubles as its release,
// and a chord that can be entered with a rolling motion (release one
// finger, press another) costs nothing beyond the presses themselves.
// When the previous chord can only be finished by releasing and
// re-pressing a held finger, the cheapest such finger is chosen and a
// double press cost is charged on top, which is what pushes layout
// search toward finger-walking chords.
package sim

import (
	"fmt"
	"math/bits"

	"keyer/internal/chord"
)

// NumFingers is the width of the simulated hand.
const NumFingers = chord.NumFingers

// maxRows is the deepest finger column in the cost tables.
const maxRows = 3

// Model holds the per-finger cost tables. Travel is charged per row of
// movement; Press is indexed by finger and row.
type Model struct {
	Travel [NumFingers]uint32
	Press  [NumFingers][maxRows]uint32
	Rows   [NumFingers]uint8 // buttons in each finger's column
}

// DefaultModel returns the reference cost tables.
func DefaultModel() *Model {
	m := &Model{
		Travel: [NumFingers]uint32{80, 100, 110, 150, 130},
		Press: [NumFingers][maxRows]uint32{
			{60, 40, 60},  // thumb
			{50, 130, 0},  // index
			{55, 140, 0},  // middle
			{60, 150, 0},  // ring
			{70, 0, 0},    // little
		},
	}
	for f := chord.Finger(0); f < NumFingers; f++ {
		m.Rows[f] = chord.MaxPosition(f)
	}
	return m
}

// Fingers is the transient hand state: which fingers are pressed and
// which row each finger hovers over. One value lives per TypeText
// call; it is never shared.
type Fingers struct {
	Pressed uint8
	Rows    [NumFingers]uint8
}

// NewFingers returns the default hand pose: nothing pressed, thumb
// over row 1, every other finger over row 0.
func NewFingers() Fingers {
	var f Fingers
	f.Rows[chord.Thumb] = 1
	return f
}

// Reset returns the hand to the default pose.
func (f *Fingers) Reset() {
	*f = NewFingers()
}

// IsPressed reports whether finger i is down.
func (f *Fingers) IsPressed(i int) bool {
	return f.Pressed&(1<<i) != 0
}

func (f *Fingers) press(i int)   { f.Pressed |= 1 << i }
func (f *Fingers) release(i int) { f.Pressed &^= 1 << i }

// FromChord parses a chord digit string ("2100") into the finger state
// that holds it. Digit k puts the finger on row k-1 pressed; digit 0
// leaves the finger where the default pose rests it. Fingers beyond
// the string length are implicitly 0.
func (m *Model) FromChord(s string) (Fingers, error) {
	f := NewFingers()
	if s == "" || len(s) > NumFingers {
		return f, fmt.Errorf("%w: %q", ErrBadChord, s)
	}
	for i := 0; i < len(s); i++ {
		d := s[i]
		if d < '0' || d > '9' {
			return NewFingers(), fmt.Errorf("%w: %q", ErrBadChord, s)
		}
		if d == '0' {
			continue
		}
		row := d - '1'
		if row >= m.Rows[i] {
			return NewFingers(), fmt.Errorf("%w: %q has no row %d for %s", ErrBadChord, s, row+1, chord.Finger(i))
		}
		f.press(i)
		f.Rows[i] = row
	}
	return f, nil
}

// TransitionTo mutates the hand to produce the target chord and
// returns the cost in milliseconds, including any forced re-press
// penalty.
func (f *Fingers) TransitionTo(target Fingers, m *Model) uint64 {
	var cost uint64
	rePressNeeded := f.Pressed != 0

	// Move fingers lazily: only the ones the target uses.
	toMove := target.Pressed
	for toMove != 0 {
		i := bits.TrailingZeros8(toMove)
		toMove &^= 1 << i
		cur, tgt := f.Rows[i], target.Rows[i]
		if cur == tgt {
			continue
		}
		if f.IsPressed(i) {
			// Moving a pressed finger releases it on the way, which
			// finishes the previous chord for free.
			rePressNeeded = false
			f.release(i)
		}
		f.Rows[i] = tgt
		delta := int(cur) - int(tgt)
		if delta < 0 {
			delta = -delta
		}
		cost += uint64(m.Travel[i]) * uint64(delta)
	}

	simpleRelease := f.Pressed &^ target.Pressed
	if rePressNeeded {
		newPress := target.Pressed &^ f.Pressed
		if simpleRelease != 0 && newPress != 0 {
			// Rolling motion: the release and the new press overlap,
			// nothing extra to pay.
		} else if candidates := f.Pressed & target.Pressed; candidates != 0 {
			// Forced re-press: release the cheapest held finger so it
			// can press again. The doubled cost is the annoyance
			// penalty that makes layouts prefer finger-walking.
			best := bits.TrailingZeros8(candidates)
			bestCost := m.Press[best][f.Rows[best]]
			candidates &^= 1 << best
			for candidates != 0 {
				i := bits.TrailingZeros8(candidates)
				candidates &^= 1 << i
				if c := m.Press[i][f.Rows[i]]; c < bestCost {
					best, bestCost = i, c
				}
			}
			f.release(best)
			cost += uint64(bestCost) * 2
		}
	}

	f.Pressed &^= simpleRelease

	toPress := target.Pressed &^ f.Pressed
	for toPress != 0 {
		i := bits.TrailingZeros8(toPress)
		toPress &^= 1 << i
		f.press(i)
		cost += uint64(m.Press[i][target.Rows[i]])
	}

	return cost
}
