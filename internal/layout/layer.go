// Package layout holds the chord tables: the layer mapping finger
// positions to actions, the arpeggio table, the synthesized shift row,
// and the reference layout the device boots with. It also reads the
// character-to-chords key maps the scorer consumes.
package layout

import (
	"fmt"

	"keyer/internal/action"
	"keyer/internal/chord"
	"keyer/internal/hid"
)

// Layer dimensions: thumb 0-3, index/middle/ring 0-2, little 0-1.
const (
	thumbDim  = 4
	fingerDim = 3
	littleDim = 2
)

// Layer is a dense five-dimensional chord table. The zero value is an
// empty layer.
type Layer struct {
	slots [thumbDim][fingerDim][fingerDim][fingerDim][littleDim]*action.Action
}

// At returns the action bound to chord c, or nil. Out-of-range tuples
// resolve to nil.
func (l *Layer) At(c chord.Chord) *action.Action {
	if !inRange(c) {
		return nil
	}
	return l.slots[c[chord.Thumb]][c[chord.Index]][c[chord.Middle]][c[chord.Ring]][c[chord.Little]]
}

// Bind assigns an action to chord c. Binding the zero chord or an
// out-of-range tuple is an error.
func (l *Layer) Bind(c chord.Chord, a *action.Action) error {
	if c.IsZero() {
		return fmt.Errorf("cannot bind the empty chord")
	}
	if !inRange(c) {
		return fmt.Errorf("chord %s out of range", c)
	}
	l.slots[c[chord.Thumb]][c[chord.Index]][c[chord.Middle]][c[chord.Ring]][c[chord.Little]] = a
	return nil
}

func inRange(c chord.Chord) bool {
	return c[chord.Thumb] < thumbDim &&
		c[chord.Index] < fingerDim &&
		c[chord.Middle] < fingerDim &&
		c[chord.Ring] < fingerDim &&
		c[chord.Little] < littleDim
}

// Walk visits every populated slot in tuple order.
func (l *Layer) Walk(fn func(c chord.Chord, a *action.Action)) {
	for t := uint8(0); t < thumbDim; t++ {
		for i := uint8(0); i < fingerDim; i++ {
			for m := uint8(0); m < fingerDim; m++ {
				for r := uint8(0); r < fingerDim; r++ {
					for p := uint8(0); p < littleDim; p++ {
						if a := l.slots[t][i][m][r][p]; a != nil {
							fn(chord.Chord{t, i, m, r, p}, a)
						}
					}
				}
			}
		}
	}
}

// SynthesizeShift derives the shift row: every populated little=0 slot
// with an empty little=1 sibling gets Hold(anchor, shift) chained to
// the base action. Explicit little=1 bindings are left alone.
func (l *Layer) SynthesizeShift(anchor chord.Button, shift hid.Code) {
	for t := uint8(0); t < thumbDim; t++ {
		for i := uint8(0); i < fingerDim; i++ {
			for m := uint8(0); m < fingerDim; m++ {
				for r := uint8(0); r < fingerDim; r++ {
					base := l.slots[t][i][m][r][0]
					if base == nil || l.slots[t][i][m][r][1] != nil {
						continue
					}
					l.slots[t][i][m][r][1] = action.Hold(anchor, shift).Then(base)
				}
			}
		}
	}
}

// UniqueWithin returns the single action compatible with the partial
// press state, or nil when zero or several slots qualify. A finger at
// position 0 is a wildcard over its whole column; a finger already at
// a position constrains the search to that position.
func (l *Layer) UniqueWithin(current chord.Chord) *action.Action {
	var found *action.Action
	for t := uint8(0); t < thumbDim; t++ {
		if p := current[chord.Thumb]; p != 0 && p != t {
			continue
		}
		for i := uint8(0); i < fingerDim; i++ {
			if p := current[chord.Index]; p != 0 && p != i {
				continue
			}
			for m := uint8(0); m < fingerDim; m++ {
				if p := current[chord.Middle]; p != 0 && p != m {
					continue
				}
				for r := uint8(0); r < fingerDim; r++ {
					if p := current[chord.Ring]; p != 0 && p != r {
						continue
					}
					for lt := uint8(0); lt < littleDim; lt++ {
						if p := current[chord.Little]; p != 0 && p != lt {
							continue
						}
						if a := l.slots[t][i][m][r][lt]; a != nil {
							if found != nil {
								return nil
							}
							found = a
						}
					}
				}
			}
		}
	}
	return found
}

// Arpeggios maps ordered button pairs to actions. Only pairs pressed
// in sequence inside the arpeggio timing windows consult this table.
type Arpeggios struct {
	slots [chord.NumButtons][chord.NumButtons]*action.Action
}

// At returns the action for the ordered pair (first, second), or nil.
func (t *Arpeggios) At(first, second chord.Button) *action.Action {
	return t.slots[first][second]
}

// Bind assigns an action to the ordered pair (first, second).
func (t *Arpeggios) Bind(first, second chord.Button, a *action.Action) {
	t.slots[first][second] = a
}
