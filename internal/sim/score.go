package sim

import (
	"errors"
	"fmt"
	"math"

	"keyer/internal/chord"
)

// Protocol errors of the scorer interface.
var (
	// ErrKeyNotChar reports a key-map key that is not one octet.
	ErrKeyNotChar = errors.New("key map key must be a single character")

	// ErrBadChord reports a chord string the model cannot hold.
	ErrBadChord = errors.New("malformed chord string")
)

// KeyTable is a compiled key map: candidate finger states per octet.
type KeyTable [256][]Fingers

// Compile turns a string-keyed key map into a KeyTable, validating
// every key and chord. Keys must be single octets; chords must be
// digit strings whose positions exist in the model.
func (m *Model) Compile(keyMap map[string][]string) (*KeyTable, error) {
	table := &KeyTable{}
	for key, chords := range keyMap {
		if len(key) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotChar, key)
		}
		idx := key[0]
		for _, s := range chords {
			f, err := m.FromChord(s)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			table[idx] = append(table[idx], f)
		}
	}
	return table, nil
}

// TypeText simulates typing text through the compiled key map and
// returns the total cost in milliseconds. Characters with no candidate
// chord reset the hand to the default pose at no cost. Characters with
// several candidates commit the cheapest transition, the earliest
// candidate winning ties. Each call starts from the default pose; the
// result is independent of prior calls.
func (m *Model) TypeText(text []byte, table *KeyTable) uint64 {
	fingers := NewFingers()
	var total uint64

	for _, c := range text {
		candidates := table[c]
		switch len(candidates) {
		case 0:
			fingers.Reset()
		case 1:
			total += fingers.TransitionTo(candidates[0], m)
		default:
			best := fingers
			bestCost := uint64(math.MaxUint64)
			for _, target := range candidates {
				trial := fingers
				if cost := trial.TransitionTo(target, m); cost < bestCost {
					bestCost = cost
					best = trial
				}
			}
			fingers = best
			total += bestCost
		}
	}
	return total
}

// ScoreLayout is the scorer entry point: it compiles the key map and
// types the text, returning the total effort in milliseconds.
func (m *Model) ScoreLayout(keyMap map[string][]string, text string) (uint64, error) {
	table, err := m.Compile(keyMap)
	if err != nil {
		return 0, err
	}
	return m.TypeText([]byte(text), table), nil
}

// ScoreLayout scores with the reference cost tables.
func ScoreLayout(keyMap map[string][]string, text string) (uint64, error) {
	return DefaultModel().ScoreLayout(keyMap, text)
}

// ModelFromTables overlays configured cost tables on the reference
// model. Empty slices keep the reference values; a press row of fewer
// entries than the finger's column marks the missing rows unreachable.
func ModelFromTables(travel []uint32, press [][]uint32) (*Model, error) {
	m := DefaultModel()
	if len(travel) > 0 {
		if len(travel) != NumFingers {
			return nil, fmt.Errorf("travel table must list %d fingers, got %d", NumFingers, len(travel))
		}
		copy(m.Travel[:], travel)
	}
	if len(press) > 0 {
		if len(press) != NumFingers {
			return nil, fmt.Errorf("press table must list %d fingers, got %d", NumFingers, len(press))
		}
		for f, rows := range press {
			if len(rows) > maxRows {
				return nil, fmt.Errorf("press table for %s lists %d rows, at most %d", chord.Finger(f), len(rows), maxRows)
			}
			var col [maxRows]uint32
			copy(col[:], rows)
			m.Press[f] = col
			m.Rows[f] = uint8(len(rows))
		}
	}
	return m, nil
}
