package sim

import "testing"

// The transition vectors follow the reference simulator, with the
// forced re-press penalty (2x the cheapest held press) included.

func fromChord(t *testing.T, m *Model, s string) Fingers {
	t.Helper()
	f, err := m.FromChord(s)
	if err != nil {
		t.Fatalf("FromChord(%q): %v", s, err)
	}
	return f
}

func TestDefaultPosition(t *testing.T) {
	f := NewFingers()
	if f.Pressed != 0 {
		t.Errorf("Pressed = %b, want 0", f.Pressed)
	}
	if f.Rows[0] != 1 {
		t.Errorf("thumb row = %d, want 1", f.Rows[0])
	}
	for i := 1; i < NumFingers; i++ {
		if f.Rows[i] != 0 {
			t.Errorf("finger %d row = %d, want 0", i, f.Rows[i])
		}
	}
}

func TestFromChordParsing(t *testing.T) {
	m := DefaultModel()
	f := fromChord(t, m, "1210")
	for i, want := range []bool{true, true, true, false, false} {
		if f.IsPressed(i) != want {
			t.Errorf("finger %d pressed = %v, want %v", i, f.IsPressed(i), want)
		}
	}
	if f.Rows[0] != 0 || f.Rows[1] != 1 || f.Rows[2] != 0 {
		t.Errorf("rows = %v", f.Rows)
	}
}

func TestFromChordErrors(t *testing.T) {
	m := DefaultModel()
	for _, s := range []string{"", "110000", "1a00", "1300", "00002"} {
		if _, err := m.FromChord(s); err == nil {
			t.Errorf("FromChord(%q) succeeded, want error", s)
		}
	}
}

func TestFromChordZeroParses(t *testing.T) {
	m := DefaultModel()
	f := fromChord(t, m, "0000")
	if f.Pressed != 0 {
		t.Errorf("Pressed = %b, want 0", f.Pressed)
	}
}

func transitionCase(t *testing.T, from, to string, want uint64) Fingers {
	t.Helper()
	m := DefaultModel()
	current := fromChord(t, m, from)
	target := fromChord(t, m, to)
	got := current.TransitionTo(target, m)
	if got != want {
		t.Errorf("%s -> %s cost = %d, want %d", from, to, got, want)
	}
	if current.Pressed != target.Pressed {
		t.Errorf("%s -> %s pressed = %b, want %b", from, to, current.Pressed, target.Pressed)
	}
	return current
}

func TestNastyRelease(t *testing.T) {
	// Releasing the index alone cannot finish the chord; the thumb is
	// released and re-pressed: 2*60 penalty + 60 press.
	transitionCase(t, "1100", "1000", 180)
}

func TestFingerMove(t *testing.T) {
	// The thumb's move doubles as the release: 80 travel + 40 press.
	transitionCase(t, "1100", "2100", 120)
}

func TestFingerSwap(t *testing.T) {
	// Rolling: index release overlaps the middle press.
	transitionCase(t, "2100", "2010", 55)
}

func TestFingerAdd(t *testing.T) {
	// No release available: cheapest held finger (thumb, 40) re-pressed
	// with penalty, plus the middle press. 80 + 40 + 55.
	transitionCase(t, "2100", "2110", 175)
}

func TestSimpleMove(t *testing.T) {
	f := transitionCase(t, "2000", "1000", 140)
	if f.Rows[0] != 0 {
		t.Errorf("thumb row = %d, want 0", f.Rows[0])
	}
	if !f.IsPressed(0) {
		t.Error("thumb not pressed")
	}
}

func TestMultipleFingersMoved(t *testing.T) {
	f := transitionCase(t, "1100", "2200", 350)
	if f.Rows[0] != 1 || f.Rows[1] != 1 {
		t.Errorf("rows = %v, want thumb and index on row 1", f.Rows)
	}
}

func TestRePressThumb(t *testing.T) {
	// Identical chord: the cheapest held finger (thumb at row 1, 40)
	// is released and pressed again, with the 2x penalty on top.
	transitionCase(t, "2100", "2100", 120)
}

func TestRePressIndex(t *testing.T) {
	// Held index (50) is cheaper than held ring (60): 2*50 penalty,
	// then thumb 40 + index 50 + middle 55 press.
	transitionCase(t, "0101", "2111", 245)
}

func TestNoFingersInitiallyPressed(t *testing.T) {
	m := DefaultModel()
	current := NewFingers()
	target := fromChord(t, m, "0100")
	if got := current.TransitionTo(target, m); got != 50 {
		t.Errorf("cost = %d, want 50", got)
	}
	if !current.IsPressed(1) {
		t.Error("index not pressed")
	}
}

func TestLongDistanceTravel(t *testing.T) {
	// Linear scaling over two rows: 2*80 + 60.
	f := transitionCase(t, "1000", "3000", 220)
	if f.Rows[0] != 2 {
		t.Errorf("thumb row = %d, want 2", f.Rows[0])
	}
}

func TestMixedScenario(t *testing.T) {
	// Index and middle each travel one row (the index move releases
	// it), the thumb releases for free, then index and middle press.
	f := transitionCase(t, "1200", "0120", 400)
	if f.IsPressed(0) {
		t.Error("thumb still pressed")
	}
	if !f.IsPressed(1) || !f.IsPressed(2) {
		t.Error("index and middle must be pressed")
	}
}

func TestStateConsistency(t *testing.T) {
	m := DefaultModel()
	current := NewFingers()
	target := fromChord(t, m, "3210")
	current.TransitionTo(target, m)

	if current.Pressed != target.Pressed {
		t.Errorf("pressed = %b, want %b", current.Pressed, target.Pressed)
	}
	for i := 0; i < NumFingers; i++ {
		if target.IsPressed(i) && current.Rows[i] != target.Rows[i] {
			t.Errorf("finger %d row = %d, want %d", i, current.Rows[i], target.Rows[i])
		}
	}
}

func TestAllFingersPressedSimultaneously(t *testing.T) {
	m := DefaultModel()
	current := NewFingers()
	target := fromChord(t, m, "2111")

	// Fresh press of four fingers: 40 + 50 + 55 + 60.
	if got := current.TransitionTo(target, m); got != 205 {
		t.Errorf("initial press cost = %d, want 205", got)
	}

	// Repeating the chord re-presses the cheapest finger: 2*40 + 40.
	if got := current.TransitionTo(target, m); got != 120 {
		t.Errorf("re-press cost = %d, want 120", got)
	}
}

func TestZeroTargetReleasesWithoutPenalty(t *testing.T) {
	m := DefaultModel()
	current := fromChord(t, m, "0100")
	target := fromChord(t, m, "0000")
	if got := current.TransitionTo(target, m); got != 0 {
		t.Errorf("cost = %d, want 0", got)
	}
	if current.Pressed != 0 {
		t.Errorf("pressed = %b, want 0", current.Pressed)
	}
}
