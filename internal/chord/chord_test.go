package chord

import "testing"

func TestButtonOwnership(t *testing.T) {
	cases := []struct {
		button   Button
		finger   Finger
		position uint8
	}{
		{Thumb0, Thumb, 1},
		{Thumb1, Thumb, 2},
		{Thumb2, Thumb, 3},
		{Index3, Index, 1},
		{Index7, Index, 2},
		{Middle4, Middle, 1},
		{Middle8, Middle, 2},
		{Ring5, Ring, 1},
		{Ring9, Ring, 2},
		{Little6, Little, 1},
	}
	for _, tc := range cases {
		if got := tc.button.Finger(); got != tc.finger {
			t.Errorf("%s.Finger() = %s, want %s", tc.button, got, tc.finger)
		}
		if got := tc.button.Position(); got != tc.position {
			t.Errorf("%s.Position() = %d, want %d", tc.button, got, tc.position)
		}
		back, ok := ButtonAt(tc.finger, tc.position)
		if !ok || back != tc.button {
			t.Errorf("ButtonAt(%s, %d) = %s, %v", tc.finger, tc.position, back, ok)
		}
	}
}

func TestButtonAtMissing(t *testing.T) {
	if _, ok := ButtonAt(Little, 2); ok {
		t.Error("little finger has no second button")
	}
	if _, ok := ButtonAt(Index, 3); ok {
		t.Error("index finger has no third button")
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("2100")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Chord{2, 1, 0, 0, 0}
	if c != want {
		t.Errorf("Parse(\"2100\") = %v, want %v", c, want)
	}
}

func TestParseShortStringImplicitZero(t *testing.T) {
	short, err := Parse("21")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	long, err := Parse("21000")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if short != long {
		t.Errorf("Parse(\"21\") = %v, Parse(\"21000\") = %v", short, long)
	}
}

func TestParseZeroChord(t *testing.T) {
	c, err := Parse("0000")
	if err != nil {
		t.Fatalf("\"0000\" must parse: %v", err)
	}
	if !c.IsZero() {
		t.Errorf("Parse(\"0000\") = %v, want the zero chord", c)
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"", "210000", "21a0", "4000", "03000", "00002"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"21000", "00110", "32021", "00001"} {
		c, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got := c.String(); got != s {
			t.Errorf("Parse(%q).String() = %q", s, got)
		}
	}
}

func TestFromButtons(t *testing.T) {
	var down [NumButtons]bool
	down[Thumb1] = true
	down[Index3] = true
	down[Little6] = true
	got := FromButtons(down)
	want := Chord{2, 1, 0, 0, 1}
	if got != want {
		t.Errorf("FromButtons = %v, want %v", got, want)
	}
}

func TestFromButtonsEmpty(t *testing.T) {
	var down [NumButtons]bool
	if c := FromButtons(down); !c.IsZero() {
		t.Errorf("FromButtons(no buttons) = %v, want zero", c)
	}
}
