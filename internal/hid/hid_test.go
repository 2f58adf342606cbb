package hid

import (
	"bytes"
	"testing"
)

func TestFromByteLetters(t *testing.T) {
	code, shift, ok := FromByte('a')
	if !ok || shift || code != KeyA {
		t.Errorf("FromByte('a') = %v, %v, %v", code, shift, ok)
	}
	code, shift, ok = FromByte('T')
	if !ok || !shift || code != KeyT {
		t.Errorf("FromByte('T') = %v, %v, %v", code, shift, ok)
	}
}

func TestFromByteDigitsAndPunctuation(t *testing.T) {
	cases := []struct {
		b     byte
		code  Code
		shift bool
	}{
		{'1', Key1, false},
		{'0', Key0, false},
		{'!', Key1, true},
		{')', Key0, true},
		{' ', KeySpace, false},
		{'\n', KeyEnter, false},
		{'\t', KeyTab, false},
		{';', KeySemicolon, false},
		{':', KeySemicolon, true},
		{'\\', KeyBackslash, false},
	}
	for _, tc := range cases {
		code, shift, ok := FromByte(tc.b)
		if !ok || code != tc.code || shift != tc.shift {
			t.Errorf("FromByte(%q) = %v, %v, %v; want %v, %v", tc.b, code, shift, ok, tc.code, tc.shift)
		}
	}
}

func TestFromByteUnknown(t *testing.T) {
	if _, _, ok := FromByte(0x07); ok {
		t.Error("control byte should have no mapping")
	}
}

func TestModifierBits(t *testing.T) {
	if !KeyLeftShift.IsModifier() || KeyA.IsModifier() {
		t.Error("modifier detection wrong")
	}
	if KeyLeftCtrl.ModifierBit() != 0 || KeyRightGUI.ModifierBit() != 7 {
		t.Error("modifier bit positions wrong")
	}
}

func TestRecorderDown(t *testing.T) {
	r := NewRecorder()
	r.Press(KeyLeftShift)
	r.Press(KeyA)
	r.Release(KeyA)
	down := r.Down()
	if len(down) != 1 || down[0] != KeyLeftShift {
		t.Errorf("Down() = %v, want [ShiftL]", down)
	}
	r.Release(KeyLeftShift)
	if len(r.Down()) != 0 {
		t.Errorf("Down() = %v, want empty", r.Down())
	}
}

func TestReportRollover(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf)
	keys := []Code{KeyA, KeyB, KeyC, KeyD, KeyE, KeyF}
	for _, k := range keys {
		r.Press(k)
	}
	buf.Reset()
	r.Press(KeyG) // seventh key is dropped, no report written
	if buf.Len() != 0 {
		t.Errorf("rollover press wrote %d bytes", buf.Len())
	}
	r.Release(KeyA)
	report := buf.Bytes()
	if len(report) != 8 {
		t.Fatalf("report length %d", len(report))
	}
	for _, b := range report[2:] {
		if Code(b) == KeyA {
			t.Error("released key still in report")
		}
	}
}

func TestReportModifiers(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf)
	r.Press(KeyLeftShift)
	report := buf.Bytes()
	if len(report) != 8 || report[0] != 1<<KeyLeftShift.ModifierBit() {
		t.Fatalf("modifier report = %v", report)
	}
	buf.Reset()
	r.Release(KeyLeftShift)
	if report := buf.Bytes(); report[0] != 0 {
		t.Errorf("modifier still set: %v", report)
	}
}
