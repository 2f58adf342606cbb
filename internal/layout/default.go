package layout

import (
	"fmt"

	"keyer/internal/action"
	"keyer/internal/chord"
	"keyer/internal/hid"
)

// Char returns the action that types one ASCII byte, synthesizing a
// temporary shift for characters that need it. It panics on bytes with
// no HID mapping; the bootstrap layout only contains mapped bytes.
func Char(b byte) *action.Action {
	code, shift, ok := hid.FromByte(b)
	if !ok {
		panic(fmt.Sprintf("layout: no HID mapping for byte %q", b))
	}
	if shift {
		return action.Mod(hid.KeyLeftShift).Then(action.Key(code))
	}
	return action.Key(code)
}

func (l *Layer) bind(tuple string, a *action.Action) {
	c, err := chord.Parse(tuple)
	if err != nil {
		panic(fmt.Sprintf("layout: %v", err))
	}
	if err := l.Bind(c, a); err != nil {
		panic(fmt.Sprintf("layout: %v", err))
	}
}

// Default builds the reference "Fingerwalker" layout (generation 21303)
// and the global arpeggio bindings, then synthesizes the shift row
// anchored on the little finger's button.
func Default() (*Layer, *Arpeggios) {
	arps := &Arpeggios{}

	// Thumb-led arpeggios toggle a temporary modifier; the reverse
	// order taps the modifier key itself.
	arps.Bind(chord.Thumb1, chord.Index3, action.Mod(hid.KeyRightCtrl))
	arps.Bind(chord.Index3, chord.Thumb1, action.Key(hid.KeyRightCtrl))
	arps.Bind(chord.Thumb1, chord.Index7, action.Mod(hid.KeyLeftCtrl))
	arps.Bind(chord.Index7, chord.Thumb1, action.Key(hid.KeyLeftCtrl))

	arps.Bind(chord.Thumb1, chord.Middle4, action.Mod(hid.KeyRightAlt))
	arps.Bind(chord.Middle4, chord.Thumb1, action.Key(hid.KeyRightAlt))
	arps.Bind(chord.Thumb1, chord.Middle8, action.Mod(hid.KeyLeftAlt))
	arps.Bind(chord.Middle8, chord.Thumb1, action.Key(hid.KeyLeftAlt))

	arps.Bind(chord.Thumb1, chord.Ring5, action.Mod(hid.KeyRightGUI))
	arps.Bind(chord.Ring5, chord.Thumb1, action.Key(hid.KeyRightGUI))
	arps.Bind(chord.Thumb1, chord.Ring9, action.Mod(hid.KeyLeftGUI))
	arps.Bind(chord.Ring9, chord.Thumb1, action.Key(hid.KeyLeftGUI))

	l := &Layer{}

	// Thumb layer 1
	l.bind("10000", action.Key(hid.KeyBackspace))
	l.bind("10001", action.Key(hid.KeyDelete))

	// Thumb layer 2
	l.bind("20000", Char(' '))
	l.bind("21000", Char('\n'))
	l.bind("22000", Char('\t'))
	l.bind("21001", action.Key(hid.KeyEsc))

	// Thumb layer 3 - special keys and navigation
	l.bind("30000", action.Mod(hid.KeyLeftCtrl))
	l.bind("30110", action.Key(hid.KeyRight))
	l.bind("30120", action.Key(hid.KeyDown))
	l.bind("30210", action.Mod(hid.KeyLeftCtrl).Then(action.Key(hid.KeyRight)))
	l.bind("30220", action.Key(hid.KeyPageDown))
	l.bind("31000", action.Mod(hid.KeyRightGUI).Then(action.Key(hid.KeyEnter)))
	l.bind("31010", action.Key(hid.KeyLeft))
	l.bind("31020", action.Key(hid.KeyUp))
	l.bind("31210", action.Key(hid.KeyHome))
	l.bind("32000", action.Hold(chord.Thumb2, hid.KeyLeftAlt).Then(action.Key(hid.KeyTab)))
	l.bind("32010", action.Mod(hid.KeyLeftCtrl).Then(action.Key(hid.KeyLeft)))
	l.bind("32020", action.Key(hid.KeyPageUp))
	l.bind("32110", action.Key(hid.KeyEnd))

	l.bind("31110", Char('\''))
	l.bind("01200", Char(','))
	l.bind("01000", Char('-'))
	l.bind("30010", Char('.'))
	l.bind("10110", Char('/'))
	l.bind("00210", Char('0'))
	l.bind("30200", Char('1'))
	l.bind("10200", Char('2'))
	l.bind("21210", Char('3'))
	l.bind("11200", Char('4'))
	l.bind("31200", Char('5'))
	l.bind("10210", Char('6'))
	l.bind("01020", Char('7'))
	l.bind("20210", Char('8'))
	l.bind("21110", Char('9'))
	l.bind("20200", Char(';'))
	l.bind("00010", Char('='))
	l.bind("22100", Char('T'))
	l.bind("00200", Char('['))
	l.bind("00020", Char('\\'))
	l.bind("01210", Char(']'))
	l.bind("12000", Char('`'))
	l.bind("00110", Char('a'))
	l.bind("11100", Char('b'))
	l.bind("10010", Char('c'))
	l.bind("20110", Char('d'))
	l.bind("01010", Char('e'))
	l.bind("11110", Char('f'))
	l.bind("30100", Char('g'))
	l.bind("02010", Char('h'))
	l.bind("21010", Char('i'))
	l.bind("12100", Char('j'))
	l.bind("02000", Char('k'))
	l.bind("21100", Char('l'))
	l.bind("11000", Char('m'))
	l.bind("20100", Char('n'))
	l.bind("01110", Char('o'))
	l.bind("10100", Char('p'))
	l.bind("12010", Char('q'))
	l.bind("01100", Char('r'))
	l.bind("00100", Char('s'))
	l.bind("20010", Char('t'))
	l.bind("11010", Char('u'))
	l.bind("31100", Char('v'))
	l.bind("02100", Char('w'))
	l.bind("21200", Char('x'))
	l.bind("02110", Char('y'))
	l.bind("22010", Char('z'))

	l.SynthesizeShift(chord.Little6, hid.KeyLeftShift)

	return l, arps
}
