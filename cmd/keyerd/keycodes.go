package main

import "keyer/internal/hid"

// linuxKeycodes translates USB HID usage codes to Linux input event
// codes for the virtual-keyboard sink.
var linuxKeycodes = map[hid.Code]int{
	hid.KeyA: 30, hid.KeyB: 48, hid.KeyC: 46, hid.KeyD: 32,
	hid.KeyE: 18, hid.KeyF: 33, hid.KeyG: 34, hid.KeyH: 35,
	hid.KeyI: 23, hid.KeyJ: 36, hid.KeyK: 37, hid.KeyL: 38,
	hid.KeyM: 50, hid.KeyN: 49, hid.KeyO: 24, hid.KeyP: 25,
	hid.KeyQ: 16, hid.KeyR: 19, hid.KeyS: 31, hid.KeyT: 20,
	hid.KeyU: 22, hid.KeyV: 47, hid.KeyW: 17, hid.KeyX: 45,
	hid.KeyY: 21, hid.KeyZ: 44,

	hid.Key1: 2, hid.Key2: 3, hid.Key3: 4, hid.Key4: 5, hid.Key5: 6,
	hid.Key6: 7, hid.Key7: 8, hid.Key8: 9, hid.Key9: 10, hid.Key0: 11,

	hid.KeyEnter:      28,
	hid.KeyEsc:        1,
	hid.KeyBackspace:  14,
	hid.KeyTab:        15,
	hid.KeySpace:      57,
	hid.KeyMinus:      12,
	hid.KeyEqual:      13,
	hid.KeyLeftBrace:  26,
	hid.KeyRightBrace: 27,
	hid.KeyBackslash:  43,
	hid.KeySemicolon:  39,
	hid.KeyApostrophe: 40,
	hid.KeyGrave:      41,
	hid.KeyComma:      51,
	hid.KeyDot:        52,
	hid.KeySlash:      53,
	hid.KeyCapsLock:   58,

	hid.KeyInsert:   110,
	hid.KeyHome:     102,
	hid.KeyPageUp:   104,
	hid.KeyDelete:   111,
	hid.KeyEnd:      107,
	hid.KeyPageDown: 109,
	hid.KeyRight:    106,
	hid.KeyLeft:     105,
	hid.KeyDown:     108,
	hid.KeyUp:       103,

	hid.KeyLeftCtrl:   29,
	hid.KeyLeftShift:  42,
	hid.KeyLeftAlt:    56,
	hid.KeyLeftGUI:    125,
	hid.KeyRightCtrl:  97,
	hid.KeyRightShift: 54,
	hid.KeyRightAlt:   100,
	hid.KeyRightGUI:   126,
}
