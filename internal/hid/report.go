package hid

import "io"

// Report assembles 8-byte boot-keyboard reports from a press/release
// stream and writes one report per change. It implements Keyboard for
// transports that consume raw reports; rollover past six keys drops
// the extra press.
type Report struct {
	w         io.Writer
	keys      []Code
	modifiers uint8
	battery   uint8
}

// NewReport returns a Report writing to w.
func NewReport(w io.Writer) *Report {
	return &Report{w: w, keys: make([]Code, 0, 6)}
}

func (r *Report) write() {
	data := make([]byte, 8)
	data[0] = r.modifiers
	for i, k := range r.keys {
		data[2+i] = byte(k)
	}
	r.w.Write(data)
}

func (r *Report) Press(code Code) {
	if code.IsModifier() {
		r.modifiers |= 1 << code.ModifierBit()
	} else if len(r.keys) < 6 {
		for _, k := range r.keys {
			if k == code {
				return
			}
		}
		r.keys = append(r.keys, code)
	} else {
		return
	}
	r.write()
}

func (r *Report) Release(code Code) {
	if code.IsModifier() {
		r.modifiers &^= 1 << code.ModifierBit()
	} else {
		found := false
		for i, k := range r.keys {
			if k == code {
				r.keys = append(r.keys[:i], r.keys[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return
		}
	}
	r.write()
}

func (r *Report) SetBatteryLevel(pct uint8) { r.battery = pct }

func (r *Report) IsConnected() bool { return true }
