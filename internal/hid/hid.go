// Package hid defines the output side of the keyboard: the contract the
// input engine drives and the key-code constants it speaks.
//
// The engine never talks to a transport directly. It presses and
// releases individual USB HID usage codes against the Keyboard
// interface; the BLE stack, a uinput virtual keyboard, or a test
// recorder sit behind it. Pairing callbacks arrive through Security.
package hid

// Code is a USB HID keyboard usage value (usage page 0x07). Modifier
// codes occupy 0xE0-0xE7.
type Code uint8

// Keyboard is the transport the engine emits into. Implementations must
// tolerate redundant presses and releases; the engine serializes all
// calls on its dispatcher goroutine.
type Keyboard interface {
	Press(code Code)
	Release(code Code)
	SetBatteryLevel(pct uint8)
	IsConnected() bool
}

// Security receives the pairing callbacks of the wireless link. The
// engine implements it to collect PIN digits from the buttons; the
// transport invokes it from its own goroutine.
type Security interface {
	// RequestPasskey blocks until a 6-digit passkey has been entered on
	// the device or a timeout elapses.
	RequestPasskey() uint32

	// NotifyPasskey reports a passkey displayed by the host.
	NotifyPasskey(passkey uint32)

	// ConfirmPasskey asks whether the displayed passkey matches.
	ConfirmPasskey(passkey uint32) bool

	// AuthenticationComplete reports the outcome of pairing.
	AuthenticationComplete(ok bool, reason uint8)
}

// Op is one recorded press or release.
type Op struct {
	Code    Code
	Press   bool
	Battery uint8 // set on battery ops only
	Kind    OpKind
}

// OpKind distinguishes recorded operations.
type OpKind uint8

const (
	OpKey OpKind = iota
	OpBattery
)

// Recorder is a Keyboard that captures the operation stream. It backs
// the engine, action, and layout tests.
type Recorder struct {
	Ops       []Op
	Connected bool
}

// NewRecorder returns a connected Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Connected: true}
}

func (r *Recorder) Press(code Code) {
	r.Ops = append(r.Ops, Op{Code: code, Press: true})
}

func (r *Recorder) Release(code Code) {
	r.Ops = append(r.Ops, Op{Code: code})
}

func (r *Recorder) SetBatteryLevel(pct uint8) {
	r.Ops = append(r.Ops, Op{Kind: OpBattery, Battery: pct})
}

func (r *Recorder) IsConnected() bool { return r.Connected }

// Keys returns the key operations only, skipping battery updates.
func (r *Recorder) Keys() []Op {
	out := make([]Op, 0, len(r.Ops))
	for _, op := range r.Ops {
		if op.Kind == OpKey {
			out = append(out, op)
		}
	}
	return out
}

// Down returns the set of codes currently held, in press order.
func (r *Recorder) Down() []Code {
	var down []Code
	for _, op := range r.Ops {
		if op.Kind != OpKey {
			continue
		}
		if op.Press {
			down = append(down, op.Code)
			continue
		}
		for i := len(down) - 1; i >= 0; i-- {
			if down[i] == op.Code {
				down = append(down[:i], down[i+1:]...)
				break
			}
		}
	}
	return down
}

// Reset drops all recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
