package engine

import (
	"strconv"
	"time"
)

const (
	passkeyLength  = 6
	defaultPasskey = 123456
)

// passkeyCollector routes button presses into a PIN buffer while the
// transport is pairing. All fields are dispatcher-owned.
type passkeyCollector struct {
	collecting bool
	buf        []byte
	result     chan<- uint32
}

// add appends one PIN digit (the button index) and completes the
// collection once six digits are in.
func (p *passkeyCollector) add(e *Engine, digit byte) {
	p.buf = append(p.buf, '0'+digit)
	e.log.Debug("pin buffer", "digits", len(p.buf), "needed", passkeyLength)
	if len(p.buf) < passkeyLength {
		return
	}
	pk, err := strconv.ParseUint(string(p.buf), 10, 32)
	if err != nil {
		// Cannot happen with digit input; start over.
		p.buf = p.buf[:0]
		return
	}
	p.collecting = false
	if p.result != nil {
		p.result <- uint32(pk)
		p.result = nil
	}
}

// RequestPasskey implements hid.Security: it blocks the transport's
// callback goroutine while the dispatcher keeps pumping GPIO events
// into the PIN buffer. After the timeout a fixed fallback passkey is
// returned, matching the reference firmware.
func (e *Engine) RequestPasskey() uint32 {
	e.log.Info("collecting passkey from buttons", "digits", passkeyLength)
	result := make(chan uint32, 1)
	e.do(func() {
		e.passkey.collecting = true
		e.passkey.buf = e.passkey.buf[:0]
		e.passkey.result = result
	})
	timeout := e.cfg.PasskeyTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	select {
	case pk := <-result:
		e.log.Info("passkey collected")
		return pk
	case <-time.After(timeout):
		e.do(func() {
			e.passkey.collecting = false
			e.passkey.result = nil
		})
		e.log.Warn("passkey collection timed out, using default")
		return defaultPasskey
	}
}

// NotifyPasskey implements hid.Security.
func (e *Engine) NotifyPasskey(passkey uint32) {
	e.log.Info("passkey displayed by host", "passkey", passkey)
}

// ConfirmPasskey implements hid.Security.
func (e *Engine) ConfirmPasskey(passkey uint32) bool {
	e.log.Info("confirming passkey", "passkey", passkey)
	return true
}

// AuthenticationComplete implements hid.Security.
func (e *Engine) AuthenticationComplete(ok bool, reason uint8) {
	if ok {
		e.log.Info("pairing successful")
	} else {
		e.log.Warn("pairing failed", "reason", reason)
	}
}
