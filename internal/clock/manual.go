package clock

import "time"

// Manual is a deterministic Scheduler for tests. Time only moves when
// Advance is called; due timers fire inline, earliest deadline first,
// with the clock set to each timer's deadline while its callback runs.
type Manual struct {
	now    int64 // microseconds
	timers []*manualTimer
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the current simulated time in microseconds.
func (m *Manual) Now() int64 { return m.now }

// Calls returns nil: Manual delivers callbacks inline from Advance.
func (m *Manual) Calls() <-chan func() { return nil }

// OneShot returns a one-shot manual timer.
func (m *Manual) OneShot(name string, fn func()) Timer {
	t := &manualTimer{sched: m, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Periodic returns a periodic manual timer.
func (m *Manual) Periodic(name string, fn func()) Timer {
	t := &manualTimer{sched: m, fn: fn, periodic: true}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose
// deadline falls inside the window. A callback may rearm timers; newly
// due deadlines within the window fire in the same call.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d.Microseconds()
	for {
		var due *manualTimer
		for _, t := range m.timers {
			if !t.active || t.deadline > end {
				continue
			}
			if due == nil || t.deadline < due.deadline {
				due = t
			}
		}
		if due == nil {
			break
		}
		m.now = due.deadline
		if due.periodic {
			due.deadline += due.interval
		} else {
			due.active = false
		}
		due.fn()
	}
	m.now = end
}

type manualTimer struct {
	sched    *Manual
	fn       func()
	periodic bool
	active   bool
	deadline int64
	interval int64
}

func (t *manualTimer) Start(d time.Duration) {
	t.interval = d.Microseconds()
	t.deadline = t.sched.now + t.interval
	t.active = true
}

func (t *manualTimer) Stop() { t.active = false }

func (t *manualTimer) Active() bool { return t.active }
