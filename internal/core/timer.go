package core

// Timer is a cancellable countdown measured in ticks. It is owned by the
// game instance that created it, so a torn-down game can never be mutated
// by a stale timer.
type Timer struct {
	remaining int
	armed     bool
}

// Start arms the timer to fire after the given number of ticks.
// A non-positive duration fires on the next Tick.
func (t *Timer) Start(ticks int) {
	t.remaining = max(ticks, 0)
	t.armed = true
}

// Cancel disarms the timer.
func (t *Timer) Cancel() {
	t.remaining = 0
	t.armed = false
}

// Active reports whether the timer is armed.
func (t *Timer) Active() bool {
	return t.armed
}

// Remaining returns the ticks left before the timer fires.
func (t *Timer) Remaining() int {
	return t.remaining
}

// Tick advances the timer by one tick and reports whether it fired.
// A timer fires exactly once per Start.
func (t *Timer) Tick() bool {
	if !t.armed {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.armed = false
		return true
	}
	return false
}
