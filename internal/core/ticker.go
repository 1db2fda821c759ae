package core

import "time"

// Ticker paces work at a steady rate, independent of the frame rate.
type Ticker struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewTicker returns a ticker firing hz times per second. Non-positive rates
// default to 10.
func NewTicker(hz int) *Ticker {
	t := &Ticker{}
	t.SetRate(hz)
	return t
}

// SetRate changes the firing rate.
func (t *Ticker) SetRate(hz int) {
	if hz <= 0 {
		hz = 10
	}
	t.step = time.Second / time.Duration(hz)
}

// Due reports whether the ticker fires at now. Missed intervals are not
// replayed: at most one firing is reported per call.
func (t *Ticker) Due(now time.Time) bool {
	if t.last.IsZero() {
		t.last = now
		return true
	}
	t.accumulator += now.Sub(t.last)
	t.last = now
	if t.accumulator < t.step {
		return false
	}
	t.accumulator %= t.step
	return true
}
