package usecase

import "time"

// DefaultDebounce is the input-inactivity window before a query is applied.
const DefaultDebounce = 300 * time.Millisecond

// DebounceToken identifies one scheduled settle.
type DebounceToken uint64

// Debouncer coalesces bursts of input into a single settle. Every Touch
// supersedes the previous token, so a timer that fires late for an older
// token is ignored rather than queued. The host owns the actual timer.
//
// A Debouncer belongs to one event loop and is not safe for concurrent use.
type Debouncer struct {
	delay   time.Duration
	latest  DebounceToken
	settled bool
}

// NewDebouncer creates a debouncer; a non-positive delay uses DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, settled: true}
}

// Delay is how long the host should wait before calling Settle.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Touch records new input and returns the token the host must hand back.
func (d *Debouncer) Touch() DebounceToken {
	d.latest++
	d.settled = false
	return d.latest
}

// Settle reports whether tok is still the newest pending token. It returns
// true at most once per token.
func (d *Debouncer) Settle(tok DebounceToken) bool {
	if d.settled || tok != d.latest {
		return false
	}
	d.settled = true
	return true
}

// Cancel drops any pending settle.
func (d *Debouncer) Cancel() {
	d.latest++
	d.settled = true
}

// Pending reports whether a settle is outstanding.
func (d *Debouncer) Pending() bool {
	return !d.settled
}
