package timeutil

import "time"

// Repeater invokes a function at a fixed interval on its own goroutine.
// Each invocation is scheduled relative to the end of the previous one,
// no drift compensation is done.
//
// The function alone decides when the repeater finishes, there is no way to stop it
// from outside.
type Repeater struct {
	interval time.Duration
	fn       func() bool
	// done is closed after fn returns false.
	done chan struct{}
}

// Repeat creates a new running [Repeater].
// The first invocation of fn happens after interval.
func Repeat(interval time.Duration, fn func() bool) *Repeater {
	r := &Repeater{
		interval: interval,
		fn:       fn,
		done:     make(chan struct{}),
	}
	time.AfterFunc(r.interval, r.fire)
	return r
}

// Done returns a channel that is closed when the repeater finishes.
// It lets the caller wait for the last invocation, e.g. in tests.
func (r *Repeater) Done() <-chan struct{} { return r.done }

func (r *Repeater) fire() {
	if !r.fn() {
		close(r.done)
		return
	}
	time.AfterFunc(r.interval, r.fire)
}
