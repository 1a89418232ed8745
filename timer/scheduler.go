package timer

//go:generate go tool mockgen -destination=../internal/testutil/schedmock/scheduler.go -package=schedmock . Scheduler

import (
	"time"

	"github.com/ghettovoice/countdown/internal/timeutil"
)

// Scheduler registers periodic callbacks.
//
// Schedule must invoke fn repeatedly at approximately interval spacing until fn
// returns false. The execution context of fn is up to the implementation, but
// invocations of the same fn must not overlap. Schedule must not invoke fn synchronously.
type Scheduler interface {
	Schedule(interval time.Duration, fn func() bool)
}

// SchedulerFunc is an adapter to allow the use of ordinary functions as [Scheduler].
type SchedulerFunc func(interval time.Duration, fn func() bool)

// Schedule calls f(interval, fn).
func (f SchedulerFunc) Schedule(interval time.Duration, fn func() bool) { f(interval, fn) }

// RealTimeScheduler invokes callbacks on wall-clock time using [time.AfterFunc].
// The next invocation is armed after the previous one returns, so ticks drift by
// the time spent in the callback.
type RealTimeScheduler struct{}

// Schedule implements [Scheduler].
func (RealTimeScheduler) Schedule(interval time.Duration, fn func() bool) {
	timeutil.Repeat(interval, fn)
}
