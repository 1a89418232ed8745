// Package timer provides a countdown timer driven by an injected periodic scheduler.
//
// A [Timer] counts a duration down by a fixed interval. Every tick reports the remaining
// time to a callback, and once the remaining time drops to zero or below the timer is
// reset, moves to [StateStopped] and reports completion. A timer can be paused and
// resumed from where it was paused, or reset to its initial duration.
//
// The timer does not spawn goroutines on its own. Forward progress comes from a
// [Scheduler] which invokes the tick function every interval until it reports false.
// [RealTimeScheduler] is used by default; tests can drive a timer deterministically with
// a manual scheduler from the timertest package.
//
// Basic usage:
//
//	t, err := timer.StartNew(ctx, time.Second, 3*time.Second,
//	    func(remaining time.Duration) { fmt.Println("left:", remaining) },
//	    &timer.Options{OnComplete: func() { fmt.Println("done") }},
//	)
//
// All timer operations are thread-safe. Callbacks are invoked without holding the timer
// lock, so they may call back into the timer.
package timer
