// Package timeutil provides Repeater, a periodic callback loop built on time.AfterFunc.
//
// A Repeater invokes its function every interval until the function reports false.
// The next invocation is armed only after the previous one returns, so invocations
// of a single repeater never overlap.
//
// Basic usage:
//
//	n := 0
//	r := timeutil.Repeat(time.Second, func() bool {
//	    n++
//	    return n < 3
//	})
//	<-r.Done()
package timeutil
