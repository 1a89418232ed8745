// Package timertest provides utilities for testing code that uses timers.
package timertest

import (
	"slices"
	"sync"
	"time"
)

// ManualScheduler is a scheduler driven by hand.
// Registered callbacks fire only on [ManualScheduler.Tick] or [ManualScheduler.Advance],
// always on the calling goroutine.
// The zero value is ready to use.
type ManualScheduler struct {
	mu   sync.Mutex
	now  time.Duration
	regs []*manualReg
}

type manualReg struct {
	interval time.Duration
	fn       func() bool
	next     time.Duration
}

// NewManualScheduler creates a new [ManualScheduler] with the virtual clock at zero.
func NewManualScheduler() *ManualScheduler { return new(ManualScheduler) }

// Schedule records a registration.
// Its first invocation is due one interval after the current virtual time.
func (s *ManualScheduler) Schedule(interval time.Duration, fn func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.regs = append(s.regs, &manualReg{
		interval: interval,
		fn:       fn,
		next:     s.now + interval,
	})
}

// Len returns the number of live registrations.
func (s *ManualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs)
}

// Elapsed returns the virtual time advanced so far.
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Tick invokes every live registration once, ignoring due times and without moving the clock.
// Registrations added by the invoked callbacks are not invoked by this call.
// Returns the number of invocations.
func (s *ManualScheduler) Tick() int {
	s.mu.Lock()
	regs := slices.Clone(s.regs)
	s.mu.Unlock()

	for _, reg := range regs {
		s.invoke(reg)
	}
	return len(regs)
}

// Advance moves the virtual clock by d and invokes registrations as they become due,
// in chronological order. Registrations due at the same time are invoked in the order
// they were scheduled. A registration with non-positive interval is invoked at most once per call.
// Returns the number of invocations.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	var (
		fired int
		once  = make(map[*manualReg]bool)
	)
	for {
		s.mu.Lock()
		var due *manualReg
		for _, reg := range s.regs {
			if reg.next > target || once[reg] {
				continue
			}
			if due == nil || reg.next < due.next {
				due = reg
			}
		}
		if due == nil {
			s.now = target
			s.mu.Unlock()
			return fired
		}
		s.now = max(s.now, due.next)
		if due.interval <= 0 {
			once[due] = true
		}
		s.mu.Unlock()

		s.invoke(due)
		fired++
	}
}

func (s *ManualScheduler) invoke(reg *manualReg) {
	next := reg.fn()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !next {
		s.regs = slices.DeleteFunc(s.regs, func(r *manualReg) bool { return r == reg })
		return
	}
	reg.next += reg.interval
}
