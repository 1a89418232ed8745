package timer

//go:generate go tool errtrace -w .

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/countdown/internal/errorutil"
	"github.com/ghettovoice/countdown/internal/types"
)

// TickFunc is called after every tick with the remaining time.
type TickFunc func(remaining time.Duration)

// TickHandler is a tick listener registered with [Timer.OnTick].
type TickHandler func(ctx context.Context, remaining time.Duration)

// CompleteHandler is a completion listener registered with [Timer.OnComplete].
type CompleteHandler func(ctx context.Context)

// StateHandler is a state listener registered with [Timer.OnStateChanged].
type StateHandler func(ctx context.Context, from, to State)

// Timer is a countdown timer.
// It counts its duration down by the interval on every tick of the [Scheduler].
type Timer struct {
	// mu protects concurrent access to all mutable fields.
	mu        sync.Mutex
	fsm       *stateless.StateMachine
	state     State
	interval  time.Duration
	remaining time.Duration
	original  time.Duration
	// reg is the scheduler registration which drives the timer, nil if none.
	reg *registration
	// pendingReg is a registration created under the lock and not yet passed to the scheduler.
	pendingReg *registration

	resetMode  ResetMode
	sched      Scheduler
	log        *slog.Logger
	onTick     TickFunc
	onComplete func()

	onTickLs     types.CallbackManager[TickHandler]
	onCompleteLs types.CallbackManager[CompleteHandler]
	onStateLs    types.CallbackManager[StateHandler]
}

// registration is a single Scheduler.Schedule call.
// It stays alive until its tick returns false.
type registration struct {
	t        *Timer
	ctx      context.Context //nolint:containedctx
	interval time.Duration
}

func (r *registration) tick() bool { return r.t.tick(r) }

// New creates a new stopped timer.
//
// Interval must be positive, duration must not be negative.
// The tick callback is required. Options are optional and can be nil,
// in which case default options will be used.
func New(interval, duration time.Duration, onTick TickFunc, opts *Options) (*Timer, error) {
	return errtrace.Wrap2(newTimer(interval, duration, StateStopped, onTick, opts))
}

// NewPaused creates a new paused timer.
// The timer starts counting down only after [Timer.Start].
// See [New] for arguments description.
func NewPaused(interval, duration time.Duration, onTick TickFunc, opts *Options) (*Timer, error) {
	return errtrace.Wrap2(newTimer(interval, duration, StatePaused, onTick, opts))
}

// StartNew creates a new timer and starts it immediately.
//
// Context does not affect the timer lifecycle, it is passed to the listeners and the logger.
// See [New] for arguments description.
func StartNew(
	ctx context.Context,
	interval, duration time.Duration,
	onTick TickFunc,
	opts *Options,
) (*Timer, error) {
	t, err := newTimer(interval, duration, StateStopped, onTick, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := t.Start(ctx); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return t, nil
}

func newTimer(
	interval, duration time.Duration,
	start State,
	onTick TickFunc,
	opts *Options,
) (*Timer, error) {
	if onTick == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("tick callback is required"))
	}
	if interval <= 0 {
		return nil, errtrace.Wrap(NewInvalidArgumentError("non-positive interval %v", interval))
	}
	if duration < 0 {
		return nil, errtrace.Wrap(NewInvalidArgumentError("negative duration %v", duration))
	}
	if opts.resetMode() == ResetToZero && opts.onComplete() == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("complete callback is required in %q reset mode", ResetToZero))
	}

	t := &Timer{
		state:      start,
		interval:   interval,
		remaining:  duration,
		original:   duration,
		resetMode:  opts.resetMode(),
		sched:      opts.scheduler(),
		log:        opts.log(),
		onTick:     onTick,
		onComplete: opts.onComplete(),
	}
	t.initFSM()
	return t, nil
}

// initFSM configures the state machine.
// The machine keeps its state in the timer, all firing happens under the timer mutex.
func (t *Timer) initFSM() {
	t.fsm = stateless.NewStateMachineWithExternalStorage(
		func(context.Context) (stateless.State, error) { return t.state, nil },
		func(_ context.Context, s stateless.State) error {
			t.state = s.(State) //nolint:forcetypeassert
			return nil
		},
		stateless.FiringImmediate,
	)

	t.fsm.Configure(StateStopped).
		OnEntry(t.actRestore).
		InternalTransition(evtReset, t.actRestore).
		Permit(evtStart, StateRunning).
		Permit(evtPause, StatePaused)

	t.fsm.Configure(StateRunning).
		OnEntry(t.actRunning).
		OnExit(t.actLeaveRunning).
		Ignore(evtStart).
		Permit(evtPause, StatePaused).
		Permit(evtReset, StateStopped).
		Permit(evtComplete, StateStopped)

	t.fsm.Configure(StatePaused).
		Ignore(evtPause).
		Permit(evtStart, StateRunning).
		Permit(evtReset, StateStopped)

	t.fsm.OnTransitioned(func(ctx context.Context, tr stateless.Transition) {
		t.log.LogAttrs(ctx, slog.LevelDebug, "timer state changed",
			slog.String("timer", t.id()),
			slog.Any("from", tr.Source),
			slog.Any("to", tr.Destination),
			slog.Any("trigger", tr.Trigger),
		)
	})
}

// actRestore restores the countdown according to the reset mode.
// Caller must hold the mutex.
func (t *Timer) actRestore(context.Context, ...any) error {
	if t.resetMode == ResetToZero {
		t.interval = 0
		t.remaining = 0
		return nil
	}
	t.remaining = t.original
	return nil
}

// actRunning creates a new scheduler registration if there is no active one.
// Caller must hold the mutex.
func (t *Timer) actRunning(ctx context.Context, _ ...any) error {
	if t.reg != nil {
		return nil
	}
	t.reg = &registration{
		t:        t,
		ctx:      context.WithoutCancel(ctx),
		interval: t.interval,
	}
	t.pendingReg = t.reg
	return nil
}

// actLeaveRunning detaches the active registration.
// The registration stops itself on the next invocation.
// Caller must hold the mutex.
func (t *Timer) actLeaveRunning(context.Context, ...any) error {
	t.reg = nil
	t.pendingReg = nil
	return nil
}

// Start starts or resumes the countdown.
// A paused timer continues from the remaining time it was paused at.
// Starting a running timer has no effect.
//
// A timer with zero interval, as left by reset in [ResetToZero] mode, can't be started
// until [Timer.SetInterval] is called, [ErrInvalidArgument] is returned.
//
// Context does not affect the timer lifecycle, it is passed to the listeners and the logger.
func (t *Timer) Start(ctx context.Context) error {
	return errtrace.Wrap(t.fire(ctx, evtStart, "timer started"))
}

// Pause suspends the countdown.
// Pausing a paused timer has no effect.
//
// Context does not affect the timer lifecycle, it is passed to the listeners and the logger.
func (t *Timer) Pause(ctx context.Context) error {
	return errtrace.Wrap(t.fire(ctx, evtPause, "timer paused"))
}

// Reset stops the timer and restores the countdown according to the [ResetMode].
//
// Context does not affect the timer lifecycle, it is passed to the listeners and the logger.
func (t *Timer) Reset(ctx context.Context) error {
	return errtrace.Wrap(t.fire(ctx, evtReset, "timer reset"))
}

func (t *Timer) fire(ctx context.Context, evt, msg string) error {
	t.mu.Lock()
	from := t.state
	if evt == evtStart && from != StateRunning && t.interval <= 0 {
		t.mu.Unlock()
		return errtrace.Wrap(NewInvalidArgumentError("start with non-positive interval %v", t.interval))
	}
	err := t.fsm.FireCtx(ctx, evt)
	to := t.state
	reg := t.pendingReg
	t.pendingReg = nil
	t.mu.Unlock()

	if err != nil {
		return errtrace.Wrap(fmt.Errorf("fire %q in state %q: %w", evt, from, err))
	}

	if reg != nil {
		t.sched.Schedule(reg.interval, reg.tick)
	}

	if from != to {
		t.log.LogAttrs(ctx, slog.LevelDebug, msg, slog.Any("timer", t))
		t.notifyStateChanged(ctx, from, to)
	}
	return nil
}

// tick implements the countdown step, the result tells the scheduler whether to continue.
func (t *Timer) tick(reg *registration) bool {
	ctx := reg.ctx

	t.mu.Lock()
	if t.reg != reg || t.state != StateRunning {
		t.mu.Unlock()
		return false
	}

	t.remaining -= t.interval
	if t.remaining <= 0 {
		err := t.fsm.FireCtx(ctx, evtComplete)
		t.reg = nil
		t.mu.Unlock()

		if err != nil {
			t.log.LogAttrs(ctx, slog.LevelError, "failed to complete timer",
				slog.Any("timer", t),
				slog.Any("error", err),
			)
			return false
		}

		t.log.LogAttrs(ctx, slog.LevelDebug, "timer completed", slog.Any("timer", t))
		t.notifyStateChanged(ctx, StateRunning, StateStopped)
		t.notifyComplete(ctx)
		return false
	}

	remaining := t.remaining
	var next *registration
	if t.interval != reg.interval {
		next = &registration{t: t, ctx: ctx, interval: t.interval}
		t.reg = next
	}
	t.mu.Unlock()

	if next != nil {
		t.sched.Schedule(next.interval, next.tick)
		t.log.LogAttrs(ctx, slog.LevelDebug, "timer rescheduled",
			slog.Any("timer", t),
			slog.Duration("old_interval", reg.interval),
		)
	}

	t.notifyTick(ctx, remaining)
	return next == nil
}

// SetInterval replaces the timer interval.
// The new interval is subtracted starting from the next tick,
// the tick cadence follows it after that tick.
func (t *Timer) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return errtrace.Wrap(NewInvalidArgumentError("non-positive interval %v", interval))
	}

	t.mu.Lock()
	t.interval = interval
	t.mu.Unlock()

	t.log.LogAttrs(context.Background(), slog.LevelDebug, "timer interval changed", slog.Any("timer", t))
	return nil
}

// SetDuration replaces the timer duration and the remaining time.
// It rebases a running countdown starting from the next tick.
func (t *Timer) SetDuration(duration time.Duration) error {
	if duration < 0 {
		return errtrace.Wrap(NewInvalidArgumentError("negative duration %v", duration))
	}

	t.mu.Lock()
	t.original = duration
	t.remaining = duration
	t.mu.Unlock()

	t.log.LogAttrs(context.Background(), slog.LevelDebug, "timer duration changed", slog.Any("timer", t))
	return nil
}

// Interval returns the tick interval.
func (t *Timer) Interval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}

// Remaining returns the time left in the current countdown.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Duration returns the duration the countdown is restored to on reset.
func (t *Timer) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.original
}

// State returns the current timer state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ResetMode returns the timer reset mode.
func (t *Timer) ResetMode() ResetMode { return t.resetMode }

// OnTick registers a tick listener.
// Listeners are called after the tick callback in the order they were added.
// The returned function removes the listener.
func (t *Timer) OnTick(fn TickHandler) (remove func()) { return t.onTickLs.Add(fn) }

// OnComplete registers a completion listener.
// Listeners are called after the complete callback in the order they were added.
// The returned function removes the listener.
func (t *Timer) OnComplete(fn CompleteHandler) (remove func()) { return t.onCompleteLs.Add(fn) }

// OnStateChanged registers a state listener.
// Listeners are called after the timer lock is released, so changes made concurrently
// from different goroutines may be reported out of order. [Timer.State] always returns
// the committed state.
// The returned function removes the listener.
func (t *Timer) OnStateChanged(fn StateHandler) (remove func()) { return t.onStateLs.Add(fn) }

func (t *Timer) notifyTick(ctx context.Context, remaining time.Duration) {
	errs := []error{errorutil.Recover(func() { t.onTick(remaining) })}
	for fn := range t.onTickLs.All() {
		errs = append(errs, errorutil.Recover(func() { fn(ctx, remaining) }))
	}
	t.logCallbackErrs(ctx, "tick", errs)
}

func (t *Timer) notifyComplete(ctx context.Context) {
	var errs []error
	if t.onComplete != nil {
		errs = append(errs, errorutil.Recover(t.onComplete))
	}
	for fn := range t.onCompleteLs.All() {
		errs = append(errs, errorutil.Recover(func() { fn(ctx) }))
	}
	t.logCallbackErrs(ctx, "complete", errs)
}

func (t *Timer) notifyStateChanged(ctx context.Context, from, to State) {
	var errs []error
	for fn := range t.onStateLs.All() {
		errs = append(errs, errorutil.Recover(func() { fn(ctx, from, to) }))
	}
	t.logCallbackErrs(ctx, "state", errs)
}

func (t *Timer) logCallbackErrs(ctx context.Context, kind string, errs []error) {
	err := errorutil.JoinPrefix(kind+" callbacks failed:", errs...)
	if err == nil {
		return
	}
	t.log.LogAttrs(ctx, slog.LevelError, "timer callback panicked",
		slog.Any("timer", t),
		slog.String("callback", kind),
		slog.Any("error", err),
	)
}

func (t *Timer) id() string { return fmt.Sprintf("%p", t) }

// LogValue implements [slog.LogValuer].
func (t *Timer) LogValue() slog.Value {
	if t == nil {
		return slog.Value{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return slog.GroupValue(
		slog.String("ptr", t.id()),
		slog.Any("state", t.state),
		slog.Duration("interval", t.interval),
		slog.Duration("remaining", t.remaining),
		slog.Duration("duration", t.original),
	)
}
