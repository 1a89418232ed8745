package timer

import (
	"log/slog"

	"github.com/ghettovoice/countdown/internal/log"
)

// Options are optional timer settings.
// Nil options are valid and mean defaults for every field.
type Options struct {
	// OnComplete is called once the countdown is exhausted.
	// It is optional in [ResetToOriginal] mode and required in [ResetToZero] mode.
	OnComplete func()
	// ResetMode defines what is restored on reset and completion.
	// Zero value is [ResetToOriginal].
	ResetMode ResetMode
	// Scheduler drives the timer ticks.
	// If nil, the [RealTimeScheduler] is used.
	Scheduler Scheduler
	// Logger is the logger.
	// If nil, the [log.Default] is used.
	Logger *slog.Logger
}

func (o *Options) onComplete() func() {
	if o == nil {
		return nil
	}
	return o.OnComplete
}

func (o *Options) resetMode() ResetMode {
	if o == nil {
		return ResetToOriginal
	}
	return o.ResetMode
}

func (o *Options) scheduler() Scheduler {
	if o == nil || o.Scheduler == nil {
		return RealTimeScheduler{}
	}
	return o.Scheduler
}

func (o *Options) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}
