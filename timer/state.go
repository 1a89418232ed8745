package timer

import (
	"fmt"
	"log/slog"
)

// State is a timer state.
type State int

const (
	// StateStopped is the state of a new or completed timer.
	StateStopped State = iota
	// StateRunning is the state of an actively ticking timer.
	StateRunning
	// StatePaused is the state of a suspended timer which can be resumed.
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) LogValue() slog.Value { return slog.StringValue(s.String()) }

// ResetMode defines what a timer restores on reset and completion.
type ResetMode int

const (
	// ResetToOriginal restores the remaining time to the timer duration.
	ResetToOriginal ResetMode = iota
	// ResetToZero zeroes both the interval and the remaining time.
	// A timer in this mode can only run again after [Timer.SetInterval] and [Timer.SetDuration],
	// [Timer.Start] fails while the interval is zero.
	ResetToZero
)

func (m ResetMode) String() string {
	switch m {
	case ResetToOriginal:
		return "original"
	case ResetToZero:
		return "zero"
	default:
		return fmt.Sprintf("ResetMode(%d)", int(m))
	}
}

const (
	evtStart    = "start"
	evtPause    = "pause"
	evtReset    = "reset"
	evtComplete = "complete"
)
