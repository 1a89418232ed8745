package log_test

import (
	"log/slog"
	"testing"

	"github.com/ghettovoice/countdown/internal/log"
)

func TestDefault(t *testing.T) {
	if got := log.Default(); got != log.Noop {
		t.Errorf("log.Default() = %p, want log.Noop", got)
	}

	log.SetDefault(log.Dev)
	if got := log.Default(); got != log.Dev {
		t.Errorf("log.Default() = %p, want log.Dev", got)
	}

	log.SetDefault(nil)
	if got := log.Default(); got != log.Noop {
		t.Errorf("log.Default() = %p, want log.Noop", got)
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(t.Context(), slog.LevelError) {
		t.Error("log.Noop.Enabled(error) = true, want false")
	}
}
