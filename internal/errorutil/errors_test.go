package errorutil_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/countdown/internal/errorutil"
)

func TestNewInvalidArgumentError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []any
		wantMsg string
	}{
		{"no args", nil, "invalid argument"},
		{"error", []any{io.EOF}, "invalid argument: EOF"},
		{"string", []any{"bad interval"}, "invalid argument: bad interval"},
		{"format", []any{"bad interval %v", 5}, "invalid argument: bad interval 5"},
		{"other", []any{42}, "invalid argument"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewInvalidArgumentError(c.args...)
			if diff := cmp.Diff(err, errorutil.ErrInvalidArgument, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("NewInvalidArgumentError(%v) = %v, want %v\ndiff (-got +want):\n%v", c.args, err, errorutil.ErrInvalidArgument, diff)
			}
			if got := err.Error(); got != c.wantMsg {
				t.Errorf("NewInvalidArgumentError(%v).Error() = %q, want %q", c.args, got, c.wantMsg)
			}
		})
	}

	t.Run("already wrapped", func(t *testing.T) {
		t.Parallel()

		inner := errorutil.NewInvalidArgumentError("x")
		if got := errorutil.NewInvalidArgumentError(inner); got != inner { //nolint:errorlint
			t.Errorf("NewInvalidArgumentError(wrapped) = %v, want same error", got)
		}
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	if err := errorutil.Recover(func() {}); err != nil {
		t.Errorf("Recover(noop) = %v, want nil", err)
	}

	err := errorutil.Recover(func() { panic("boom") })
	if !errors.Is(err, errorutil.ErrPanic) {
		t.Errorf("Recover(panic string) = %v, want %v", err, errorutil.ErrPanic)
	}
	if got, want := err.Error(), "panic recovered: boom"; got != want {
		t.Errorf("Recover(panic string).Error() = %q, want %q", got, want)
	}

	err = errorutil.Recover(func() { panic(io.ErrUnexpectedEOF) })
	if !errors.Is(err, errorutil.ErrPanic) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Recover(panic error) = %v, want wrapped %v", err, io.ErrUnexpectedEOF)
	}
}

func TestJoinPrefix(t *testing.T) {
	t.Parallel()

	if err := errorutil.JoinPrefix("failed", nil, nil); err != nil {
		t.Errorf("JoinPrefix(nil, nil) = %v, want nil", err)
	}
	if err := errorutil.JoinPrefix("failed", nil, io.EOF); !errors.Is(err, io.EOF) {
		t.Errorf("JoinPrefix(nil, EOF) = %v, want %v", err, io.EOF)
	}

	err := errorutil.JoinPrefix("failed:", io.EOF, nil, io.ErrClosedPipe)
	if !errors.Is(err, io.EOF) || !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("JoinPrefix() = %v, want both errors wrapped", err)
	}
	want := "failed:\n  - EOF\n  - io: read/write on closed pipe"
	if got := err.Error(); got != want {
		t.Errorf("JoinPrefix().Error() = %q, want %q", got, want)
	}

	err = errorutil.JoinPrefix("failed:", io.EOF)
	if got, want := err.Error(), "failed: EOF"; got != want {
		t.Errorf("JoinPrefix(one).Error() = %q, want %q", got, want)
	}

	nested := errorutil.JoinPrefix("outer", errorutil.JoinPrefix("inner", io.EOF, io.EOF), errors.New("a\nb"))
	if got := nested.Error(); !strings.HasPrefix(got, "outer\n") ||
		!strings.Contains(got, "  - inner\n    - EOF") || !strings.Contains(got, "a\n    b") {
		t.Errorf("nested JoinPrefix().Error() = %q", got)
	}
}
