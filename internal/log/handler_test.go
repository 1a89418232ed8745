package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestFormatterHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("test",
		slog.Any("error", errors.New("boom")),
		slog.Any("interval", 1500*time.Millisecond),
	)

	out := buf.String()
	for _, want := range []string{`"interval":"1.5s"`, `"message":"boom"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output doesn't contain %s:\n%s", want, out)
		}
	}
}
