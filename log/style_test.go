package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestStyledHandler(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"), WithLevel(LevelTrace)).
		With(slog.String("component", "lexer"))

	logger.Trace("scanned",
		slog.Int("tokens", 4),
		slog.Group("span", slog.Int("start", 0), slog.Int("end", 7)),
		slog.Duration("took", time.Millisecond),
		slog.Any("error", errors.New("none")),
	)

	// The buffer is not a terminal, so no escape sequences are written.
	want := "TRACE scanned component=lexer tokens=4 span.start=0 span.end=7 took=1ms error=none\n"
	if got := buf.String(); got != want {
		t.Errorf("styled output\n got %q\nwant %q", got, want)
	}
}

func TestStyledHandler_Groups(t *testing.T) {
	var buf bytes.Buffer

	h := newStyledHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.New(h).WithGroup("req").With(slog.String("id", "7")).Warn("slow", slog.Int("ms", 900))

	out := buf.String()
	if !strings.Contains(out, "req.id=7") || !strings.Contains(out, "req.ms=900") {
		t.Errorf("output = %q", out)
	}

	if !strings.Contains(out, "WARN  slow") {
		t.Errorf("level missing from %q", out)
	}
}

func TestStyledHandler_Enabled(t *testing.T) {
	h := newStyledHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(t.Context(), slog.LevelInfo) || !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("level filtering is wrong")
	}
}
