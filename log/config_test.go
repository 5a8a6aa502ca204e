package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" debug ", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"debug+2", Level(-2)},
		{"loud", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"text", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelsAndFormats(t *testing.T) {
	levels := slices.Collect(Levels())
	if want := []string{"trace", "debug", "info", "warn", "error"}; !slices.Equal(levels, want) {
		t.Errorf("Levels = %v, want %v", levels, want)
	}

	formats := slices.Collect(Formats())
	if want := []string{"text", "json"}; !slices.Equal(formats, want) {
		t.Errorf("Formats = %v, want %v", formats, want)
	}

	if s := Level(3).String(); s != "Level(3)" {
		t.Errorf("Level(3) = %q", s)
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := makeConfig(nil,
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
		WithJournal(true),
	)

	if cfg.level != LevelDebug || cfg.format != FormatJSON || !cfg.caller || cfg.pretty || !cfg.journal {
		t.Errorf("config = %+v", cfg)
	}

	reset := apply(cfg, WithDefaults(nil))
	if reset.level != DefaultLevel || reset.journal != DefaultJournal || reset.output == nil {
		t.Errorf("WithDefaults did not reset: %+v", reset)
	}
}

func TestConfig_formatTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-09T14:05:07Z"},
		{"rfc-3339-nano", "2024-03-09T14:05:07.123456789Z"},
		{"Kitchen", "2:05PM"},
		{"ms", "Mar  9 14:05:07.123"},
		{"DateTime", "2024-03-09 14:05:07"},
		{"2006/01/02", "2024/03/09"},
		{"", ""},
		{"none", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
			t.Errorf("layout %q formats %q, want %q", tt.layout, got, tt.want)
		}
	}
}

func TestJournalKey(t *testing.T) {
	tests := map[string]string{
		"source":      "SOURCE",
		"error.msg":   "ERROR_MSG",
		"source_byte": "SOURCE_BYTE",
		"x-9":         "X_9",
	}

	for in, want := range tests {
		if got := journalKey(in); got != want {
			t.Errorf("journalKey(%q) = %q, want %q", in, got, want)
		}
	}
}
