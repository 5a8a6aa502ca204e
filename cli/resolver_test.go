package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		flag string
		want any
	}{
		{
			name: "hyphenated",
			doc:  "config:\n  log-level: debug\n",
			flag: "log-level",
			want: "debug",
		},
		{
			name: "underscored",
			doc:  "config:\n  log_format: json\n",
			flag: "log-format",
			want: "json",
		},
		{
			name: "integer",
			doc:  "config:\n  samples: 21\n",
			flag: "samples",
			want: "21",
		},
		{
			name: "float",
			doc:  "config:\n  max: 2.5\n",
			flag: "max",
			want: "2.5",
		},
		{
			name: "bool",
			doc:  "config:\n  log-caller: true\n",
			flag: "log-caller",
			want: true,
		},
		{
			name: "missing key",
			doc:  "config:\n  log-level: debug\n",
			flag: "log-format",
			want: nil,
		},
		{
			name: "other section",
			doc:  "other:\n  log-level: debug\n",
			flag: "log-level",
			want: nil,
		},
		{
			name: "malformed",
			doc:  "config: [\n",
			flag: "log-level",
			want: nil,
		},
		{
			name: "empty",
			doc:  "",
			flag: "log-level",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolve(t.Context(), baseConfig)(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("load: %v", err)
			}

			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := r.Resolve(nil, nil, flag)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_List(t *testing.T) {
	r, err := resolve(t.Context(), baseConfig)(strings.NewReader(
		"config:\n  var:\n    - x=1\n    - n=2\n",
	))
	if err != nil {
		t.Fatal(err)
	}

	got, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "var"}})

	list, ok := got.([]any)
	if !ok || len(list) != 2 || list[0] != "x=1" || list[1] != "n=2" {
		t.Errorf("Resolve(var) = %#v", got)
	}
}

func TestLogConfigScan(t *testing.T) {
	var f logConfig

	f.scan([]string{
		"eval", "--log-level", "debug", "--log-format=json",
		"--no-log-pretty", "--log-caller=true", "--log-journal", "1 + 1",
	})

	if f.Level != "debug" || f.Format != "json" {
		t.Errorf("level/format = %q/%q", f.Level, f.Format)
	}

	if f.Pretty || !f.Caller || !f.Journal {
		t.Errorf("pretty/caller/journal = %v/%v/%v", f.Pretty, f.Caller, f.Journal)
	}

	t.Cleanup(func() {
		var reset logConfig
		reset.scan([]string{"--log-level=info", "--log-format=text", "--log-pretty", "--no-log-caller"})
	})
}
