package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/entap/expr/log"
)

// logFormat applies --log-format to the package logger as soon as kong
// decodes it, so that parse errors are already written in that format.
type logFormat string

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel applies --log-level the same way.
type logLevel string

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${log_level}"  enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"${log_format}" enum:"text,json"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                          help:"Set timestamp format (a time package layout name or a literal layout)."`
	Caller     bool      `help:"Include caller information." negatable:""`
	Pretty     bool      `default:"true" help:"Style text output when writing to a terminal." negatable:""`
	Journal    bool      `help:"Copy log records to the systemd journal." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"log_level":  log.DefaultLevel.String(),
		"log_format": log.DefaultFormat.String(),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies the remaining settings once parsing is complete.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
		log.WithJournal(f.Journal),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
		slog.Bool("journal", f.Journal),
	)
}

// scan applies logger flags found anywhere in args before kong runs. The
// text flags also configure themselves while parsing, but boolean flags
// only take effect here or in start.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg, negated := args[i], false

		name, ok := strings.CutPrefix(arg, "--log-")
		if !ok {
			if name, ok = strings.CutPrefix(arg, "--no-log-"); !ok {
				continue
			}

			negated = true
		}

		name, value, assigned := strings.Cut(name, "=")

		switch name {
		case "level", "format":
			if negated {
				continue
			}

			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				value = args[i+1]
				i++
			}

			if name == "level" {
				_ = f.Level.UnmarshalText([]byte(value))
			} else {
				_ = f.Format.UnmarshalText([]byte(value))
			}

		case "pretty", "caller", "journal":
			enable := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			if negated {
				enable = !enable
			}

			f.toggle(name, enable)
		}
	}
}

func (f *logConfig) toggle(name string, enable bool) {
	switch name {
	case "pretty":
		f.Pretty = enable
		log.Config(log.WithPretty(enable))
	case "caller":
		f.Caller = enable
		log.Config(log.WithCaller(enable))
	case "journal":
		// The journal connection is opened in start.
		f.Journal = enable
	}
}
