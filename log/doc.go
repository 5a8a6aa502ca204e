// Package log is a small leveled logging layer over [log/slog].
//
// Loggers are configured with functional options when they are made and
// are immutable afterwards:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("StampMilli"))
//
//	logger.Debug("compiled", slog.String("source", src))
//
// Attributes are typed [slog.Attr] values rather than alternating
// key/value arguments.
//
// # Levels
//
// In increasing severity: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Trace sits below slog's debug level and is
// rendered as TRACE.
//
// # Output
//
// [FormatText] output is styled with colors when written to a terminal
// (see [WithPretty]). [FormatJSON] writes one JSON object per line.
// [WithJournal] copies every record to the systemd journal in addition to
// the writer.
//
// # Package logger
//
// The package-level functions ([Info], [Warn], ...) log through a default
// logger writing to standard error. [Config] reconfigures it.
//
// Methods and functions without a context argument use
// [DefaultContextProvider].
package log
