// Package cli is the command-line interface of the expr calculator.
//
// # Usage
//
//	expr '2 ** 10'                     # eval is the default command
//	expr -D r=2 'PI * r * r'
//	expr plot -x t -y 'sin(t * 2 * PI)' -n 5 -o csv
//	expr fmt -o tree '1 + 2 * 3'
//	expr repl --env
//	expr --log-level=debug init
//
// Expressions may also be read from files named with --source, one per
// line. Blank lines and lines starting with '#' are skipped; '-' reads
// standard input.
//
// # Configuration
//
// Flag defaults are loaded from config.yaml in the user configuration
// directory, under the "config" key. Keys are flag names:
//
//	config:
//	  log-level: debug
//	  log-format: json
//
// The init command writes this file from the flags it was given.
// Command-line flags always take precedence.
//
// # Logging options
//
//   - --log-level: trace, debug, info, warn or error
//   - --log-format: text or json
//   - --log-time-layout: a time package layout name such as RFC3339Nano, or
//     a literal layout
//   - --log-caller, --log-pretty, --log-journal: booleans, negatable with
//     the --no- prefix
//
// # Profiling options
//
// Profiling is available only when built with the pprof tag:
//
//	go build -tags pprof .
//
// It adds --pprof-mode (cpu, heap, allocs, ...) and --pprof-dir, which
// defaults to the pprof directory under the user cache directory.
package cli
