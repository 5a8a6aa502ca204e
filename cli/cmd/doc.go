// Package cmd implements the expr subcommands: eval, plot, fmt, repl and
// init.
package cmd

var (
	// CacheIdentifier is the kong variable holding the runtime cache
	// directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the configuration file
	// path. It is also the top-level key of the configuration document.
	ConfigIdentifier = "config"
)
