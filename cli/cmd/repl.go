package cmd

import (
	"context"
	"path/filepath"

	"github.com/entap/expr/cli/cmd/repl"
	"github.com/entap/expr/log"
)

// Repl starts the interactive session.
type Repl struct {
	bindings `embed:""`

	NoHistory bool `help:"Do not read or write the history file."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	vars, err := r.variables(ctx)
	if err != nil {
		return err
	}

	opts := repl.Options{
		Vars:   vars,
		Env:    r.Env,
		Strict: r.Strict,
		Logger: log.Default(),
	}

	if ktx := kongContextFrom(ctx); ktx != nil && !r.NoHistory {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			opts.HistoryPath = filepath.Join(dir, repl.BaseHistory)
		}
	}

	return repl.Run(ctx, opts)
}
