package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/entap/expr/lang"
)

// Fmt parses an expression and prints its tree without evaluating it.
type Fmt struct {
	Expr     string `arg:"" help:"Expression to format." name:"expr"`
	Format   string `default:"text" enum:"text,tree,json,yaml" help:"Output format: ${enum}."     short:"o"`
	Indent   int    `default:"2"                               help:"Indent width for tree, JSON and YAML output." short:"i"`
	MaxDepth int    `default:"256"                             help:"Maximum nesting depth (0 for unlimited)."`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	expr, err := lang.Compile(f.Expr, compileOptions(lang.WithMaxDepth(f.MaxDepth))...)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	switch f.Format {
	case "tree":
		return lang.FormatTree(ctx, w, expr.Root(), f.Indent)

	case "json":
		if err := lang.FormatJSON(ctx, w, expr.Root(), f.Indent); err != nil {
			return ErrJSONMarshal.With(slog.String("expr", f.Expr)).Wrap(err)
		}

		return nil

	case "yaml":
		if err := lang.FormatYAML(ctx, w, expr.Root(), f.Indent); err != nil {
			return ErrYAMLMarshal.With(slog.String("expr", f.Expr)).Wrap(err)
		}

		return nil

	default:
		_, err := fmt.Fprintln(w, expr)

		return err
	}
}
