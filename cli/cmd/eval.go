package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/entap/expr/lang"
	"github.com/entap/expr/log"
	"github.com/entap/expr/pkg"
)

// Eval evaluates each expression and prints one result per line.
//
// Expressions come from the arguments followed by the lines of the
// --source files. A failing expression is reported and the rest are still
// evaluated; the command fails if any of them did.
type Eval struct {
	bindings `embed:""`

	Exprs []string `arg:"" help:"Expressions to evaluate." name:"expr" optional:""`
	As    string   `default:"value" enum:"value,number,bool,string,int" help:"Convert each result to ${enum}." placeholder:"KIND"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exprs := e.Exprs

	if src := sourceFilesFrom(ctx); src != nil {
		lines, err := sourceLines(src)
		if err != nil {
			return err
		}

		exprs = append(exprs[:len(exprs):len(exprs)], lines...)
	}

	if len(exprs) == 0 {
		return ErrNoExpression
	}

	kind, ok := lang.ParseKind(e.As)
	if !ok {
		kind = lang.KindValue
	}

	vars, err := e.variables(ctx)
	if err != nil {
		return err
	}

	b := e.binding(vars)
	w := outputFrom(ctx)

	var errs pkg.Error

	for _, src := range exprs {
		out, err := evalOne(src, kind, b)
		if err != nil {
			log.ErrorContext(ctx, "evaluate", slog.String("expr", src), slog.Any("error", err))

			errs = errs.Wrap(ErrEvaluate.With(slog.String("expr", src)).Wrap(err))

			continue
		}

		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}

	return errs.Err()
}

func evalOne(src string, kind lang.Kind, b lang.Binding) (string, error) {
	expr, err := lang.Compile(src, compileOptions()...)
	if err != nil {
		return "", err
	}

	x, err := expr.EvaluateAs(kind, b)
	if err != nil {
		return "", err
	}

	return lang.MakeValue(x).String(), nil
}
