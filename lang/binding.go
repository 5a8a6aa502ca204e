package lang

import (
	"errors"
	"log/slog"
)

// Binding resolves a name to a host value or a callable [Func] for one
// evaluation. Failing lookups should return an error matching ErrBinding.
type Binding func(name string) (any, error)

// MapBinding adapts a map to a Binding. A name missing from m is an
// ErrBinding error.
func MapBinding[V any](m map[string]V) Binding {
	return func(name string) (any, error) {
		v, ok := m[name]
		if !ok {
			return nil, ErrBinding.With(slog.String("name", name))
		}

		return v, nil
	}
}

// FuncBinding binds each function under its name.
func FuncBinding(funcs ...Func) Binding {
	m := make(map[string]Func, len(funcs))
	for _, f := range funcs {
		m[f.Name] = f
	}

	return MapBinding(m)
}

// Chain returns a Binding that tries each non-nil binding in order and
// resolves a name with the first one that does not report ErrBinding.
func Chain(bindings ...Binding) Binding {
	return func(name string) (any, error) {
		var err error = ErrBinding.With(slog.String("name", name))

		for _, b := range bindings {
			if b == nil {
				continue
			}

			var x any

			x, err = b(name)
			if err == nil || !errors.Is(err, ErrBinding) {
				return x, err
			}
		}

		return nil, err
	}
}
