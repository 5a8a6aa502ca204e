package lang

import (
	"log/slog"
	"strings"
)

// Func is a callable registered in a binding. Each parameter has a declared
// kind and every argument is coerced to that kind before Fn runs. When
// Variadic is set the last parameter repeats; otherwise the call must
// supply exactly len(Params) arguments.
type Func struct {
	Fn       func(args []Value) (any, error)
	Name     string
	Params   []Kind
	Variadic bool
}

// FuncOf returns a function with the given parameter kinds.
func FuncOf(name string, params []Kind, fn func([]Value) (any, error)) Func {
	return Func{Name: name, Params: params, Fn: fn}
}

// VariadicOf returns a function whose last parameter kind repeats.
func VariadicOf(name string, params []Kind, fn func([]Value) (any, error)) Func {
	return Func{Name: name, Params: params, Fn: fn, Variadic: true}
}

// Func0 adapts a niladic float function.
func Func0(name string, fn func() float64) Func {
	return FuncOf(name, nil, func([]Value) (any, error) {
		return fn(), nil
	})
}

// Func1 adapts a monadic float function.
func Func1(name string, fn func(float64) float64) Func {
	return FuncOf(name, numberParams(1), func(a []Value) (any, error) {
		return fn(a[0].n), nil
	})
}

// Func2 adapts a dyadic float function.
func Func2(name string, fn func(float64, float64) float64) Func {
	return FuncOf(name, numberParams(2), func(a []Value) (any, error) {
		return fn(a[0].n, a[1].n), nil
	})
}

// Func3 adapts a triadic float function.
func Func3(name string, fn func(float64, float64, float64) float64) Func {
	return FuncOf(name, numberParams(3), func(a []Value) (any, error) {
		return fn(a[0].n, a[1].n, a[2].n), nil
	})
}

// Func4 adapts a four-argument float function.
func Func4(
	name string,
	fn func(float64, float64, float64, float64) float64,
) Func {
	return FuncOf(name, numberParams(4), func(a []Value) (any, error) {
		return fn(a[0].n, a[1].n, a[2].n, a[3].n), nil
	})
}

func numberParams(n int) []Kind {
	params := make([]Kind, n)
	for i := range params {
		params[i] = KindNumber
	}

	return params
}

// Arity returns the minimum number of arguments.
func (f Func) Arity() int { return len(f.Params) }

// Signature renders the function as name(kind, ...).
func (f Func) Signature() string {
	var b strings.Builder

	b.WriteString(f.Name)
	b.WriteByte('(')

	for i, k := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}

		if f.Variadic && i == len(f.Params)-1 {
			b.WriteString("...")
		}

		b.WriteString(k.String())
	}

	b.WriteByte(')')

	return b.String()
}

// String implements fmt.Stringer.
func (f Func) String() string { return f.Signature() }

// Call checks the argument count, coerces each argument to its parameter
// kind and invokes the function.
func (f Func) Call(args ...Value) (Value, error) {
	if len(args) < len(f.Params) || (!f.Variadic && len(args) > len(f.Params)) {
		return Null, ErrArity.With(
			slog.String("function", f.Name),
			slog.Int("want", len(f.Params)),
			slog.Int("got", len(args)),
		)
	}

	if f.Fn == nil {
		return Null, ErrNotCallable.With(slog.String("function", f.Name))
	}

	coerced := make([]Value, len(args))

	for i, arg := range args {
		kind := KindValue
		if n := len(f.Params); n > 0 {
			kind = f.Params[min(i, n-1)]
		}

		v, err := arg.Coerce(kind)
		if err != nil {
			return Null, WrapError(err).With(
				slog.String("function", f.Name),
				slog.Int("argument", i),
			)
		}

		coerced[i] = v
	}

	ret, err := f.Fn(coerced)
	if err != nil {
		return Null, ErrCall.Wrap(err).With(slog.String("function", f.Name))
	}

	return MakeValue(ret), nil
}

// asFunc extracts a callable from a binding payload.
func asFunc(x any) (Func, bool) {
	switch f := x.(type) {
	case Func:
		return f, true
	case *Func:
		if f == nil {
			return Func{}, false
		}

		return *f, true
	default:
		return Func{}, false
	}
}
