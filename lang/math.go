package lang

import (
	"maps"
	"math"
	"slices"
	"sync"
)

// library is the immutable table of built-in constants and functions.
type library struct {
	consts map[string]Value
	funcs  map[string]Func
}

var mathLibrary = sync.OnceValue(func() *library {
	lib := &library{
		consts: map[string]Value{
			"true":     BoolValue(true),
			"false":    BoolValue(false),
			"Epsilon":  NumberValue(math.SmallestNonzeroFloat64),
			"Infinity": NumberValue(math.Inf(1)),
			"NaN":      NumberValue(math.NaN()),
			"E":        NumberValue(math.E),
			"LN10":     NumberValue(math.Ln10),
			"LN2":      NumberValue(math.Ln2),
			"LOG10E":   NumberValue(math.Log10E),
			"LOG2E":    NumberValue(math.Log2E),
			"PI":       NumberValue(math.Pi),
			"SQRT1_2":  NumberValue(math.Sqrt2 / 2),
			"SQRT2":    NumberValue(math.Sqrt2),
			"Rad2Deg":  NumberValue(180 / math.Pi),
			"Deg2Rad":  NumberValue(math.Pi / 180),
		},
		funcs: make(map[string]Func),
	}

	for _, f := range []Func{
		Func1("abs", math.Abs),
		Func1("acos", math.Acos),
		Func1("asin", math.Asin),
		Func1("atan", math.Atan),
		Func2("atan2", math.Atan2),
		Func1("ceil", math.Ceil),
		Func1("cbrt", cbrt),
		Func1("cos", math.Cos),
		Func1("cosh", math.Cosh),
		Func1("exp", math.Exp),
		Func1("floor", math.Floor),
		Func2("hypot", math.Hypot),
		Func2("log", logBase),
		Func1("log10", math.Log10),
		Func1("log2", math.Log2),
		Func2("max", math.Max),
		Func2("min", math.Min),
		Func2("pow", math.Pow),
		Func1("round", math.RoundToEven),
		Func1("sign", sign),
		Func1("sin", math.Sin),
		Func1("sinh", math.Sinh),
		Func1("sqrt", math.Sqrt),
		Func1("tan", math.Tan),
		Func1("tanh", math.Tanh),
		Func1("sq", func(x float64) float64 { return x * x }),
		Func3("constrain", constrain),
		Func2("mag", func(x, y float64) float64 { return math.Sqrt(x*x + y*y) }),
		Func4("dist", func(x1, y1, x2, y2 float64) float64 {
			return math.Hypot(x1-x2, y1-y2)
		}),
		Func3("lerp", func(a, b, t float64) float64 { return a*(1-t) + b*t }),
		Func3("norm", func(x, a, b float64) float64 { return remap(x, a, b, 0, 1) }),
	} {
		lib.funcs[f.Name] = f
	}

	return lib
})

// MathBinding layers the built-in constants and functions in front of next.
// Constants are consulted first, then functions, then next. With a nil next
// every other name resolves to the number 0.
func MathBinding(next Binding) Binding {
	lib := mathLibrary()

	return func(name string) (any, error) {
		if v, ok := lib.consts[name]; ok {
			return v, nil
		}

		if f, ok := lib.funcs[name]; ok {
			return f, nil
		}

		if next == nil {
			return 0.0, nil
		}

		return next(name)
	}
}

// MathConst returns the built-in constant name.
func MathConst(name string) (Value, bool) {
	v, ok := mathLibrary().consts[name]

	return v, ok
}

// MathFunc returns the built-in function name.
func MathFunc(name string) (Func, bool) {
	f, ok := mathLibrary().funcs[name]

	return f, ok
}

// MathNames returns the sorted names of all built-in constants and
// functions.
func MathNames() []string {
	lib := mathLibrary()

	names := slices.Collect(maps.Keys(lib.consts))
	names = slices.AppendSeq(names, maps.Keys(lib.funcs))
	slices.Sort(names)

	return names
}

// cbrt is x**(1/3), so negative inputs yield NaN.
func cbrt(x float64) float64 { return math.Pow(x, 1.0/3.0) }

func logBase(x, base float64) float64 { return math.Log(x) / math.Log(base) }

func sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// constrain checks the lower bound first, so inverted bounds give hi for
// any x above hi.
func constrain(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}

	if x > hi {
		return hi
	}

	return x
}

func remap(x, a, b, c, d float64) float64 {
	if a == b {
		return c
	}

	return (x-a)*(d-c)/(b-a) + c
}
