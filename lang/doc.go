// Package lang implements a small embeddable expression language for
// user-supplied formulas.
//
// An expression is compiled once into an immutable tree and evaluated any
// number of times against a [Binding] that resolves names to values or
// functions. Values are dynamically typed scalars: null, boolean, number
// (float64) and string.
//
// # Grammar
//
// Operators from lowest to highest precedence. Every binary level folds
// left, including **, so 2 ** 3 ** 2 is (2 ** 3) ** 2.
//
//	||
//	&&
//	|
//	^
//	&
//	==  !=
//	<   >   <=  >=
//	<<  >>
//	+   -
//	*   /   %
//	**
//	!  ~  +  -     (prefix, at most one per operand)
//	( expr )
//	number | string | name | name ( [expr {, expr}] )
//
// Numbers are decimal (1, 2.5, 6e-3) or hexadecimal (0xff). Strings use
// single or double quotes with backslash escapes (\n, \t, \x41, \u00e9).
//
// # Semantics
//
// + concatenates when either side is a string. Bitwise and shift operators
// work on 32-bit integers. && and || return one of their operands rather
// than a boolean, and always evaluate both. == treats null as equal to
// everything and compares a string with a number numerically.
//
// # Example
//
//	e, err := lang.Compile("lerp(a, b, t) * 2")
//	if err != nil {
//		return err
//	}
//
//	v, err := lang.EvaluateMap(e, map[string]float64{"a": 0, "b": 10, "t": 0.25})
//	// v.AsNumber() == 5
//
// # Names
//
// [Expression.Evaluate] places the math library in front of the caller's
// binding: constants (PI, E, Infinity, NaN, true, false, ...) first, then
// functions (sin, pow, lerp, dist, ...), then the caller. Without a caller
// binding every other name is 0.
package lang
