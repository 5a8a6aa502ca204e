package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/entap/expr/lang"
)

// callSite describes the innermost call whose argument list contains the
// cursor.
type callSite struct {
	name string
	arg  int // 0-based index of the argument under the cursor
}

// detectCall scans backwards from cursor for an unclosed '(' preceded by
// an identifier. Parentheses and commas inside string literals are not
// told apart from real ones; the hint is best effort.
func detectCall(input string, cursor int) (callSite, bool) {
	cursor = min(max(cursor, 0), len(input))

	open, depth := -1, 0

scan:
	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i

				break scan
			}

			depth--
		}
	}

	if open < 0 {
		return callSite{}, false
	}

	start := open
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" || !isIdentStart(name) {
		return callSite{}, false
	}

	arg := 0
	depth = 0

	for i := open + 1; i < cursor; i++ {
		switch input[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return callSite{name: name, arg: arg}, true
}

// renderSignatureHint renders f's signature with the parameter at arg
// highlighted. A variadic last parameter stays highlighted for every
// argument past it.
func renderSignatureHint(f lang.Func, arg int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(f.Name))
	b.WriteString(signatureStyle.Render("("))

	for i, k := range f.Params {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(", "))
		}

		param := k.String()

		variadic := f.Variadic && i == len(f.Params)-1
		if variadic {
			param = "..." + param
		}

		if arg == i || (variadic && arg > i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
