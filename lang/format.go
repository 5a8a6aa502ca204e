package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
)

// Format renders n as canonical source text. Every binary operation is
// parenthesised, so the output parses back to an identical tree.
func Format(n Node) string {
	var b strings.Builder

	writeNode(&b, n)

	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Constant:
		b.WriteString(n.Value.GoString())

	case *Variable:
		b.WriteString(n.Name)

	case *Unary:
		b.WriteString(n.Op.String())

		paren := false

		switch operand := n.Operand.(type) {
		case *Unary:
			paren = true
		case *Constant:
			// A negative literal is not a primary.
			paren = operand.Value.kind == KindNumber && operand.Value.n < 0
		}

		if paren {
			b.WriteByte('(')
		}

		writeNode(b, n.Operand)

		if paren {
			b.WriteByte(')')
		}

	case *Binary:
		b.WriteByte('(')
		writeNode(b, n.Left)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		writeNode(b, n.Right)
		b.WriteByte(')')

	case *Call:
		b.WriteString(n.Name)
		b.WriteByte('(')

		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			writeNode(b, arg)
		}

		b.WriteByte(')')

	case nil:
		b.WriteString(terminalText)
	}
}

// Quote returns s as a double-quoted string literal using only escapes the
// lexer understands. Bytes that are not valid UTF-8 are written unchanged,
// since the lexer keeps them as they are; an escape would decode to a code
// point instead.
func Quote(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
			i++

			continue
		}

		i += size

		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			switch {
			case r < 0x20 || r == 0x7f:
				b.WriteString(`\x`)
				b.WriteString(fmt.Sprintf("%02x", r))
			default:
				b.WriteRune(r)
			}
		}
	}

	b.WriteByte('"')

	return b.String()
}

// Walk visits n and its descendants depth first, left to right. A false
// return from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch n := n.(type) {
	case *Unary:
		Walk(n.Operand, fn)
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Call:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	}
}

// Names returns the variable and function names referenced by n, in order
// of first appearance.
func Names(n Node) (variables, functions []string) {
	seen := make(map[string]bool)

	Walk(n, func(n Node) bool {
		switch n := n.(type) {
		case *Variable:
			if !seen["v:"+n.Name] {
				seen["v:"+n.Name] = true
				variables = append(variables, n.Name)
			}
		case *Call:
			if !seen["f:"+n.Name] {
				seen["f:"+n.Name] = true
				functions = append(functions, n.Name)
			}
		}

		return true
	})

	return variables, functions
}

// ToMap converts the tree to nested maps suitable for JSON or YAML
// encoding.
func ToMap(n Node) map[string]any {
	switch n := n.(type) {
	case *Constant:
		m := map[string]any{
			"node":   "constant",
			"kind":   n.Value.kind.String(),
			"offset": n.Offset,
		}

		if n.Value.kind == KindNumber && (math.IsNaN(n.Value.n) || math.IsInf(n.Value.n, 0)) {
			m["value"] = formatNumber(n.Value.n)
		} else {
			m["value"] = n.Value.Raw()
		}

		return m

	case *Variable:
		return map[string]any{
			"node":   "variable",
			"name":   n.Name,
			"offset": n.Offset,
		}

	case *Unary:
		return map[string]any{
			"node":    "unary",
			"op":      n.Op.String(),
			"operand": ToMap(n.Operand),
			"offset":  n.Offset,
		}

	case *Binary:
		return map[string]any{
			"node":   "binary",
			"op":     n.Op.String(),
			"left":   ToMap(n.Left),
			"right":  ToMap(n.Right),
			"offset": n.Offset,
		}

	case *Call:
		args := make([]any, len(n.Args))
		for i, arg := range n.Args {
			args[i] = ToMap(arg)
		}

		return map[string]any{
			"node":   "call",
			"name":   n.Name,
			"args":   args,
			"offset": n.Offset,
		}

	default:
		return nil
	}
}

// FormatTree writes n as an indented outline, one node per line.
func FormatTree(_ context.Context, w io.Writer, n Node, indent int) error {
	if indent <= 0 {
		indent = 2
	}

	var b strings.Builder

	writeOutline(&b, n, indent, 0)

	_, err := io.WriteString(w, b.String())

	return err
}

func writeOutline(b *strings.Builder, n Node, indent, depth int) {
	b.WriteString(strings.Repeat(" ", indent*depth))

	switch n := n.(type) {
	case *Constant:
		b.WriteString(n.Value.kind.String())
		b.WriteByte(' ')
		b.WriteString(n.Value.GoString())
		b.WriteByte('\n')

	case *Variable:
		b.WriteString("variable ")
		b.WriteString(n.Name)
		b.WriteByte('\n')

	case *Unary:
		b.WriteString("unary ")
		b.WriteString(n.Op.String())
		b.WriteByte('\n')
		writeOutline(b, n.Operand, indent, depth+1)

	case *Binary:
		b.WriteString("binary ")
		b.WriteString(n.Op.String())
		b.WriteByte('\n')
		writeOutline(b, n.Left, indent, depth+1)
		writeOutline(b, n.Right, indent, depth+1)

	case *Call:
		b.WriteString("call ")
		b.WriteString(n.Name)
		b.WriteString("/")
		b.WriteString(strconv.Itoa(len(n.Args)))
		b.WriteByte('\n')

		for _, arg := range n.Args {
			writeOutline(b, arg, indent, depth+1)
		}
	}
}

// FormatJSON writes the tree as JSON to the writer.
func FormatJSON(_ context.Context, w io.Writer, n Node, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ToMap(n), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToMap(n))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the tree as YAML to the writer.
func FormatYAML(ctx context.Context, w io.Writer, n Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToMap(n), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}
