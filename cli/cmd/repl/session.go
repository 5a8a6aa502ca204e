package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/entap/expr/lang"
	"github.com/entap/expr/log"
)

// action tells the terminal front end what to do after a line ran.
type action int

const (
	actionPrint action = iota
	actionClear
	actionEdit
	actionQuit
)

// result is the outcome of one line.
type result struct {
	text   string
	action action
}

// commands are the names accepted after ':'.
var commands = []string{"clear", "edit", "funcs", "help", "quit", "unset", "vars"}

// answer is the variable holding the last evaluated result.
const answer = "ans"

// Session holds the variables of one REPL run and executes lines against
// them. It has no terminal dependencies.
type Session struct {
	vars   map[string]lang.Value
	funcs  map[string]lang.Func
	host   bool
	strict bool
	logger log.Logger
}

// NewSession returns a session starting with a copy of vars.
func NewSession(opts Options) *Session {
	s := &Session{
		vars:   maps.Clone(opts.Vars),
		funcs:  make(map[string]lang.Func),
		host:   opts.Env,
		strict: opts.Strict,
		logger: opts.Logger,
	}

	if s.vars == nil {
		s.vars = make(map[string]lang.Value)
	}

	for _, name := range lang.MathNames() {
		if f, ok := lang.MathFunc(name); ok {
			s.funcs[name] = f
		}
	}

	if s.host {
		for _, f := range lang.HostFuncs() {
			s.funcs[f.Name] = f
		}
	}

	return s
}

func (s *Session) binding(vars map[string]lang.Value) lang.Binding {
	chain := []lang.Binding{lang.MapBinding(vars)}

	if s.host {
		chain = append(chain, lang.HostBinding())
	}

	if !s.strict {
		chain = append(chain, func(string) (any, error) { return 0.0, nil })
	}

	return lang.Chain(chain...)
}

// Exec runs one line: a ':' command, an assignment "name = expr", or an
// expression whose value is printed and kept in ans.
func (s *Session) Exec(ctx context.Context, line string) (result, error) {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return result{}, nil

	case strings.HasPrefix(line, ":"):
		return s.command(ctx, line[1:])
	}

	if name, src, ok := splitAssignment(line); ok {
		if reserved(name) {
			return result{}, ErrReservedName.With(slog.String("name", name))
		}

		v, err := s.eval(src, s.vars)
		if err != nil {
			return result{}, err
		}

		s.vars[name] = v

		s.logger.TraceContext(ctx, "repl assign",
			slog.String("name", name),
			slog.Any("value", v),
		)

		return result{text: name + " = " + v.GoString()}, nil
	}

	v, err := s.eval(line, s.vars)
	if err != nil {
		return result{}, err
	}

	s.vars[answer] = v

	return result{text: v.String()}, nil
}

func (s *Session) eval(src string, vars map[string]lang.Value) (lang.Value, error) {
	expr, err := lang.Compile(src, lang.WithLogger(s.logger), lang.WithCache(true))
	if err != nil {
		return lang.Null, err
	}

	return expr.Evaluate(s.binding(vars))
}

func (s *Session) command(ctx context.Context, line string) (result, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	s.logger.TraceContext(ctx, "repl command",
		slog.String("command", name),
		slog.String("arg", arg),
	)

	switch name {
	case "h", "help":
		return result{text: helpMessage}, nil
	case "v", "vars":
		return result{text: s.dump()}, nil
	case "f", "funcs":
		return result{text: s.signatures()}, nil
	case "u", "unset":
		if _, ok := s.vars[arg]; !ok {
			return result{}, ErrUnknownVariable.With(slog.String("name", arg))
		}

		delete(s.vars, arg)

		return result{}, nil
	case "c", "clear":
		return result{action: actionClear}, nil
	case "e", "edit":
		return result{action: actionEdit}, nil
	case "q", "quit", "exit":
		return result{action: actionQuit}, nil
	default:
		return result{}, ErrUnknownCommand.With(slog.String("command", name))
	}
}

// splitAssignment recognises "name = expr". Comparisons such as "a == b"
// and "a <= b" are not assignments.
func splitAssignment(line string) (name, src string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 || strings.HasPrefix(line[i+1:], "=") {
		return "", "", false
	}

	name = strings.TrimSpace(line[:i])

	toks, err := lang.Lex(name)
	if err != nil || len(toks) != 2 || toks[0].Kind != lang.TokenIdentifier {
		return "", "", false
	}

	return name, line[i+1:], true
}

// reserved reports whether name belongs to the math library, which is
// consulted before any variable.
func reserved(name string) bool {
	_, isConst := lang.MathConst(name)
	_, isFunc := lang.MathFunc(name)

	return isConst || isFunc
}

// Names returns the completion candidates: math names, function names and
// variables, sorted and without duplicates.
func (s *Session) Names() []string {
	names := lang.MathNames()
	names = slices.AppendSeq(names, maps.Keys(s.funcs))
	names = slices.AppendSeq(names, maps.Keys(s.vars))
	slices.Sort(names)

	return slices.Compact(names)
}

// Func returns the function bound to name.
func (s *Session) Func(name string) (lang.Func, bool) {
	f, ok := s.funcs[name]

	return f, ok
}

// Vars returns the current variables.
func (s *Session) Vars() map[string]lang.Value { return maps.Clone(s.vars) }

// dump renders the variables as assignments, one per line, sorted by
// name. The output can be fed back through Load.
func (s *Session) dump() string {
	var b strings.Builder

	for _, name := range slices.Sorted(maps.Keys(s.vars)) {
		fmt.Fprintf(&b, "%s = %s\n", name, s.vars[name].GoString())
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (s *Session) signatures() string {
	sigs := make([]string, 0, len(s.funcs))
	for _, f := range s.funcs {
		sigs = append(sigs, f.Signature())
	}

	slices.Sort(sigs)

	return strings.Join(sigs, "\n")
}

// Load replaces the variables with the assignments read from r. On error
// the variables are left unchanged.
func (s *Session) Load(r io.Reader) error {
	vars, err := s.parse(r)
	if err != nil {
		return err
	}

	s.vars = vars

	return nil
}

// parse evaluates the assignments in r, one per line, into a new variable
// set. Blank lines and lines starting with '#' are ignored. A line may
// refer to variables assigned above it.
func (s *Session) parse(r io.Reader) (map[string]lang.Value, error) {
	vars := make(map[string]lang.Value)

	sc := bufio.NewScanner(r)

	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, src, ok := splitAssignment(line)
		if !ok || reserved(name) {
			return nil, ErrNotAssignment.With(slog.Int("line", n), slog.String("text", line))
		}

		v, err := s.eval(src, vars)
		if err != nil {
			return nil, ErrNotAssignment.With(slog.Int("line", n)).Wrap(err)
		}

		vars[name] = v
	}

	return vars, sc.Err()
}
