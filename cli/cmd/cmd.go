package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/entap/expr/lang"
	"github.com/entap/expr/log"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

type outputKey struct{}

// WithOutput returns a context whose commands write their results to w
// instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

type (
	sourceFilesKey struct{}
	sourceFiles    struct {
		read     []io.Reader
		hasStdin bool
	}

	// SourceFiles reads the expression files named with --source, in
	// command-line order, followed by standard input if "-" was named.
	SourceFiles interface {
		IsZero() bool
		io.Reader
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.read) == 0 && !s.hasStdin }

// Read implements io.Reader by reading from all source files in order.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	readers := s.read
	if s.hasStdin {
		readers = append(readers[:len(readers):len(readers)], os.Stdin)
	}

	return io.MultiReader(readers...).Read(p)
}

// fileKey identifies a file by device and inode, so the same file named
// twice (through a symlink or a relative path) is read once.
type fileKey struct {
	dev uint64
	ino uint64
}

const stdinSource = "-"

// WithSourceFiles returns a context carrying a [SourceFiles] over sources.
// Duplicate files are dropped and every "-" collapses into one standard
// input reader placed last.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	seen := make(map[fileKey]struct{})

	stdinKey, _ := statKey(os.Stdin.Stat())

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		if r, ok := openUniqueFile(src, seen); ok {
			srcs.read = append(srcs.read, r)
		}
	}

	_, srcs.hasStdin = seen[stdinKey]

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, false
	}

	key, ok := statKey(os.Stat(resolved))
	if !ok {
		return nil, false
	}

	if _, dup := seen[key]; dup {
		return nil, false
	}

	seen[key] = struct{}{}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return f, true
}

func statKey(info os.FileInfo, err error) (fileKey, bool) {
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// sourceLines returns the non-blank lines of r that do not start with '#'.
func sourceLines(r io.Reader) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lines = append(lines, line)
	}

	if err := sc.Err(); err != nil {
		return nil, ErrReadSource.Wrap(err)
	}

	return lines, nil
}

// bindings are the flags shared by commands that evaluate expressions.
type bindings struct {
	Vars   []string `help:"Bind a variable to the value of an expression (name=expr). Repeatable." name:"var"    placeholder:"NAME=EXPR" sep:"none" short:"D"`
	Env    bool     `help:"Enable the host functions env, pathprefix and pathprefixdir."`
	Strict bool     `help:"Fail on unknown names instead of treating them as 0."`
}

// compileOptions attach the default logger, so compile and evaluate events
// appear at trace level, and share parsed trees through the compile cache.
func compileOptions(opts ...lang.Option) []lang.Option {
	return append([]lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithCache(true),
	}, opts...)
}

// zero resolves every name to the number 0.
func zero(string) (any, error) { return 0.0, nil }

// binding resolves vars, then the host functions if enabled, then the zero
// fallback unless strict. The math library always comes first.
func (b bindings) binding(vars map[string]lang.Value) lang.Binding {
	chain := []lang.Binding{lang.MapBinding(vars)}

	if b.Env {
		chain = append(chain, lang.HostBinding())
	}

	if !b.Strict {
		chain = append(chain, zero)
	}

	return lang.Chain(chain...)
}

// variables evaluates each NAME=EXPR in order. Later definitions may refer
// to earlier ones.
func (b bindings) variables(ctx context.Context) (map[string]lang.Value, error) {
	vars := make(map[string]lang.Value, len(b.Vars))

	for _, def := range b.Vars {
		name, src, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)

		if !ok || !isIdentifier(name) {
			return nil, ErrBadVariable.With(slog.String("var", def))
		}

		expr, err := lang.Compile(src, compileOptions()...)
		if err != nil {
			return nil, ErrBadVariable.With(slog.String("var", def)).Wrap(err)
		}

		v, err := expr.Evaluate(b.binding(vars))
		if err != nil {
			return nil, ErrBadVariable.With(slog.String("var", def)).Wrap(err)
		}

		log.TraceContext(ctx, "bound variable",
			slog.String("name", name),
			slog.Any("value", v),
		)

		vars[name] = v
	}

	return vars, nil
}

func isIdentifier(s string) bool {
	toks, err := lang.Lex(s)

	return err == nil && len(toks) == 2 && toks[0].Kind == lang.TokenIdentifier
}
