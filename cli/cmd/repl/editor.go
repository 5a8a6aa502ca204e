package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/entap/expr/lang"
	"github.com/entap/expr/log"
)

const defaultEditor = "vi"

// editVarsCommand implements [tea.ExecCommand]. It writes the variables as
// assignments to a temporary file, opens $EDITOR on it and evaluates the
// result. On failure the user may edit again; declining returns
// ErrEditDeclined. The session is not touched: the new variables are left
// in vars for the caller to install.
type editVarsCommand struct {
	ctx     context.Context
	session *Session
	logger  log.Logger
	vars    map[string]lang.Value
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editVarsCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editVarsCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editVarsCommand) SetStderr(w io.Writer) { c.stderr = w }

func (c *editVarsCommand) Run() error {
	f, err := os.CreateTemp("", "expr-vars-*.txt")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	_, err = io.WriteString(f, "# name = expression, one per line\n"+c.session.dump()+"\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	in := bufio.NewScanner(c.stdin)

	for {
		if err := runEditor(c.ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		vars, perr := c.session.parse(strings.NewReader(string(data)))

		c.logger.TraceContext(c.ctx, "repl edit",
			slog.Int("bytes", len(data)),
			slog.Bool("ok", perr == nil),
		)

		if perr == nil {
			c.vars = vars

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%v\nEdit again? [Y/n] ", perr)

		if !in.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor runs $EDITOR (or vi) on path and waits for it to exit.
func runEditor(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, path string) error {
	// EDITOR may carry arguments, as in "code --wait".
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
