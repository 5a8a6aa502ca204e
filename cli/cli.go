package cli

import (
	"context"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/entap/expr/cli/cmd"
	"github.com/entap/expr/pkg"
)

// CLI is the top-level command-line interface.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source []string `help:"Read expressions from file(s), one per line, or '-' for stdin." name:"source" short:"s" type:"existingfile"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Evaluate expressions."`
	Plot cmd.Plot `cmd:""                    help:"Tabulate expressions over a parameter range."`
	Fmt  cmd.Fmt  `cmd:""                    help:"Print the parse tree of an expression."`
	Repl cmd.Repl `cmd:""                    help:"Start an interactive session."`
	Init cmd.Init `cmd:""                    help:"Write the configuration file from the current flags."`
}

// Run parses args and runs the selected command. exit is called when kong
// exits early, for example after --help.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFile := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		"version":            pkg.Name + " " + pkg.Version,
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Boolean logger flags are applied before parsing, wherever they appear.
	cli.Log.scan(args)

	groups := []kong.Group{cli.Log.group()}
	if g := cli.Pprof.group(); g.Key != "" {
		groups = append(groups, g)
	}

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, filepath.Join(pkg.ConfigDir(), baseConfig+".json")),
		kong.Configuration(resolve(ctx, cmd.ConfigIdentifier), configFile),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	cli.Log.start(ctx)

	// No-op unless built with the pprof tag and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
