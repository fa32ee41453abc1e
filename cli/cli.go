// Package cli contains the command line interface for seth.
//
// Without a subcommand, seth executes the given source files, reads a
// program from stdin, or starts the interactive prompt on a terminal:
//
//	seth script.seth
//	seth < script.seth
//	seth
//
// The tokens and ast subcommands print the intermediate forms of a source:
//
//	seth tokens script.seth
//	seth ast --format yaml script.seth
//
// Flags may also be set in $XDG_CONFIG_HOME/seth/config.yaml, keyed by flag
// name:
//
//	log:
//	  level: debug
//	  pretty: false
//
// Profiling flags (--pprof-mode, --pprof-dir) exist only in binaries built
// with the pprof tag.
package cli

import (
	"context"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/seth/cli/cmd"
	"github.com/ardnew/seth/cli/cmd/repl"
	"github.com/ardnew/seth/pkg"
)

// CLI is the top-level command-line interface for seth.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Run    cmd.Run    `cmd:"" default:"withargs" help:"Execute source files (default)."`
	Tokens cmd.Tokens `cmd:""                    help:"Print the tokens of a source."`
	AST    cmd.AST    `cmd:""                    help:"Print the syntax tree of a source." name:"ast"`
	Repl   cmd.Repl   `cmd:""                    help:"Start the interactive prompt."`
}

// Run executes the seth CLI on the process standard streams.
// The exit function is called with the appropriate exit code when kong
// exits early, e.g. after printing help.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return RunIO(ctx, cmd.OSStdio(), exit, args...)
}

// RunIO is like [Run] with the given streams.
func RunIO(
	ctx context.Context,
	stdio *cmd.Stdio,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":             pkg.Name + " " + pkg.Version,
		cmd.ConfigIdentifier:  configFilePath,
		cmd.CacheIdentifier:   cacheDir(),
		cmd.HistoryIdentifier: filepath.Join(cacheDir(), repl.BaseHistory),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong parses, so they affect its errors too.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdio.Out, stdio.Err),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve(ctx), configFilePath),
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

	cli.Log.start(ctx)

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	ktx.BindTo(ctx, (*context.Context)(nil))

	return ktx.Run(stdio)
}
