package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/seth/lang"
	"github.com/ardnew/seth/log"
)

// AST prints the syntax tree of a source.
type AST struct {
	Format string `default:"sexpr" enum:"sexpr,json,yaml" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                            help:"Indent width for JSON and YAML output." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the ast command. Statements that parsed are printed even
// when others did not.
func (a *AST) Run(ctx context.Context, stdio *Stdio) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := log.Default().With(
		slog.String("command", "ast"),
		slog.String("format", a.Format),
	)

	source, rep, err := readSource(ctx, a.Source, stdio, logger)
	if err != nil {
		return err
	}

	prog := lang.Parse(ctx, source, rep, lang.WithLogger(logger))

	switch a.Format {
	case "json":
		err = prog.FormatJSON(ctx, stdio.Out, a.Indent)
	case "yaml":
		err = prog.FormatYAML(ctx, stdio.Out, a.Indent)
	default:
		err = prog.Format(ctx, stdio.Out)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return syntaxResult(rep)
}
