package cmd

import (
	"bufio"
	"context"
	"log/slog"

	"github.com/ardnew/seth/lang"
	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/log"
)

// Tokens prints the tokens of a source, one per line.
type Tokens struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context, stdio *Stdio) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := log.Default().With(slog.String("command", "tokens"))

	source, rep, err := readSource(ctx, t.Source, stdio, logger)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(stdio.Out)

	for _, tok := range lang.Tokenize(ctx, source, rep, lang.WithLogger(logger)) {
		if _, err := w.WriteString(tok.String() + "\n"); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	if err := w.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return syntaxResult(rep)
}

// readSource reads the named source completely and returns it with a
// reporter printing to stdio.Err.
func readSource(
	ctx context.Context,
	path string,
	stdio *Stdio,
	logger log.Logger,
) (string, *diag.Reporter, error) {
	srcs, err := openSources([]string{path}, stdio.In)
	if err != nil {
		return "", nil, err
	}
	defer closeSources(srcs)

	var source string

	if len(srcs) > 0 {
		source, err = lang.ReadSource(ctx, srcs[0], lang.WithLogger(logger))
		if err != nil {
			return "", nil, diag.WrapError(err).With(slog.String("source", path))
		}
	}

	rep := diag.NewReporter(diag.WithOutput(stdio.Err), diag.WithLogger(logger))

	return source, rep, nil
}

func syntaxResult(rep *diag.Reporter) error {
	if rep.HadSyntaxError() {
		return lang.ErrSyntax.With(slog.Int("diagnostics", rep.Count()))
	}

	return nil
}
