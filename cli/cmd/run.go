package cmd

import (
	"context"
	"log/slog"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/seth/lang"
	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/log"
)

// Run executes seth source files in one session, so later files see the
// globals of earlier ones.
type Run struct {
	Source    []string `arg:"" help:"Source file(s) to execute, or '-' for stdin. Without any, reads stdin or starts the prompt on a terminal." name:"source" optional:""`
	KeepGoing bool     `help:"Continue with the next statement after a runtime error."                                                            short:"k"`
	NoCache   bool     `help:"Do not reuse parsed programs of identical sources."`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context, stdio *Stdio) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	paths := r.Source
	if len(paths) == 0 {
		if isTerminal(stdio.In) {
			prompt := Repl{History: kongVar(ctx, HistoryIdentifier), KeepGoing: r.KeepGoing}

			return prompt.Run(ctx, stdio)
		}

		paths = []string{stdinSource}
	}

	srcs, err := openSources(paths, stdio.In)
	if err != nil {
		return err
	}
	defer closeSources(srcs)

	logger := log.Default().With(slog.String("command", "run"))

	session := lang.NewSession(
		lang.WithLogger(logger),
		lang.WithOutput(stdio.Out),
		lang.WithDiagnostics(stdio.Err),
		lang.WithKeepGoing(r.KeepGoing),
		lang.WithCache(!r.NoCache),
	)

	for _, src := range srcs {
		logger.DebugContext(ctx, "execute", slog.String("source", src.name))

		if err := session.ExecReader(ctx, src); err != nil {
			return diag.WrapError(err).With(slog.String("source", src.name))
		}
	}

	return nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r any) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
