package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/seth/cli/cmd/repl"
	"github.com/ardnew/seth/log"
)

// Repl starts the interactive prompt.
type Repl struct {
	History   string `default:"${historyPath}" help:"History file."                                          type:"path"`
	KeepGoing bool   `help:"Continue an entry with its next statement after a runtime error." short:"k"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, stdio *Stdio) error {
	if !isTerminal(stdio.In) {
		return ErrNotTerminal
	}

	return repl.Run(ctx, repl.Config{
		History:   r.History,
		KeepGoing: r.KeepGoing,
		Logger:    log.Default().With(slog.String("command", "repl")),
		Input:     stdio.In,
		Output:    stdio.Out,
	})
}
