package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/seth/cli"
	"github.com/ardnew/seth/cli/cmd"
	"github.com/ardnew/seth/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		// Language errors were already printed as diagnostics.
		if cmd.Reported(err) {
			log.Debug("run failed", slog.Any("error", err))
		} else {
			log.Error("run failed", slog.Any("error", err))
		}

		os.Exit(cmd.ExitCode(err))
	}
}
