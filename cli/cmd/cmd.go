// Package cmd implements the seth subcommands.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Identifiers of the kong variables shared by the CLI and its commands.
const (
	ConfigIdentifier  = "configPath"
	CacheIdentifier   = "cacheDir"
	HistoryIdentifier = "historyPath"
)

// Stdio is the set of streams the commands read from and write to.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStdio returns the process standard streams.
func OSStdio() *Stdio {
	return &Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// kongVar returns the interpolation variable name.
func kongVar(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}
