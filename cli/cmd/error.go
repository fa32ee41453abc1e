package cmd

import (
	"errors"

	"github.com/ardnew/seth/lang"
	"github.com/ardnew/seth/lang/diag"
)

// Command errors.
var (
	ErrOpenSource  = diag.NewError("open source")
	ErrWriteOutput = diag.NewError("write output")
	ErrNotTerminal = diag.NewError("interactive prompt requires a terminal")
)

// Process exit codes, following sysexits.h.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
	ExitIOErr    = 74
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, lang.ErrSyntax):
		return ExitDataErr
	case errors.Is(err, lang.ErrRuntime):
		return ExitSoftware
	case errors.Is(err, ErrOpenSource):
		return ExitNoInput
	case errors.Is(err, lang.ErrReadInput), errors.Is(err, ErrWriteOutput):
		return ExitIOErr
	case errors.Is(err, ErrNotTerminal):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Reported reports whether err's cause was already printed as language
// diagnostics.
func Reported(err error) bool {
	return errors.Is(err, lang.ErrSyntax) || errors.Is(err, lang.ErrRuntime)
}
