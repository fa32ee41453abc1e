package repl

import "github.com/ardnew/seth/lang/diag"

// Sentinel errors.
var (
	ErrOutOfBounds  = diag.NewError("index out of range")
	ErrEditDeclined = diag.NewError("decline edit")
)
