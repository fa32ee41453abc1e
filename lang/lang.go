package lang

import (
	"io"
	"os"

	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/log"
)

// Pipeline errors.
var (
	ErrSyntax    = diag.NewError("source has syntax errors")
	ErrRuntime   = diag.NewError("runtime error")
	ErrReadInput = diag.NewError("failed to read input")
)

// Option configures a [Session] or a single pipeline call.
type Option func(*options)

type options struct {
	logger      log.Logger
	output      io.Writer
	diagnostics io.Writer
	keepGoing   bool
	cache       bool
}

// WithLogger sets the logger for every stage.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithOutput sets the destination of print statements.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithDiagnostics sets where diagnostics are printed.
func WithDiagnostics(w io.Writer) Option {
	return func(o *options) { o.diagnostics = w }
}

// WithKeepGoing continues with the next top-level statement after a runtime
// error instead of abandoning the program.
func WithKeepGoing(keepGoing bool) Option {
	return func(o *options) { o.keepGoing = keepGoing }
}

// WithCache controls whether [Parse] consults the parse cache. It is
// enabled by default.
func WithCache(enable bool) Option {
	return func(o *options) { o.cache = enable }
}

func applyDefaults(o *options) {
	o.output = os.Stdout
	o.diagnostics = os.Stderr
	o.cache = true
}

func applyOptions(o *options, opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

func makeOptions(opts ...Option) options {
	var o options

	applyDefaults(&o)
	applyOptions(&o, opts...)

	return o
}
