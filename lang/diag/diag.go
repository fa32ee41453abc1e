// Package diag collects the diagnostics produced while tokenizing, parsing
// and interpreting seth source.
//
// A [Reporter] is threaded through every stage in place of process-wide
// error flags. It prints each [Diagnostic] as it is reported, remembers
// which stages failed, and is cleared with [Reporter.Reset] between
// independent runs.
package diag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/ardnew/seth/lang/token"
	"github.com/ardnew/seth/log"
)

// Stage identifies the pipeline stage that produced a diagnostic.
type Stage int

const (
	StageLexical Stage = iota
	StageSyntax
	StageRuntime
)

func (s Stage) String() string {
	switch s {
	case StageLexical:
		return "lexical"
	case StageSyntax:
		return "syntax"
	case StageRuntime:
		return "runtime"
	default:
		return "stage(" + strconv.Itoa(int(s)) + ")"
	}
}

// Diagnostic is one reportable defect.
type Diagnostic struct {
	Stage Stage
	Line  int
	// Where locates the defect within the line, e.g. "at 'x'" or "at end".
	// It is empty when the line alone is precise enough.
	Where string
	Err   error
}

// Error renders "[line N] Error at 'x': message".
func (d Diagnostic) Error() string {
	where := ""
	if d.Where != "" {
		where = " " + d.Where
	}

	msg := "unknown error"
	if d.Err != nil {
		msg = d.Err.Error()
	}

	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, where, msg)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// LogValue implements slog.LogValuer.
func (d Diagnostic) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("stage", d.Stage.String()),
		slog.Int("line", d.Line),
	}

	if d.Where != "" {
		attrs = append(attrs, slog.String("where", d.Where))
	}

	var ee *Error
	if errors.As(d.Err, &ee) {
		attrs = append(attrs, slog.Any("error", ee))
	} else if d.Err != nil {
		attrs = append(attrs, slog.String("error", d.Err.Error()))
	}

	return slog.GroupValue(attrs...)
}

// Where returns the location hint for a syntax error found at tok.
func Where(tok token.Token) string {
	switch {
	case tok.Is(token.Eof):
		return "at end"
	case tok.Is(token.Newline):
		return "at end of line"
	}

	if _, ok := tok.IndentLevel(); ok {
		return "at indentation"
	}

	return "at '" + tok.Lexeme + "'"
}

// Reporter accumulates diagnostics. It is not safe for concurrent use.
type Reporter struct {
	output io.Writer
	logger log.Logger
	diags  []Diagnostic
	failed [StageRuntime + 1]bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithOutput sets where diagnostics are printed. A nil writer discards them.
func WithOutput(w io.Writer) Option {
	return func(r *Reporter) {
		if w == nil {
			w = io.Discard
		}

		r.output = w
	}
}

// WithLogger sets the logger diagnostics are also recorded to.
func WithLogger(logger log.Logger) Option {
	return func(r *Reporter) { r.logger = logger }
}

// NewReporter returns a Reporter printing to stderr unless configured
// otherwise.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{output: os.Stderr}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Discard returns a Reporter that records diagnostics without printing them.
func Discard() *Reporter {
	return NewReporter(WithOutput(io.Discard))
}

// Report records d and prints it.
func (r *Reporter) Report(d Diagnostic) {
	r.diags = append(r.diags, d)

	if d.Stage >= 0 && int(d.Stage) < len(r.failed) {
		r.failed[d.Stage] = true
	}

	fmt.Fprintln(r.output, d.Error())

	r.logger.DebugContext(context.Background(), "diagnostic", slog.Any("diagnostic", d))
}

// Lexical reports a lexical error on line.
func (r *Reporter) Lexical(line int, err error) {
	r.Report(Diagnostic{Stage: StageLexical, Line: line, Err: err})
}

// Syntax reports a syntax error found at tok.
func (r *Reporter) Syntax(tok token.Token, err error) {
	r.Report(Diagnostic{Stage: StageSyntax, Line: tok.Line, Where: Where(tok), Err: err})
}

// Runtime reports a runtime error on line.
func (r *Reporter) Runtime(line int, err error) {
	r.Report(Diagnostic{Stage: StageRuntime, Line: line, Err: err})
}

// HadError reports whether any diagnostic was reported since the last Reset.
func (r *Reporter) HadError() bool { return len(r.diags) > 0 }

// Count returns the number of diagnostics reported since the last Reset.
func (r *Reporter) Count() int { return len(r.diags) }

// HadSyntaxError reports whether a lexical or syntax error was reported.
func (r *Reporter) HadSyntaxError() bool {
	return r.failed[StageLexical] || r.failed[StageSyntax]
}

// HadRuntimeError reports whether a runtime error was reported.
func (r *Reporter) HadRuntimeError() bool { return r.failed[StageRuntime] }

// Diagnostics returns a copy of every diagnostic reported since the last
// Reset, in report order.
func (r *Reporter) Diagnostics() []Diagnostic { return slices.Clone(r.diags) }

// Reset forgets every reported diagnostic.
func (r *Reporter) Reset() {
	r.diags = r.diags[:0]
	clear(r.failed[:])
}
