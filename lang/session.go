package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ardnew/seth/lang/ast"
	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/interp"
	"github.com/ardnew/seth/lang/value"
)

// Session runs sources against one persistent global scope.
//
// Diagnostics accumulate across calls to [Session.Exec] until
// [Session.Reset]. While a lexical or syntax error is on record no program
// is interpreted, so callers running independent entries (a REPL, say)
// reset the session between them.
type Session struct {
	opts   options
	rep    *diag.Reporter
	interp *interp.Interpreter
}

// NewSession returns a session with an empty global scope.
func NewSession(opts ...Option) *Session {
	o := makeOptions(opts...)

	return &Session{
		opts: o,
		rep: diag.NewReporter(
			diag.WithOutput(o.diagnostics),
			diag.WithLogger(o.logger),
		),
		interp: interp.New(
			interp.WithOutput(o.output),
			interp.WithLogger(o.logger),
			interp.WithKeepGoing(o.keepGoing),
		),
	}
}

// Exec tokenizes, parses and, when no syntax error is on record,
// interprets source. It returns an error wrapping [ErrSyntax] when the
// program was not run and [ErrRuntime] when it stopped on a runtime error.
func (s *Session) Exec(ctx context.Context, source string) error {
	prog, err := s.parse(ctx, source)
	if err != nil {
		return err
	}

	return s.result(s.interp.Interpret(ctx, prog, s.rep))
}

// Eval is like [Session.Exec], except that a source consisting of one
// expression statement other than an assignment yields the value of the
// expression. Otherwise the returned value is nil.
func (s *Session) Eval(ctx context.Context, source string) (value.Value, error) {
	prog, err := s.parse(ctx, source)
	if err != nil {
		return nil, err
	}

	if len(prog) == 1 {
		if es, ok := prog[0].(*ast.ExprStmt); ok {
			if _, assign := es.Expr.(*ast.Assignment); !assign {
				v, err := s.interp.Evaluate(ctx, es.Expr)
				if err != nil {
					s.report(es.Expr.Line(), err)
				}

				return v, s.result(err)
			}
		}
	}

	return nil, s.result(s.interp.Interpret(ctx, prog, s.rep))
}

func (s *Session) parse(ctx context.Context, source string) (ast.Program, error) {
	prog := Parse(ctx, source, s.rep, s.parseOptions()...)

	if s.rep.HadSyntaxError() {
		s.opts.logger.DebugContext(ctx, "interpretation skipped",
			slog.Int("diagnostics", s.rep.Count()),
		)

		return nil, ErrSyntax.With(slog.Int("diagnostics", s.rep.Count()))
	}

	return prog, nil
}

func (s *Session) report(line int, err error) {
	var d diag.Diagnostic
	if errors.As(err, &d) {
		s.rep.Report(d)

		return
	}

	if !isCancel(err) {
		s.rep.Runtime(line, err)
	}
}

func (s *Session) result(err error) error {
	if err == nil || isCancel(err) {
		return err
	}

	return ErrRuntime.Wrap(err)
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExecReader reads the complete source from r and executes it.
func (s *Session) ExecReader(ctx context.Context, r io.Reader) error {
	source, err := ReadSource(ctx, r, s.parseOptions()...)
	if err != nil {
		return err
	}

	return s.Exec(ctx, source)
}

func (s *Session) parseOptions() []Option {
	return []Option{WithLogger(s.opts.logger), WithCache(s.opts.cache)}
}

// Reset forgets every diagnostic on record. Global bindings are kept.
func (s *Session) Reset() { s.rep.Reset() }

// Clear discards every global binding.
func (s *Session) Clear() { s.interp.Reset() }

// HadError reports whether any diagnostic is on record.
func (s *Session) HadError() bool { return s.rep.HadError() }

// Diagnostics returns the diagnostics on record.
func (s *Session) Diagnostics() []diag.Diagnostic { return s.rep.Diagnostics() }

// Globals returns the sorted names of the global bindings.
func (s *Session) Globals() []string { return s.interp.Globals() }

// Lookup returns the global binding of name.
func (s *Session) Lookup(name string) (value.Value, bool) { return s.interp.Lookup(name) }
