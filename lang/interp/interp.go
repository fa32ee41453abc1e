// Package interp executes seth programs by walking their syntax trees.
//
// An [Interpreter] owns one [Environment] whose global scope persists
// across calls to [Interpreter.Interpret], so a REPL can feed it one entry
// at a time. Blocks run in a child scope that is discarded when the block
// finishes, however it finishes.
package interp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/seth/lang/ast"
	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/token"
	"github.com/ardnew/seth/lang/value"
	"github.com/ardnew/seth/log"
)

// Interpreter executes programs against a persistent environment.
type Interpreter struct {
	env     *Environment
	current Handle

	output    io.Writer
	logger    log.Logger
	keepGoing bool

	ctx context.Context
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the destination of print statements. A nil writer
// discards output.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		if w == nil {
			w = io.Discard
		}

		in.output = w
	}
}

// WithLogger sets the logger receiving trace events.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithKeepGoing controls what happens after a runtime error. By default the
// rest of the program is abandoned; with keepGoing the interpreter moves on
// to the next top-level statement.
func WithKeepGoing(keepGoing bool) Option {
	return func(in *Interpreter) { in.keepGoing = keepGoing }
}

func applyDefaults(in *Interpreter) {
	in.env = NewEnvironment()
	in.current = Global
	in.output = os.Stdout
	in.ctx = context.Background()
}

func applyOptions(in *Interpreter, opts ...Option) {
	for _, opt := range opts {
		opt(in)
	}
}

// New returns an Interpreter with an empty global scope.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{}

	applyDefaults(in)
	applyOptions(in, opts...)

	return in
}

// Interpret executes prog in order. Each runtime error is reported to rep
// (a nil rep records it silently). The first runtime error is returned.
func (in *Interpreter) Interpret(ctx context.Context, prog ast.Program, rep *diag.Reporter) error {
	if rep == nil {
		rep = diag.Discard()
	}

	in.ctx = ctx
	defer func() { in.ctx = context.Background() }()

	in.logger.TraceContext(ctx, "interpret", slog.Int("statements", len(prog)))

	var first error

	for _, st := range prog {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := in.execute(st)
		if err == nil {
			continue
		}

		var d diag.Diagnostic
		if errors.As(err, &d) {
			rep.Report(d)
		} else {
			rep.Runtime(0, err)
		}

		if first == nil {
			first = err
		}

		if !in.keepGoing {
			break
		}
	}

	in.logger.TraceContext(ctx, "interpreted", slog.Bool("failed", first != nil))

	return first
}

// Evaluate evaluates a single expression in the global scope.
func (in *Interpreter) Evaluate(ctx context.Context, expr ast.Expr) (value.Value, error) {
	in.ctx = ctx
	defer func() { in.ctx = context.Background() }()

	return in.evaluate(expr)
}

// Lookup returns the global binding of name.
func (in *Interpreter) Lookup(name string) (value.Value, bool) {
	v, err := in.env.Get(Global, name)

	return v, err == nil
}

// Globals returns the sorted names bound in the global scope.
func (in *Interpreter) Globals() []string { return in.env.Names(Global) }

// Reset discards every global binding.
func (in *Interpreter) Reset() {
	in.env.Reset()
	in.current = Global
}

// fail builds a runtime diagnostic for err raised on line.
func fail(line int, err error) error {
	return diag.Diagnostic{Stage: diag.StageRuntime, Line: line, Err: err}
}

func (in *Interpreter) execute(st ast.Stmt) error {
	switch st := st.(type) {
	case *ast.Var:
		in.env.Define(in.current, st.Name.Lexeme, value.Null{})

	case *ast.VarAssign:
		v, err := in.evaluate(st.Init)
		if err != nil {
			return err
		}

		in.env.Define(in.current, st.Name.Lexeme, v)

	case *ast.Print:
		v, err := in.evaluate(st.Expr)
		if err != nil {
			return err
		}

		if _, err := io.WriteString(in.output, v.String()+"\n"); err != nil {
			return fail(st.Keyword.Line, diag.WrapError(err))
		}

	case *ast.Block:
		return in.block(st)

	case *ast.If:
		cond, err := in.evaluate(st.Cond)
		if err != nil {
			return err
		}

		if value.Truthy(cond) {
			return in.execute(st.Then)
		}

	case *ast.IfElse:
		cond, err := in.evaluate(st.Cond)
		if err != nil {
			return err
		}

		if value.Truthy(cond) {
			return in.execute(st.Then)
		}

		return in.execute(st.Else)

	case *ast.ExprStmt:
		_, err := in.evaluate(st.Expr)

		return err
	}

	return nil
}

func (in *Interpreter) block(b *ast.Block) error {
	parent := in.current
	h := in.env.Push(parent)
	in.current = h

	in.logger.TraceContext(in.ctx, "enter block",
		slog.Int("level", b.Level),
		slog.Int("depth", in.env.Depth()),
	)

	defer func() {
		in.env.Pop(h)
		in.current = parent

		in.logger.TraceContext(in.ctx, "exit block", slog.Int("level", b.Level))
	}()

	for _, st := range b.Stmts {
		if err := in.execute(st); err != nil {
			return err
		}
	}

	return nil
}

func (in *Interpreter) evaluate(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return in.evaluate(e.Inner)

	case *ast.Variable:
		v, err := in.env.Get(in.current, e.Name.Lexeme)
		if err != nil {
			return nil, fail(e.Name.Line, err)
		}

		return v, nil

	case *ast.Unary:
		right, err := in.evaluate(e.Right)
		if err != nil {
			return nil, err
		}

		v, derr := unary(e.Op, right)
		if derr != nil {
			return nil, fail(e.Op.Line, derr)
		}

		return v, nil

	case *ast.Binary:
		return in.binary(e)

	case *ast.Assignment:
		return in.assign(e)
	}

	return nil, fail(expr.Line(), diag.NewError("unsupported expression"))
}

func (in *Interpreter) binary(e *ast.Binary) (value.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	sym, _ := e.Op.Kind.(token.Symbol)

	if sym == token.And || sym == token.Or {
		if b, ok := left.(value.Boolean); ok && bool(b) == (sym == token.Or) {
			return left, nil
		}

		return in.evaluate(e.Right)
	}

	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	v, derr := binary(sym, e.Op.Lexeme, left, right)
	if derr != nil {
		return nil, fail(e.Op.Line, derr)
	}

	return v, nil
}

func (in *Interpreter) assign(e *ast.Assignment) (value.Value, error) {
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	sym, _ := e.Op.Kind.(token.Symbol)

	if op, ok := sym.Compound(); ok {
		cur, err := in.env.Get(in.current, e.Name.Lexeme)
		if err != nil {
			return nil, fail(e.Name.Line, err)
		}

		var derr *diag.Error

		v, derr = binary(op, e.Op.Lexeme, cur, v)
		if derr != nil {
			return nil, fail(e.Op.Line, derr)
		}
	}

	stored, err := in.env.Assign(in.current, e.Name.Lexeme, v)
	if err != nil {
		return nil, fail(e.Name.Line, err)
	}

	return stored, nil
}
