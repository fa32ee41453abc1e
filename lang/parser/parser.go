// Package parser builds seth statement trees from a token sequence.
//
// The parser is a recursive-descent parser over an explicit cursor. It is
// best-effort: every syntax error is reported to the [diag.Reporter], the
// parser then skips ahead to a plausible statement boundary, and the
// statement containing the error is left out of the program.
//
// Precedence, lowest first:
//
//	assignment   = += -= *= /= %= **= &= |= ^= >>= <<=   (right)
//	equality     == != and or
//	comparison   < > <= >=
//	term         + - & | ^
//	factor       * / % ** >> <<
//	unary        - not !                                  (prefix)
//	primary      literal, identifier, ( expression )
package parser

import (
	"context"
	"log/slog"

	"github.com/ardnew/seth/lang/ast"
	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/token"
	"github.com/ardnew/seth/log"
)

// Option configures parsing.
type Option func(*parser)

// WithLogger sets the logger receiving trace events.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) { p.logger = logger }
}

// WithContext sets the context passed to the logger.
func WithContext(ctx context.Context) Option {
	return func(p *parser) { p.ctx = ctx }
}

type parser struct {
	ctx    context.Context
	logger log.Logger
	rep    *diag.Reporter

	tokens []token.Token
	cur    int
	level  int // indentation of the block being parsed
}

// Parse builds the program from tokens. Comment tokens are ignored. Syntax
// errors are reported to rep; a nil rep records them silently.
func Parse(tokens []token.Token, rep *diag.Reporter, opts ...Option) ast.Program {
	if rep == nil {
		rep = diag.Discard()
	}

	p := &parser{
		ctx:    context.Background(),
		rep:    rep,
		tokens: significant(tokens),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger.TraceContext(p.ctx, "parse", slog.Int("tokens", len(p.tokens)))

	var prog ast.Program

	for !p.atEnd() {
		st, err := p.statement()
		if err != nil {
			p.synchronize()

			continue
		}

		if st != nil {
			prog = append(prog, st)
		}
	}

	p.logger.TraceContext(p.ctx, "parsed", slog.Int("statements", len(prog)))

	return prog
}

// significant drops comments and guarantees a trailing Eof.
func significant(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens)+1)

	for _, tok := range tokens {
		if _, ok := tok.Kind.(token.Comment); ok {
			continue
		}

		out = append(out, tok)
	}

	if n := len(out); n == 0 || !out[n-1].Is(token.Eof) {
		line := 1
		if n > 0 {
			line = out[n-1].Line
		}

		out = append(out, token.New(token.Eof, "", line))
	}

	return out
}

func (p *parser) peek() token.Token { return p.tokens[p.cur] }

func (p *parser) peekAt(n int) token.Token {
	if p.cur+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.cur+n]
}

func (p *parser) previous() token.Token {
	if p.cur == 0 {
		return p.tokens[0]
	}

	return p.tokens[p.cur-1]
}

func (p *parser) atEnd() bool { return p.peek().Is(token.Eof) }

func (p *parser) advance() token.Token {
	if !p.atEnd() {
		p.cur++
	}

	return p.previous()
}

func (p *parser) match(syms ...token.Symbol) bool {
	if p.peek().IsAny(syms...) {
		p.advance()

		return true
	}

	return false
}

// fail reports err at tok and returns it for propagation.
func (p *parser) fail(tok token.Token, err *diag.Error) error {
	p.rep.Syntax(tok, err)

	return err
}

// synchronize discards tokens until just after a newline or just before a
// keyword that starts a statement.
func (p *parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		if p.previous().Is(token.Newline) {
			return
		}

		if p.peek().IsAny(token.Var, token.If, token.Print) {
			return
		}

		p.advance()
	}
}
