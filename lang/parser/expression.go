package parser

import (
	"github.com/ardnew/seth/lang/ast"
	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/token"
	"github.com/ardnew/seth/lang/value"
)

var (
	equalities  = []token.Symbol{token.EqualEqual, token.NotEqual, token.And, token.Or}
	comparisons = []token.Symbol{token.Greater, token.Less, token.GreaterEqual, token.LessEqual}
	terms       = []token.Symbol{token.Plus, token.Minus, token.Ampersand, token.Pipe, token.Caret}
	factors     = []token.Symbol{
		token.Star, token.Slash, token.Percent, token.StarStar, token.GreaterGreater, token.LessLess,
	}
	unaries = []token.Symbol{token.Minus, token.Not, token.Bang}
)

func (p *parser) expression() (ast.Expr, error) { return p.assignment() }

func (p *parser) assignment() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	if !p.match(token.Assignments...) {
		return expr, nil
	}

	op := p.previous()

	rhs, err := p.assignment()
	if err != nil {
		return nil, err
	}

	v, ok := expr.(*ast.Variable)
	if !ok {
		return nil, p.fail(op, diag.ErrInvalidAssignment)
	}

	return &ast.Assignment{Name: v.Name, Op: op, Value: rhs}, nil
}

// binary parses a left-associative chain of ops over operands produced by
// next.
func (p *parser) binary(next func() (ast.Expr, error), ops []token.Symbol) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}

	for p.match(ops...) {
		op := p.previous()

		right, err := next()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}

	return expr, nil
}

func (p *parser) equality() (ast.Expr, error)   { return p.binary(p.comparison, equalities) }
func (p *parser) comparison() (ast.Expr, error) { return p.binary(p.term, comparisons) }
func (p *parser) term() (ast.Expr, error)       { return p.binary(p.factor, terms) }
func (p *parser) factor() (ast.Expr, error)     { return p.binary(p.unary, factors) }

func (p *parser) unary() (ast.Expr, error) {
	if !p.match(unaries...) {
		return p.primary()
	}

	op := p.previous()

	right, err := p.unary()
	if err != nil {
		return nil, err
	}

	return &ast.Unary{Op: op, Right: right}, nil
}

func (p *parser) primary() (ast.Expr, error) {
	tok := p.peek()

	if v, ok := value.FromToken(tok); ok {
		p.advance()

		return &ast.Literal{Value: v, Token: tok}, nil
	}

	if _, ok := tok.Kind.(token.Identifier); ok {
		p.advance()

		return &ast.Variable{Name: tok}, nil
	}

	if p.match(token.ParenOpen) {
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}

		if !p.match(token.ParenClose) {
			return nil, p.fail(p.peek(), diag.ErrExpectParen)
		}

		return &ast.Grouping{Inner: inner}, nil
	}

	return nil, p.fail(tok, diag.ErrExpectExpression)
}
