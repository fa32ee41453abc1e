package parser

import (
	"log/slog"

	"github.com/ardnew/seth/lang/ast"
	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/token"
)

// statement parses one statement. A nil statement with a nil error means
// the tokens consumed carried no statement (blank line, continuation
// indent).
func (p *parser) statement() (ast.Stmt, error) {
	tok := p.peek()

	if level, ok := tok.IndentLevel(); ok {
		if level > p.level {
			return p.block(level)
		}

		p.advance()

		return nil, nil
	}

	switch {
	case tok.Is(token.Newline):
		p.advance()

		return nil, nil

	case tok.Is(token.Var):
		return p.varDecl()

	case tok.Is(token.Print):
		return p.printStmt()

	case tok.Is(token.If):
		return p.ifStmt()

	default:
		return p.exprStmt()
	}
}

// block parses the statements indented at level, starting at its opening
// Indent token. Errors inside the block are recovered statement by
// statement.
func (p *parser) block(level int) (*ast.Block, error) {
	saved := p.level
	p.level = level

	defer func() { p.level = saved }()

	p.logger.TraceContext(p.ctx, "block", slog.Int("level", level), slog.Int("line", p.peek().Line))

	p.advance()

	blk := &ast.Block{Level: level}

	for !p.atEnd() {
		if inner, ok := p.peek().IndentLevel(); ok && inner < level {
			break
		}

		st, err := p.statement()
		if err != nil {
			p.synchronize()

			continue
		}

		if st != nil {
			blk.Stmts = append(blk.Stmts, st)
		}
	}

	return blk, nil
}

// terminate consumes the end of a statement: a newline, or end of input
// which is left in place.
func (p *parser) terminate() error {
	if p.match(token.Newline) || p.atEnd() {
		return nil
	}

	return p.fail(p.peek(), diag.ErrExpectNewline)
}

func (p *parser) varDecl() (ast.Stmt, error) {
	p.advance()

	name := p.peek()
	if _, ok := name.Kind.(token.Identifier); !ok {
		return nil, p.fail(name, diag.ErrExpectVarName)
	}

	p.advance()

	var st ast.Stmt = &ast.Var{Name: name}

	if p.match(token.Equal) {
		init, err := p.expression()
		if err != nil {
			return nil, err
		}

		st = &ast.VarAssign{Name: name, Init: init}
	}

	if err := p.terminate(); err != nil {
		return nil, err
	}

	return st, nil
}

func (p *parser) printStmt() (ast.Stmt, error) {
	kw := p.advance()

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if err := p.terminate(); err != nil {
		return nil, err
	}

	return &ast.Print{Keyword: kw, Expr: expr}, nil
}

func (p *parser) exprStmt() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if err := p.terminate(); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{Expr: expr}, nil
}

// ifStmt parses
//
//	if cond: body [else: body]
//	if cond: body [else if ...]
//
// where each body is either a statement on the same line or an indented
// block on the following lines.
func (p *parser) ifStmt() (ast.Stmt, error) {
	p.advance()

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.match(token.Colon) {
		return nil, p.fail(p.peek(), diag.ErrExpectColon)
	}

	then, err := p.body()
	if err != nil {
		return nil, err
	}

	if !p.matchElse() {
		return &ast.If{Cond: cond, Then: then}, nil
	}

	var els ast.Stmt

	if p.peek().Is(token.If) {
		els, err = p.ifStmt()
	} else {
		if !p.match(token.Colon) {
			return nil, p.fail(p.peek(), diag.ErrExpectColon)
		}

		els, err = p.body()
	}

	if err != nil {
		return nil, err
	}

	return &ast.IfElse{Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) body() (ast.Stmt, error) {
	if !p.match(token.Newline) {
		return p.statement()
	}

	for p.match(token.Newline) {
	}

	tok := p.peek()

	level, ok := tok.IndentLevel()
	if !ok || level <= p.level {
		return nil, p.fail(tok, diag.ErrExpectIndentation)
	}

	return p.block(level)
}

// matchElse consumes an else keyword, either directly or on a following
// line at the current indentation.
func (p *parser) matchElse() bool {
	if p.match(token.Else) {
		return true
	}

	if level, ok := p.peek().IndentLevel(); ok && level == p.level && p.peekAt(1).Is(token.Else) {
		p.advance()
		p.advance()

		return true
	}

	return false
}
