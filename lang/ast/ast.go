// Package ast defines the statement and expression trees built by the
// parser and walked by the interpreter.
//
// Every node exclusively owns its children. Nodes print in a parenthesized
// prefix form, e.g. "(print (+ 1 2))", which is the canonical debug output
// of the parser.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/seth/lang/token"
	"github.com/ardnew/seth/lang/value"
)

// Expr is an expression node.
type Expr interface {
	String() string
	// Line returns the source line the expression is attributed to.
	Line() int

	expr()
}

// Stmt is a statement node.
type Stmt interface {
	String() string

	stmt()
}

// Program is the ordered sequence of top-level statements.
type Program []Stmt

// Literal is a constant value.
type Literal struct {
	Value value.Value
	Token token.Token
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Inner Expr
}

// Unary applies a prefix operator.
type Unary struct {
	Op    token.Token
	Right Expr
}

// Binary applies an infix operator.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// Variable reads a named binding.
type Variable struct {
	Name token.Token
}

// Assignment stores into an existing binding. Op is '=' or one of the
// compound assignment operators.
type Assignment struct {
	Name  token.Token
	Op    token.Token
	Value Expr
}

func (*Literal) expr()    {}
func (*Grouping) expr()   {}
func (*Unary) expr()      {}
func (*Binary) expr()     {}
func (*Variable) expr()   {}
func (*Assignment) expr() {}

func (e *Literal) Line() int    { return e.Token.Line }
func (e *Grouping) Line() int   { return e.Inner.Line() }
func (e *Unary) Line() int      { return e.Op.Line }
func (e *Binary) Line() int     { return e.Op.Line }
func (e *Variable) Line() int   { return e.Name.Line }
func (e *Assignment) Line() int { return e.Op.Line }

func (e *Literal) String() string {
	if e.Token.Lexeme != "" {
		return e.Token.Lexeme
	}

	return e.Value.String()
}

func (e *Grouping) String() string { return sexpr("group", e.Inner) }
func (e *Unary) String() string    { return sexpr(e.Op.Lexeme, e.Right) }
func (e *Binary) String() string   { return sexpr(e.Op.Lexeme, e.Left, e.Right) }
func (e *Variable) String() string { return e.Name.Lexeme }

func (e *Assignment) String() string {
	return "(" + e.Op.Lexeme + " " + e.Name.Lexeme + " " + e.Value.String() + ")"
}

// Var declares a binding initialized to null.
type Var struct {
	Name token.Token
}

// VarAssign declares a binding with an initial value.
type VarAssign struct {
	Name token.Token
	Init Expr
}

// Print writes the textual form of a value.
type Print struct {
	Keyword token.Token
	Expr    Expr
}

// Block is a run of statements at one indentation level, executed in its
// own scope.
type Block struct {
	Stmts []Stmt
	Level int
}

// If executes Then when Cond is truthy.
type If struct {
	Cond Expr
	Then Stmt
}

// IfElse executes Then when Cond is truthy and Else otherwise.
type IfElse struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	Expr Expr
}

func (*Var) stmt()       {}
func (*VarAssign) stmt() {}
func (*Print) stmt()     {}
func (*Block) stmt()     {}
func (*If) stmt()        {}
func (*IfElse) stmt()    {}
func (*ExprStmt) stmt()  {}

func (s *Var) String() string { return "(var " + s.Name.Lexeme + ")" }

func (s *VarAssign) String() string {
	return "(var " + s.Name.Lexeme + " = " + s.Init.String() + ")"
}

func (s *Print) String() string    { return sexpr("print", s.Expr) }
func (s *ExprStmt) String() string { return sexpr("expr", s.Expr) }
func (s *If) String() string       { return sexpr("if", s.Cond, s.Then) }
func (s *IfElse) String() string   { return sexpr("if", s.Cond, s.Then, s.Else) }

func (s *Block) String() string {
	nodes := make([]fmt.Stringer, len(s.Stmts))
	for i, st := range s.Stmts {
		nodes[i] = st
	}

	return sexpr("block-"+strconv.Itoa(s.Level), nodes...)
}

// String renders one statement per line.
func (p Program) String() string {
	var sb strings.Builder

	for _, st := range p {
		sb.WriteString(st.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

func sexpr(head string, nodes ...fmt.Stringer) string {
	var sb strings.Builder

	sb.WriteByte('(')
	sb.WriteString(head)

	for _, n := range nodes {
		sb.WriteByte(' ')
		sb.WriteString(n.String())
	}

	sb.WriteByte(')')

	return sb.String()
}
