package ast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/seth/lang/value"
)

// Format writes the program in prefix form, one statement per line.
func (p Program) Format(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, p.String())

	return err
}

// FormatJSON writes the program as a JSON array of node objects.
func (p Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program as a YAML sequence of node mappings.
// A non-positive indent selects flow style.
func (p Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}

// MarshalJSON implements json.Marshaler for Program.
func (p Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToNative())
}

// ToNative converts the program to native Go slices and maps.
func (p Program) ToNative() []any {
	out := make([]any, len(p))
	for i, st := range p {
		out[i] = StmtNative(st)
	}

	return out
}

// StmtNative converts a statement to a native Go map keyed by field name.
// The "node" key names the statement variant.
func StmtNative(s Stmt) map[string]any {
	switch s := s.(type) {
	case *Var:
		return node("var", "name", s.Name.Lexeme)

	case *VarAssign:
		return node("var", "name", s.Name.Lexeme, "init", ExprNative(s.Init))

	case *Print:
		return node("print", "expr", ExprNative(s.Expr))

	case *Block:
		stmts := make([]any, len(s.Stmts))
		for i, st := range s.Stmts {
			stmts[i] = StmtNative(st)
		}

		return node("block", "level", s.Level, "body", stmts)

	case *If:
		return node("if", "cond", ExprNative(s.Cond), "then", StmtNative(s.Then))

	case *IfElse:
		return node("if",
			"cond", ExprNative(s.Cond),
			"then", StmtNative(s.Then),
			"else", StmtNative(s.Else),
		)

	case *ExprStmt:
		return node("expr", "expr", ExprNative(s.Expr))

	default:
		return node("unknown")
	}
}

// ExprNative converts an expression to a native Go map keyed by field name.
// The "node" key names the expression variant.
func ExprNative(e Expr) map[string]any {
	switch e := e.(type) {
	case *Literal:
		return node("literal", "kind", e.Value.Kind().String(), "value", value.Native(e.Value))

	case *Grouping:
		return node("group", "inner", ExprNative(e.Inner))

	case *Unary:
		return node("unary", "op", e.Op.Lexeme, "right", ExprNative(e.Right))

	case *Binary:
		return node("binary",
			"op", e.Op.Lexeme,
			"left", ExprNative(e.Left),
			"right", ExprNative(e.Right),
		)

	case *Variable:
		return node("variable", "name", e.Name.Lexeme)

	case *Assignment:
		return node("assign",
			"op", e.Op.Lexeme,
			"name", e.Name.Lexeme,
			"value", ExprNative(e.Value),
		)

	default:
		return node("unknown")
	}
}

func node(kind string, kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2+1)
	m["node"] = kind

	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}

	return m
}
