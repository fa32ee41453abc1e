package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/seth/lang/ast"
	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/lexer"
	"github.com/ardnew/seth/lang/token"
)

func parse(t *testing.T, src string) (ast.Program, *diag.Reporter) {
	t.Helper()

	rep := diag.Discard()

	return Parse(lexer.Tokenize(src, rep), rep, WithContext(t.Context())), rep
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"precedence", "1 + 2 * 3", "(expr (+ 1 (* 2 3)))"},
		{"left associative", "1 - 2 - 3", "(expr (- (- 1 2) 3))"},
		{"grouping", "(1 + 2) * 3", "(expr (* (group (+ 1 2)) 3))"},
		{"factor operators", "a % b ** c >> d << e / f", "(expr (/ (<< (>> (** (% a b) c) d) e) f))"},
		{"term operators", "a & b | c ^ d", "(expr (^ (| (& a b) c) d))"},
		{"comparison below term", "a + 1 < b", "(expr (< (+ a 1) b))"},
		{"equality below comparison", "a < b == c >= d", "(expr (== (< a b) (>= c d)))"},
		{"logic at equality level", "a and b or c == d", "(expr (== (or (and a b) c) d))"},
		{"unary", "- - x", "(expr (- (- x)))"},
		{"not and bang", "not !x", "(expr (not (! x)))"},
		{"literals", `print "s" + 'c' + 1.5 + true + null`, `(print (+ (+ (+ (+ "s" 'c') 1.5) true) null))`},
		{"assignment", "x = 1", "(expr (= x 1))"},
		{"assignment right associative", "x = y += 2", "(expr (= x (+= y 2)))"},
		{"compound assignment", "x **= 2 + 1", "(expr (**= x (+ 2 1)))"},
		{"var", "var x\n", "(var x)"},
		{"var with initializer", "var x = 1 + 2\n", "(var x = (+ 1 2))"},
		{"print", "print (1 + 2)\n", "(print (group (+ 1 2)))"},
		{"comments ignored", "# lead\nprint 1 # trail\n", "(print 1)"},
		{"blank lines", "\n\n\nprint 1\n\n", "(print 1)"},
		{
			name: "block",
			src:  "var x = 1\n\tvar x\n\tx + 1\nprint x\n",
			want: "(var x = 1)\n(block-1 (var x) (expr (+ x 1)))\n(print x)",
		},
		{
			name: "nested block",
			src:  "\tprint 1\n\t\tprint 2\n\tprint 3\n",
			want: "(block-1 (print 1) (block-2 (print 2)) (print 3))",
		},
		{
			name: "if block",
			src:  "if x:\n\tprint 1\n",
			want: "(if x (block-1 (print 1)))",
		},
		{
			name: "if else blocks",
			src:  "if x:\n\tprint 1\nelse:\n\tprint 2\nprint 3\n",
			want: "(if x (block-1 (print 1)) (block-1 (print 2)))\n(print 3)",
		},
		{
			name: "single line bodies",
			src:  "if x: print 1\nelse: print 2\n",
			want: "(if x (print 1) (print 2))",
		},
		{
			name: "else if chain",
			src:  "if a:\n\tprint 1\nelse if b:\n\tprint 2\nelse:\n\tprint 3\n",
			want: "(if a (block-1 (print 1)) (if b (block-1 (print 2)) (block-1 (print 3))))",
		},
		{
			name: "if inside block",
			src:  "\tif x:\n\t\tprint 1\n\telse:\n\t\tprint 2\n",
			want: "(block-1 (if x (block-2 (print 1)) (block-2 (print 2))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, rep := parse(t, tt.src)

			if rep.HadError() {
				t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics())
			}

			if got := strings.TrimSpace(prog.String()); got != tt.want {
				t.Errorf("Parse(%q)\n got  %s\n want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []error
		// statements that survive recovery
		keep string
	}{
		{
			name: "two independent errors",
			src:  "print (1\nprint )\nprint 3\n",
			want: []error{diag.ErrExpectParen, diag.ErrExpectExpression},
			keep: "(print 3)",
		},
		{
			name: "missing expression",
			src:  "print\nprint 2\n",
			want: []error{diag.ErrExpectExpression},
			keep: "(print 2)",
		},
		{
			name: "invalid assignment target",
			src:  "1 + 2 = 3\nvar y = 1\n",
			want: []error{diag.ErrInvalidAssignment},
			keep: "(var y = 1)",
		},
		{
			name: "var without name",
			src:  "var 1\nvar ok\n",
			want: []error{diag.ErrExpectVarName},
			keep: "(var ok)",
		},
		{
			name: "expect newline",
			src:  "print 1 2\nprint 3\n",
			want: []error{diag.ErrExpectNewline},
			keep: "(print 3)",
		},
		{
			name: "expect colon",
			src:  "if x\n\tprint 1\n",
			want: []error{diag.ErrExpectColon},
			keep: "(block-1 (print 1))",
		},
		{
			name: "expect indentation",
			src:  "if x:\nprint 1\n",
			want: []error{diag.ErrExpectIndentation},
			keep: "(print 1)",
		},
		{
			name: "error inside block recovers",
			src:  "\tprint )\n\tprint 1\nprint 2\n",
			want: []error{diag.ErrExpectExpression},
			keep: "(block-1 (print 1))\n(print 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, rep := parse(t, tt.src)

			diags := rep.Diagnostics()
			if len(diags) != len(tt.want) {
				t.Fatalf("got %d diagnostics, want %d: %v", len(diags), len(tt.want), diags)
			}

			for i, d := range diags {
				if !errors.Is(d, tt.want[i]) {
					t.Errorf("diagnostic %d = %v, want %v", i, d, tt.want[i])
				}

				if d.Stage != diag.StageSyntax {
					t.Errorf("diagnostic %d stage = %v", i, d.Stage)
				}
			}

			if got := strings.TrimSpace(prog.String()); got != tt.keep {
				t.Errorf("recovered program\n got  %s\n want %s", got, tt.keep)
			}
		})
	}
}

func TestParse_DiagnosticLocation(t *testing.T) {
	_, rep := parse(t, "print 1\nvar x = (2\n")

	diags := rep.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v", diags)
	}

	if got := diags[0].Error(); got != "[line 2] Error at end of line: Expect ')' after expression." {
		t.Errorf("diagnostic = %q", got)
	}

	_, rep = parse(t, "print 1 +")

	if got := rep.Diagnostics()[0].Error(); got != "[line 1] Error at end: Expect expression." {
		t.Errorf("diagnostic = %q", got)
	}
}

func TestParse_NoEof(t *testing.T) {
	tokens := []token.Token{
		token.New(token.Print, "print", 1),
		token.New(token.Integer(1), "1", 1),
	}

	prog := Parse(tokens, nil)

	if got := strings.TrimSpace(prog.String()); got != "(print 1)" {
		t.Errorf("Parse without Eof = %q", got)
	}
}
