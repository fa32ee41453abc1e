package diag

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ardnew/seth/lang/token"
)

func TestError_Is(t *testing.T) {
	derived := ErrUndefinedVariable.Detail("'%s'", "x")

	if got := derived.Error(); got != "Undefined variable 'x'" {
		t.Errorf("Error() = %q", got)
	}

	if !errors.Is(derived, ErrUndefinedVariable) {
		t.Error("detailed error should match its sentinel")
	}

	if errors.Is(derived, ErrUnsupportedOperator) {
		t.Error("detailed error matched the wrong sentinel")
	}

	wrapped := ErrExpectExpression.Wrap(io.ErrUnexpectedEOF)
	if !errors.Is(wrapped, io.ErrUnexpectedEOF) || !errors.Is(wrapped, ErrExpectExpression) {
		t.Error("wrapped error lost its chain")
	}

	if got := wrapped.Error(); got != "Expect expression.: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(ErrCharacterSize) != ErrCharacterSize {
		t.Error("WrapError should return an existing *Error unchanged")
	}

	if got := WrapError(io.EOF).Error(); got != "EOF" {
		t.Errorf("WrapError(io.EOF) = %q", got)
	}
}

func TestDiagnostic_Error(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "lexical",
			diag: Diagnostic{Stage: StageLexical, Line: 3, Err: ErrUnfinishedString},
			want: "[line 3] Error: Unfinished string.",
		},
		{
			name: "syntax at token",
			diag: Diagnostic{Stage: StageSyntax, Line: 1, Where: "at ')'", Err: ErrExpectExpression},
			want: "[line 1] Error at ')': Expect expression.",
		},
		{
			name: "runtime",
			diag: Diagnostic{
				Stage: StageRuntime,
				Line:  7,
				Err:   ErrUnsupportedOperator.Detail("'+' for: String and Integer"),
			},
			want: "[line 7] Error: Unsupported operator '+' for: String and Integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diag.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWhere(t *testing.T) {
	tests := []struct {
		tok  token.Token
		want string
	}{
		{token.New(token.Eof, "", 1), "at end"},
		{token.New(token.Newline, "\n", 1), "at end of line"},
		{token.New(token.Indent(1), "\t", 2), "at indentation"},
		{token.New(token.ParenClose, ")", 1), "at ')'"},
	}

	for _, tt := range tests {
		if got := Where(tt.tok); got != tt.want {
			t.Errorf("Where(%v) = %q, want %q", tt.tok, got, tt.want)
		}
	}
}

func TestReporter(t *testing.T) {
	var out bytes.Buffer

	r := NewReporter(WithOutput(&out))

	if r.HadError() {
		t.Fatal("fresh reporter has errors")
	}

	r.Lexical(1, ErrUnknownCharacter)
	r.Syntax(token.New(token.Eof, "", 2), ErrExpectExpression)

	if !r.HadError() || !r.HadSyntaxError() || r.HadRuntimeError() {
		t.Errorf("unexpected flags after lexical+syntax errors")
	}

	r.Runtime(4, ErrDivisionByZero)

	if !r.HadRuntimeError() {
		t.Error("runtime error not recorded")
	}

	diags := r.Diagnostics()
	if len(diags) != 3 {
		t.Fatalf("len(Diagnostics()) = %d", len(diags))
	}

	if !errors.Is(diags[2], ErrDivisionByZero) {
		t.Errorf("diagnostic does not unwrap to its sentinel")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || lines[1] != "[line 2] Error at end: Expect expression." {
		t.Errorf("printed diagnostics = %q", lines)
	}

	r.Reset()

	if r.HadError() || r.HadSyntaxError() || r.HadRuntimeError() {
		t.Error("Reset did not clear state")
	}

	if len(diags) != 3 {
		t.Error("Reset mutated a previously returned slice")
	}
}
