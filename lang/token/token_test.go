package token

import (
	"slices"
	"testing"
)

func TestToken_String(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"integer", New(Integer(1), "1", 1), "Integer(1) @1"},
		{"floating", New(Floating(2.5), "2.5", 3), "Floating(2.5) @3"},
		{"symbol", New(Plus, "+", 1), "Plus @1"},
		{"indent", New(Indent(2), "\t\t", 4), "Indent(2) @4"},
		{"string", New(String("a\nb"), `"a\nb"`, 2), `String("a\nb") @2`},
		{"character", New(Character('x'), "'x'", 1), "Character('x') @1"},
		{"identifier", New(Identifier("foo"), "foo", 1), "Identifier(foo) @1"},
		{"boolean", New(Boolean(true), "true", 1), "Boolean(true) @1"},
		{"eof", New(Eof, "", 9), "Eof @9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToken_Is(t *testing.T) {
	tok := New(Plus, "+", 1)

	if !tok.Is(Plus) {
		t.Error("expected Plus")
	}

	if tok.Is(Minus) {
		t.Error("unexpected Minus")
	}

	if !tok.IsAny(Minus, Plus) {
		t.Error("expected IsAny to match Plus")
	}

	lit := New(Integer(3), "3", 1)
	if lit.IsAny(Plus, Minus) {
		t.Error("literal must never match a symbol")
	}
}

func TestToken_IndentLevel(t *testing.T) {
	level, ok := New(Indent(3), "\t\t\t", 1).IndentLevel()
	if !ok || level != 3 {
		t.Errorf("IndentLevel() = %d, %v", level, ok)
	}

	if _, ok := New(Newline, "\n", 1).IndentLevel(); ok {
		t.Error("Newline is not an indent")
	}
}

func TestSymbol_Compound(t *testing.T) {
	for _, sym := range Assignments {
		op, ok := sym.Compound()
		if sym == Equal {
			if ok {
				t.Errorf("Equal must not be compound, got %v", op)
			}

			continue
		}

		if !ok {
			t.Errorf("%v should be compound", sym)
		}
	}

	if op, _ := StarStarEqual.Compound(); op != StarStar {
		t.Errorf("StarStarEqual -> %v", op)
	}
}

func TestSymbol_NamesComplete(t *testing.T) {
	for s := Symbol(0); s < symbolCount; s++ {
		if symbolName[s] == "" {
			t.Errorf("symbol %d has no name", s)
		}
	}
}

func TestKeyword(t *testing.T) {
	if k, ok := Keyword("true"); !ok || k != Boolean(true) {
		t.Errorf("true -> %v, %v", k, ok)
	}

	if k, ok := Keyword("var"); !ok || k != Var {
		t.Errorf("var -> %v, %v", k, ok)
	}

	for _, word := range []string{"func", "class", "const", "import", "while"} {
		if _, ok := Keyword(word); ok {
			t.Errorf("%q must not be reserved", word)
		}
	}

	words := Keywords()
	if !slices.Contains(words, "print") || len(words) != 10 {
		t.Errorf("Keywords() = %v", words)
	}
}
