// Package token defines the lexical units produced by the seth tokenizer.
//
// A token's [Kind] is a closed union. Punctuation, operators and keywords are
// [Symbol] values with no payload. Literal-bearing kinds ([Integer],
// [Floating], [Character], [String], [Boolean], [Identifier], [Comment] and
// [Indent]) are distinct types whose underlying value is the decoded payload,
// so a kind can never disagree with the payload it carries.
package token

import (
	"fmt"
	"strconv"
)

// Kind classifies a token. The set of implementations is closed to this
// package.
type Kind interface {
	fmt.Stringer

	kind()
}

// Token is a single classified lexical unit.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

// New returns a token of the given kind.
func New(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// String renders the token as "<Kind>(<payload>) @line".
func (t Token) String() string {
	return t.Kind.String() + " @" + strconv.Itoa(t.Line)
}

// Is reports whether the token is the given symbol.
func (t Token) Is(sym Symbol) bool {
	s, ok := t.Kind.(Symbol)

	return ok && s == sym
}

// IsAny reports whether the token is one of the given symbols.
func (t Token) IsAny(syms ...Symbol) bool {
	s, ok := t.Kind.(Symbol)
	if !ok {
		return false
	}

	for _, sym := range syms {
		if s == sym {
			return true
		}
	}

	return false
}

// IndentLevel returns the nesting depth of an Indent token.
func (t Token) IndentLevel() (int, bool) {
	in, ok := t.Kind.(Indent)

	return int(in), ok
}

// Integer is a 64-bit signed integer literal.
type Integer int64

// Floating is a 64-bit floating-point literal.
type Floating float64

// Character is a single code point literal.
type Character rune

// String is a string literal with escapes already decoded.
type String string

// Boolean is a true or false literal.
type Boolean bool

// Identifier is a user-defined name.
type Identifier string

// Comment is the text following '#' up to the end of the line.
type Comment string

// Indent is the block nesting depth of a source line, counted in tabs.
type Indent int

func (Integer) kind()    {}
func (Floating) kind()   {}
func (Character) kind()  {}
func (String) kind()     {}
func (Boolean) kind()    {}
func (Identifier) kind() {}
func (Comment) kind()    {}
func (Indent) kind()     {}
func (Symbol) kind()     {}

func (k Integer) String() string {
	return "Integer(" + strconv.FormatInt(int64(k), 10) + ")"
}

func (k Floating) String() string {
	return "Floating(" + strconv.FormatFloat(float64(k), 'g', -1, 64) + ")"
}

func (k Character) String() string {
	return "Character(" + strconv.QuoteRune(rune(k)) + ")"
}

func (k String) String() string { return "String(" + strconv.Quote(string(k)) + ")" }

func (k Boolean) String() string {
	return "Boolean(" + strconv.FormatBool(bool(k)) + ")"
}

func (k Identifier) String() string { return "Identifier(" + string(k) + ")" }

func (k Comment) String() string { return "Comment(" + strconv.Quote(string(k)) + ")" }

func (k Indent) String() string { return "Indent(" + strconv.Itoa(int(k)) + ")" }
