// Package value defines the runtime values of the seth interpreter.
//
// [Value] is a closed union over [Boolean], [Integer], [Floating],
// [Character], [String] and [Null]. Values are small and immutable; passing
// one around always copies it.
package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/ardnew/seth/lang/token"
)

// Kind names the variant of a Value.
type Kind int

const (
	KindBoolean Kind = iota
	KindInteger
	KindFloating
	KindCharacter
	KindString
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "Boolean"

	case KindInteger:
		return "Integer"

	case KindFloating:
		return "Floating"

	case KindCharacter:
		return "Character"

	case KindString:
		return "String"

	case KindNull:
		return "Null"

	default:
		return "Unknown"
	}
}

// Value is evaluated runtime content.
type Value interface {
	// Kind returns the variant tag.
	Kind() Kind
	// String returns the text emitted by a print statement.
	String() string

	value()
}

type (
	Boolean   bool
	Integer   int64
	Floating  float64
	Character rune
	String    string
	Null      struct{}
)

func (Boolean) Kind() Kind   { return KindBoolean }
func (Integer) Kind() Kind   { return KindInteger }
func (Floating) Kind() Kind  { return KindFloating }
func (Character) Kind() Kind { return KindCharacter }
func (String) Kind() Kind    { return KindString }
func (Null) Kind() Kind      { return KindNull }

func (Boolean) value()   {}
func (Integer) value()   {}
func (Floating) value()  {}
func (Character) value() {}
func (String) value()    {}
func (Null) value()      {}

func (v Boolean) String() string   { return strconv.FormatBool(bool(v)) }
func (v Integer) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Character) String() string { return string(rune(v)) }
func (v String) String() string    { return string(v) }
func (Null) String() string        { return "null" }

// String formats the number with at least one fractional digit so that
// printed floats are distinguishable from integers.
func (v Floating) String() string {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

// FromToken converts a literal token into its runtime value.
func FromToken(tok token.Token) (Value, bool) {
	switch k := tok.Kind.(type) {
	case token.Boolean:
		return Boolean(k), true

	case token.Integer:
		return Integer(k), true

	case token.Floating:
		return Floating(k), true

	case token.Character:
		return Character(k), true

	case token.String:
		return String(k), true

	case token.Symbol:
		if k == token.Null {
			return Null{}, true
		}
	}

	return nil, false
}

// Truthy converts any value to a boolean for control flow and logic.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Boolean:
		return bool(v)

	case Integer:
		return v != 0

	case Floating:
		return v != 0

	case Character:
		return v != 0

	case String:
		return v != ""

	default:
		return false
	}
}

// Equal reports whether a and b are equal. Integer and Floating compare
// numerically after promotion; any other kind mismatch is unequal.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Integer:
		switch b := b.(type) {
		case Integer:
			return a == b
		case Floating:
			return float64(a) == float64(b)
		}

	case Floating:
		switch b := b.(type) {
		case Integer:
			return float64(a) == float64(b)
		case Floating:
			return a == b
		}

	case Boolean:
		b, ok := b.(Boolean)

		return ok && a == b

	case Character:
		b, ok := b.(Character)

		return ok && a == b

	case String:
		b, ok := b.(String)

		return ok && a == b

	case Null:
		_, ok := b.(Null)

		return ok
	}

	return false
}

// Native returns the Go representation of v, for export and testing.
func Native(v Value) any {
	switch v := v.(type) {
	case Boolean:
		return bool(v)

	case Integer:
		return int64(v)

	case Floating:
		return float64(v)

	case Character:
		return string(rune(v))

	case String:
		return string(v)

	default:
		return nil
	}
}
