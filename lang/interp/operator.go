package interp

import (
	"cmp"
	"math"
	"strings"

	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/token"
	"github.com/ardnew/seth/lang/value"
)

// maxRepeat bounds the length in bytes of a repeated string.
const maxRepeat = 1 << 30

func unsupported1(op string, v value.Value) *diag.Error {
	return diag.ErrUnsupportedOperator.Detail("'%s' for: %s", op, v.Kind())
}

func unsupported2(op string, l, r value.Value) *diag.Error {
	return diag.ErrUnsupportedOperator.Detail("'%s' for: %s and %s", op, l.Kind(), r.Kind())
}

func unary(op token.Token, v value.Value) (value.Value, *diag.Error) {
	sym, _ := op.Kind.(token.Symbol)

	switch sym {
	case token.Minus:
		switch v := v.(type) {
		case value.Integer:
			return -v, nil
		case value.Floating:
			return -v, nil
		}

	case token.Not:
		return value.Boolean(!value.Truthy(v)), nil

	case token.Bang:
		if n, ok := v.(value.Integer); ok {
			return ^n, nil
		}
	}

	return nil, unsupported1(op.Lexeme, v)
}

// binary applies a non-logical infix operator. lexeme is the operator as
// written, used in error messages.
func binary(sym token.Symbol, lexeme string, l, r value.Value) (value.Value, *diag.Error) {
	switch sym {
	case token.EqualEqual:
		return value.Boolean(value.Equal(l, r)), nil

	case token.NotEqual:
		return value.Boolean(!value.Equal(l, r)), nil

	case token.Greater, token.Less, token.GreaterEqual, token.LessEqual:
		return comparison(sym, lexeme, l, r)

	case token.Ampersand, token.Pipe, token.Caret, token.GreaterGreater, token.LessLess:
		return bitwise(sym, lexeme, l, r)

	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.StarStar:
		return arithmetic(sym, lexeme, l, r)
	}

	return nil, unsupported2(lexeme, l, r)
}

func comparison(sym token.Symbol, lexeme string, l, r value.Value) (value.Value, *diag.Error) {
	switch l := l.(type) {
	case value.Integer:
		switch r := r.(type) {
		case value.Integer:
			return value.Boolean(ordered(sym, l, r)), nil
		case value.Floating:
			return value.Boolean(ordered(sym, float64(l), float64(r))), nil
		}

	case value.Floating:
		switch r := r.(type) {
		case value.Integer:
			return value.Boolean(ordered(sym, float64(l), float64(r))), nil
		case value.Floating:
			return value.Boolean(ordered(sym, l, r)), nil
		}

	case value.Character:
		if r, ok := r.(value.Character); ok {
			return value.Boolean(ordered(sym, l, r)), nil
		}
	}

	return nil, unsupported2(lexeme, l, r)
}

func ordered[T cmp.Ordered](sym token.Symbol, a, b T) bool {
	switch sym {
	case token.Greater:
		return a > b
	case token.Less:
		return a < b
	case token.GreaterEqual:
		return a >= b
	default:
		return a <= b
	}
}

func bitwise(sym token.Symbol, lexeme string, l, r value.Value) (value.Value, *diag.Error) {
	a, aok := l.(value.Integer)
	b, bok := r.(value.Integer)

	if !aok || !bok {
		return nil, unsupported2(lexeme, l, r)
	}

	switch sym {
	case token.Ampersand:
		return a & b, nil

	case token.Pipe:
		return a | b, nil

	case token.Caret:
		return a ^ b, nil
	}

	if b < 0 {
		return nil, diag.ErrNegativeShift
	}

	if sym == token.GreaterGreater {
		return a >> uint64(b), nil
	}

	return a << uint64(b), nil
}

func arithmetic(sym token.Symbol, lexeme string, l, r value.Value) (value.Value, *diag.Error) {
	switch l := l.(type) {
	case value.Integer:
		switch r := r.(type) {
		case value.Integer:
			return integer(sym, l, r)
		case value.Floating:
			return floating(sym, float64(l), float64(r)), nil
		case value.String:
			if sym == token.Star {
				return repeat(r, l)
			}
		}

	case value.Floating:
		switch r := r.(type) {
		case value.Integer:
			return floating(sym, float64(l), float64(r)), nil
		case value.Floating:
			return floating(sym, float64(l), float64(r)), nil
		}

	case value.String:
		switch r := r.(type) {
		case value.String:
			if sym == token.Plus {
				return l + r, nil
			}
		case value.Integer:
			if sym == token.Star {
				return repeat(l, r)
			}
		}
	}

	return nil, unsupported2(lexeme, l, r)
}

// integer combines two integers. Overflow wraps; division truncates toward
// zero.
func integer(sym token.Symbol, a, b value.Integer) (value.Value, *diag.Error) {
	switch sym {
	case token.Plus:
		return a + b, nil

	case token.Minus:
		return a - b, nil

	case token.Star:
		return a * b, nil

	case token.Slash:
		if b == 0 {
			return nil, diag.ErrDivisionByZero
		}

		return a / b, nil

	case token.Percent:
		if b == 0 {
			return nil, diag.ErrDivisionByZero
		}

		return a % b, nil

	default:
		if b < 0 {
			return nil, diag.ErrNegativeExponent
		}

		return power(a, uint64(b)), nil
	}
}

func power(base value.Integer, exp uint64) value.Integer {
	result := value.Integer(1)

	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}

		base *= base
		exp >>= 1
	}

	return result
}

func floating(sym token.Symbol, a, b float64) value.Value {
	switch sym {
	case token.Plus:
		return value.Floating(a + b)
	case token.Minus:
		return value.Floating(a - b)
	case token.Star:
		return value.Floating(a * b)
	case token.Slash:
		return value.Floating(a / b)
	case token.Percent:
		return value.Floating(math.Mod(a, b))
	default:
		return value.Floating(math.Pow(a, b))
	}
}

func repeat(s value.String, n value.Integer) (value.Value, *diag.Error) {
	if n < 0 || (len(s) > 0 && int64(n) > maxRepeat/int64(len(s))) {
		return nil, diag.ErrRepeatCount.Detail("%d", n)
	}

	return value.String(strings.Repeat(string(s), int(n))), nil
}
