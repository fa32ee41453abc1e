package value

import (
	"math"
	"testing"

	"github.com/ardnew/seth/lang/token"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Boolean(true), "true"},
		{Integer(-42), "-42"},
		{Floating(5), "5.0"},
		{Floating(2.5), "2.5"},
		{Floating(1e21), "1e+21"},
		{Floating(math.Inf(1)), "+Inf"},
		{Character('z'), "z"},
		{String("hello"), "hello"},
		{Null{}, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.v.Kind().String(), func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"true", Boolean(true), true},
		{"false", Boolean(false), false},
		{"zero int", Integer(0), false},
		{"nonzero int", Integer(-1), true},
		{"zero float", Floating(0), false},
		{"nonzero float", Floating(0.1), true},
		{"null char", Character(0), false},
		{"char", Character('a'), true},
		{"empty string", String(""), false},
		{"string", String("x"), true},
		{"null", Null{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy(%v) = %v", tt.v, got)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int int", Integer(3), Integer(3), true},
		{"int float promoted", Integer(3), Floating(3), true},
		{"float int promoted", Floating(2.5), Integer(2), false},
		{"string string", String("a"), String("a"), true},
		{"char char", Character('a'), Character('b'), false},
		{"null null", Null{}, Null{}, true},
		{"bool bool", Boolean(false), Boolean(false), true},
		{"kind mismatch", String("1"), Integer(1), false},
		{"null vs bool", Null{}, Boolean(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v", tt.a, tt.b, got)
			}
		})
	}
}

func TestFromToken(t *testing.T) {
	tests := []struct {
		tok  token.Token
		want Value
	}{
		{token.New(token.Integer(7), "7", 1), Integer(7)},
		{token.New(token.Floating(0.5), "0.5", 1), Floating(0.5)},
		{token.New(token.String("s"), `"s"`, 1), String("s")},
		{token.New(token.Character('c'), "'c'", 1), Character('c')},
		{token.New(token.Boolean(false), "false", 1), Boolean(false)},
		{token.New(token.Null, "null", 1), Null{}},
	}

	for _, tt := range tests {
		got, ok := FromToken(tt.tok)
		if !ok || got != tt.want {
			t.Errorf("FromToken(%v) = %v, %v", tt.tok, got, ok)
		}
	}

	if _, ok := FromToken(token.New(token.Plus, "+", 1)); ok {
		t.Error("operator token is not a literal")
	}
}
