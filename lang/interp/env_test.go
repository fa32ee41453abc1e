package interp

import (
	"errors"
	"slices"
	"testing"

	"github.com/ardnew/seth/lang/value"
)

func TestEnvironment_Scoping(t *testing.T) {
	env := NewEnvironment()

	env.Define(Global, "x", value.Integer(1))

	inner := env.Push(Global)
	innermost := env.Push(inner)

	if v, err := env.Get(innermost, "x"); err != nil || v != value.Integer(1) {
		t.Fatalf("Get through chain = %v, %v", v, err)
	}

	// define shadows
	env.Define(inner, "x", value.Integer(2))

	if v, _ := env.Get(innermost, "x"); v != value.Integer(2) {
		t.Errorf("shadowed Get = %v", v)
	}

	// assign writes the innermost visible binding only
	if v, err := env.Assign(innermost, "x", value.Integer(3)); err != nil || v != value.Integer(3) {
		t.Fatalf("Assign = %v, %v", v, err)
	}

	if v, _ := env.Get(Global, "x"); v != value.Integer(1) {
		t.Errorf("outer binding changed to %v", v)
	}

	env.Pop(inner)

	if env.Depth() != 1 {
		t.Errorf("Depth after Pop = %d", env.Depth())
	}

	if v, _ := env.Get(Global, "x"); v != value.Integer(1) {
		t.Errorf("global after Pop = %v", v)
	}
}

func TestEnvironment_Undefined(t *testing.T) {
	env := NewEnvironment()
	h := env.Push(Global)

	_, err := env.Get(h, "missing")
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("Get error = %v", err)
	}

	if err.Error() != "Undefined variable 'missing'" {
		t.Errorf("message = %q", err.Error())
	}

	if _, err := env.Assign(h, "missing", value.Null{}); !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("Assign error = %v", err)
	}

	if _, err := env.Get(h, "missing"); err == nil {
		t.Error("Assign must not create a binding")
	}
}

func TestEnvironment_PopGlobal(t *testing.T) {
	env := NewEnvironment()
	env.Define(Global, "g", value.Boolean(true))

	env.Pop(Global)
	env.Pop(Handle(42))

	if _, err := env.Get(Global, "g"); err != nil {
		t.Errorf("global scope was discarded: %v", err)
	}
}

func TestEnvironment_NamesAndReset(t *testing.T) {
	env := NewEnvironment()
	env.Define(Global, "b", value.Null{})
	env.Define(Global, "a", value.Null{})

	h := env.Push(Global)
	env.Define(h, "local", value.Null{})

	if got := env.Names(Global); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names = %v", got)
	}

	env.Reset()

	if env.Depth() != 1 || len(env.Names(Global)) != 0 {
		t.Errorf("Reset left depth %d, names %v", env.Depth(), env.Names(Global))
	}
}
