package repl

import (
	"strings"
	"testing"

	"github.com/ardnew/seth/lang/value"
)

func testModel(t *testing.T) model {
	t.Helper()

	return newModel(t.Context(), Config{}, NewHistory(""))
}

func submit(m model, lines ...string) model {
	for _, line := range lines {
		m.input.SetValue(line)
		m, _ = m.executeInput()
	}

	return m
}

func TestModel_GlobalsPersistAcrossEntries(t *testing.T) {
	m := submit(testModel(t), "var x = 2", "x *= 21")

	if v, ok := m.session.Lookup("x"); !ok || v != value.Integer(42) {
		t.Errorf("x = %v, %v", v, ok)
	}

	if m.history.Len() != 2 {
		t.Errorf("history Len = %d, want 2", m.history.Len())
	}
}

func TestModel_MultiLineEntry(t *testing.T) {
	m := submit(testModel(t), "var x = 3", "if x > 1:", "  print x")

	if !m.entry.pending() {
		t.Fatal("block not pending")
	}

	if m.out.Len() != 0 {
		t.Fatalf("ran before block closed: %q", m.out)
	}

	m = submit(m, "")

	if m.entry.pending() {
		t.Error("block still pending")
	}

	if m.out.String() != "3\n" {
		t.Errorf("output %q", m.out)
	}

	if m.last != "if x > 1:\n\tprint x\n" {
		t.Errorf("last entry %q", m.last)
	}
}

func TestModel_ErrorsRecoverBetweenEntries(t *testing.T) {
	m := submit(testModel(t), "print (1")

	if !strings.Contains(m.diags.String(), "Expect ')' after expression.") {
		t.Fatalf("diagnostics %q", m.diags)
	}

	m = submit(m, "print nope")

	if !strings.Contains(m.diags.String(), "Undefined variable 'nope'") {
		t.Fatalf("diagnostics %q", m.diags)
	}

	m = submit(m, "print 1")

	if m.diags.Len() != 0 || m.out.String() != "1\n" {
		t.Errorf("entry after errors: output %q, diagnostics %q", m.out, m.diags)
	}
}

func TestModel_ControlCommands(t *testing.T) {
	m := submit(testModel(t), "var a = 1")

	m = m.switchToMode(modeCtrl)
	if m.mode != modeCtrl {
		t.Fatal("mode not switched")
	}

	if got := m.listGlobals(); !strings.Contains(got, "a") {
		t.Errorf("globals %q", got)
	}

	m = submit(m, "reset")

	if len(m.session.Globals()) != 0 {
		t.Errorf("reset kept %v", m.session.Globals())
	}

	m = submit(m, "quit")

	if !m.quitting {
		t.Error("quit did not quit")
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   value.Value
		want string
	}{
		{value.Integer(3), "3"},
		{value.Floating(2), "2.0"},
		{value.String("hi"), `"hi"`},
		{value.Character('x'), `'x'`},
		{value.Null{}, "null"},
	}

	for _, tt := range tests {
		if got := formatResult(tt.in); got != tt.want {
			t.Errorf("formatResult(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
