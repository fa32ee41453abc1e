package repl

import "testing"

func TestNormalizeIndent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"print x", "print x"},
		{"  print x", "\tprint x"},
		{"    print x", "\t\tprint x"},
		{"\tprint x", "\tprint x"},
		{"\t  print x", "\t\tprint x"},
		{"   print x", "\tprint x"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeIndent(tt.in); got != tt.want {
			t.Errorf("normalizeIndent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpensBlock(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"if x:", true},
		{"if x:   ", true},
		{"if x: # comment", true},
		{"else:", true},
		{"if x: print x", false},
		{`print ":"`, false},
		{"print x # trailing:", false},
	}

	for _, tt := range tests {
		if got := opensBlock(tt.line); got != tt.want {
			t.Errorf("opensBlock(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestEntry(t *testing.T) {
	var e entry

	if !e.add("print 1") {
		t.Fatal("single line entry not complete")
	}

	if got := e.source(); got != "print 1\n" {
		t.Errorf("source %q", got)
	}

	e.reset()

	steps := []struct {
		line     string
		complete bool
	}{
		{"if x:", false},
		{"  print x", false},
		{"else:", false},
		{"  print 0", false},
		{"", true},
	}

	for _, s := range steps {
		if got := e.add(s.line); got != s.complete {
			t.Fatalf("add(%q) = %v, want %v", s.line, got, s.complete)
		}
	}

	want := "if x:\n\tprint x\nelse:\n\tprint 0\n"
	if got := e.source(); got != want {
		t.Errorf("source %q, want %q", got, want)
	}

	e.reset()

	if e.pending() {
		t.Error("pending after reset")
	}
}
