package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "(fo", 3, "fo", 1, 3},
		{"after_compound", "x += fo", 7, "fo", 5, 7},
		{"underscore", "my_var", 6, "my_var", 0, 6},
		{"digits", "x2 * 3", 2, "x2", 0, 2},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
		{"unicode", "print ünï", 11, "ünï", 6, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestInLiteral(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		want   bool
	}{
		{`print x`, 6, false},
		{`print "ab`, 9, true},
		{`print "ab" + x`, 13, false},
		{`print "a\"b`, 11, true},
		{`print 'c`, 8, true},
		{`x # note`, 5, true},
		{`"#" + x`, 6, false},
	}

	for _, tt := range tests {
		if got := inLiteral(tt.input, tt.offset); got != tt.want {
			t.Errorf("inLiteral(%q, %d) = %v, want %v", tt.input, tt.offset, got, tt.want)
		}
	}
}

func TestEvalCandidates(t *testing.T) {
	got := evalCandidates([]string{"alpha", "beta"})

	for _, want := range []string{"var", "print", "if", "else", "null", "and", "alpha", "beta"} {
		if !slices.Contains(got, want) {
			t.Errorf("candidates %v missing %q", got, want)
		}
	}
}

func TestRenderCandidateBar(t *testing.T) {
	if got := renderCandidateBar(nil, 0, false, 80); got != "" {
		t.Errorf("empty matches rendered %q", got)
	}
}
