package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_WriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), BaseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"var x = 1", modeEval},
		{"globals", modeCtrl},
		{"  print x", modeEval},
		{"  print x", modeEval}, // repeated last entry is dropped
		{"   ", modeEval},       // blank is ignored
	} {
		if err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "E:var x = 1\nC:globals\nE:  print x\n"; string(data) != want {
		t.Errorf("file %q, want %q", data, want)
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	got, err := loaded.Entry(2)
	if err != nil || got != (HistoryEntry{"  print x", modeEval}) {
		t.Errorf("Entry(2) = %v, %v", got, err)
	}

	if _, err := loaded.Entry(3); err != ErrOutOfBounds {
		t.Errorf("Entry(3) err = %v", err)
	}
}

func TestHistory_DuplicateMovesToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), BaseHistory)
	h := NewHistory(path)

	for _, line := range []string{"a", "b", "a"} {
		if err := h.Write(line, modeEval); err != nil {
			t.Fatal(err)
		}
	}

	entries := h.Entries()
	if len(entries) != 2 || entries[0].Line != "b" || entries[1].Line != "a" {
		t.Errorf("entries %v", entries)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "E:b\nE:a\n" {
		t.Errorf("file %q", data)
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")

	if err := h.Write("print 1", modeEval); err != nil {
		t.Fatal(err)
	}

	if err := h.Load(); err != nil || h.Len() != 1 {
		t.Errorf("Load = %v, Len = %d", err, h.Len())
	}
}
