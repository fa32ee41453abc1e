package repl

import "strings"

// indentWidth is the number of leading spaces typed for one block level.
// The prompt input cannot take a literal tab, which completes instead.
const indentWidth = 2

// entry accumulates the lines of one submission. A line ending with ':'
// opens a block, and the lines after it are collected until an empty line.
type entry struct {
	lines []string
}

// add appends line and reports whether the entry is complete.
func (e *entry) add(line string) bool {
	if len(e.lines) > 0 && strings.TrimSpace(line) == "" {
		return true
	}

	e.lines = append(e.lines, normalizeIndent(line))

	return !opensBlock(e.lines[0])
}

// pending reports whether a block is open.
func (e *entry) pending() bool { return len(e.lines) > 0 }

// source returns the newline-terminated source of the entry.
func (e *entry) source() string {
	return strings.Join(e.lines, "\n") + "\n"
}

func (e *entry) reset() { e.lines = e.lines[:0] }

// normalizeIndent converts the leading whitespace of line to one tab per
// block level. Each tab and each indentWidth spaces count as one level.
func normalizeIndent(line string) string {
	rest := strings.TrimLeft(line, " \t")
	lead := line[:len(line)-len(rest)]
	level := strings.Count(lead, "\t") + strings.Count(lead, " ")/indentWidth

	return strings.Repeat("\t", level) + rest
}

// opensBlock reports whether the code of line, ignoring any comment, ends
// with ':'.
func opensBlock(line string) bool {
	return strings.HasSuffix(strings.TrimRight(code(line), " \t"), ":")
}

// code returns line up to the first '#' outside a literal.
func code(line string) string {
	if comment, _ := scan(line); comment >= 0 {
		return line[:comment]
	}

	return line
}

// scan returns the offset of the comment in line, or -1, and the quote of
// the literal left open at the end of line, or 0.
func scan(line string) (comment int, quote byte) {
	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '"' || c == '\''):
			quote = c
		case quote == 0 && c == '#':
			return i, 0
		}
	}

	return -1, quote
}
