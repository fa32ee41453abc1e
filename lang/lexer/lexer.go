// Package lexer converts seth source text into a flat token sequence.
//
// Scanning never fails outright. Lexical errors are sent to the
// [diag.Reporter] and scanning resumes after the offending text, so a
// whole file is diagnosed in one pass. The sequence always ends with a
// single [token.Eof].
//
// Block structure is carried by [token.Indent] tokens: every non-blank line
// after a newline starts with exactly one Indent whose level is the number
// of leading tabs.
package lexer

import (
	"context"
	"log/slog"
	"strconv"
	"unicode"

	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/token"
	"github.com/ardnew/seth/log"
)

// Option configures tokenization.
type Option func(*lexer)

// WithLogger sets the logger receiving trace events.
func WithLogger(logger log.Logger) Option {
	return func(l *lexer) { l.logger = logger }
}

// WithContext sets the context passed to the logger.
func WithContext(ctx context.Context) Option {
	return func(l *lexer) { l.ctx = ctx }
}

type lexer struct {
	ctx    context.Context
	logger log.Logger
	rep    *diag.Reporter

	src       []rune
	start     int // first rune of the token being scanned
	cur       int // next rune to read
	lineStart int // first rune of the current line
	line      int

	tokens []token.Token
}

// Tokenize scans source and returns its tokens. Lexical errors are reported
// to rep; a nil rep records them silently.
func Tokenize(source string, rep *diag.Reporter, opts ...Option) []token.Token {
	if rep == nil {
		rep = diag.Discard()
	}

	l := &lexer{
		ctx:  context.Background(),
		rep:  rep,
		src:  []rune(source),
		line: 1,
	}

	for _, opt := range opts {
		opt(l)
	}

	l.logger.TraceContext(l.ctx, "tokenize", slog.Int("runes", len(l.src)))

	for !l.atEnd() {
		l.start = l.cur
		l.scan()
	}

	l.start = l.cur
	l.emit(token.Eof)

	l.logger.TraceContext(l.ctx, "tokenized",
		slog.Int("tokens", len(l.tokens)),
		slog.Int("lines", l.line),
	)

	return l.tokens
}

func (l *lexer) scan() {
	if sym, n, ok := matchOperator(l.src[l.cur:]); ok {
		l.cur += n
		l.emit(sym)

		return
	}

	c := l.advance()

	switch {
	case c == '\n':
		l.newline()

	case c == '\t':
		l.tab()

	case c == ' ', c == '\r':

	case c == '"':
		l.text('"', diag.ErrUnfinishedString)

	case c == '\'':
		l.text('\'', diag.ErrUnfinishedCharacter)

	case c == '#':
		l.comment()

	case isDigit(c):
		l.number()

	case isAlpha(c):
		l.identifier()

	default:
		l.rep.Lexical(l.line, diag.ErrUnknownCharacter.With(slog.String("char", strconv.QuoteRune(c))))
	}
}

func (l *lexer) atEnd() bool { return l.cur >= len(l.src) }

func (l *lexer) advance() rune {
	c := l.src[l.cur]
	l.cur++

	return c
}

// peek returns the rune n positions ahead of the cursor, or 0 past the end.
func (l *lexer) peek(n int) rune {
	if l.cur+n >= len(l.src) {
		return 0
	}

	return l.src[l.cur+n]
}

func (l *lexer) lexeme() string { return string(l.src[l.start:l.cur]) }

func (l *lexer) emit(kind token.Kind) {
	l.emitLexeme(kind, l.lexeme())
}

func (l *lexer) emitLexeme(kind token.Kind, lexeme string) {
	l.tokens = append(l.tokens, token.New(kind, lexeme, l.line))
}

func (l *lexer) newline() {
	l.emit(token.Newline)

	l.line++
	l.lineStart = l.cur

	if !l.blankLine() {
		l.emitLexeme(token.Indent(0), "")
	}
}

// tab deepens the indentation of the current line. Tabs that are not part
// of the leading run, or that sit on a blank line, carry no meaning.
func (l *lexer) tab() {
	for _, c := range l.src[l.lineStart : l.cur-1] {
		if c != '\t' {
			return
		}
	}

	if n := len(l.tokens); n > 0 {
		last := &l.tokens[n-1]
		if level, ok := last.IndentLevel(); ok {
			last.Kind = token.Indent(level + 1)
			last.Lexeme += "\t"

			return
		}
	}

	if !l.blankLine() {
		l.emit(token.Indent(1))
	}
}

// blankLine reports whether the rest of the current line holds nothing but
// whitespace and an optional comment before the next newline. Whitespace
// running into the end of input also counts as blank, but the end of input
// itself does not.
func (l *lexer) blankLine() bool {
	i := l.cur

	for i < len(l.src) && isSpace(l.src[i]) {
		i++
	}

	if i < len(l.src) && l.src[i] == '#' {
		for i < len(l.src) && l.src[i] != '\n' {
			i++
		}
	}

	if i >= len(l.src) {
		return i > l.cur
	}

	return l.src[i] == '\n'
}

// text scans a quoted literal terminated by quote, decoding escapes.
func (l *lexer) text(quote rune, unfinished *diag.Error) {
	var buf []rune

	for {
		c := l.peek(0)

		switch {
		case l.atEnd(), c == '\n':
			l.rep.Lexical(l.line, unfinished)

			return

		case c == quote:
			l.cur++
			l.literal(quote, buf)

			return

		case c == '\\':
			buf = append(buf, l.escape())

		default:
			buf = append(buf, l.advance())
		}
	}
}

func (l *lexer) literal(quote rune, content []rune) {
	if quote == '"' {
		l.emit(token.String(content))

		return
	}

	if len(content) != 1 {
		l.rep.Lexical(l.line, diag.ErrCharacterSize.With(slog.String("lexeme", l.lexeme())))

		return
	}

	l.emit(token.Character(content[0]))
}

var escapes = map[rune]rune{
	'0':  0,
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// escape consumes a backslash sequence at the cursor. An unrecognized
// sequence yields the backslash itself and leaves the next rune unread.
func (l *lexer) escape() rune {
	if dec, ok := escapes[l.peek(1)]; ok {
		l.cur += 2

		return dec
	}

	return l.advance()
}

func (l *lexer) comment() {
	for !l.atEnd() && l.peek(0) != '\n' {
		l.cur++
	}

	if l.atEnd() {
		l.rep.Lexical(l.line, diag.ErrUnfinishedComment)

		return
	}

	l.emit(token.Comment(l.src[l.start+1 : l.cur]))
}

func (l *lexer) number() {
	for isDigit(l.peek(0)) {
		l.cur++
	}

	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.cur++

		for isDigit(l.peek(0)) {
			l.cur++
		}

		f, err := strconv.ParseFloat(l.lexeme(), 64)
		if err != nil {
			l.rep.Lexical(l.line, diag.WrapError(err))

			return
		}

		l.emit(token.Floating(f))

		return
	}

	n, err := strconv.ParseInt(l.lexeme(), 10, 64)
	if err != nil {
		l.rep.Lexical(l.line, diag.ErrIntegerRange.With(slog.String("lexeme", l.lexeme())))

		return
	}

	l.emit(token.Integer(n))
}

func (l *lexer) identifier() {
	for isAlpha(l.peek(0)) || isDigit(l.peek(0)) {
		l.cur++
	}

	word := l.lexeme()

	if kind, ok := token.Keyword(word); ok {
		l.emit(kind)

		return
	}

	l.emit(token.Identifier(word))
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }
func isAlpha(c rune) bool { return c == '_' || unicode.IsLetter(c) }
func isSpace(c rune) bool { return c == ' ' || c == '\t' || c == '\r' }
