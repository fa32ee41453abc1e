package token

// Symbol is a payload-free token kind: punctuation, operators, keywords and
// the structural Newline and Eof markers.
type Symbol int

const (
	// Assignment.
	Equal Symbol = iota
	PlusEqual
	MinusEqual
	StarEqual
	SlashEqual
	PercentEqual
	StarStarEqual
	AmpersandEqual
	PipeEqual
	CaretEqual
	GreaterGreaterEqual
	LessLessEqual

	// Bitwise.
	Ampersand
	Pipe
	Caret
	Bang
	GreaterGreater
	LessLess

	// Comparison.
	Greater
	Less
	EqualEqual
	NotEqual
	GreaterEqual
	LessEqual

	// Arithmetic.
	Plus
	Minus
	Star
	Slash
	Percent
	StarStar

	// Grouping.
	ParenOpen
	ParenClose
	BracketOpen
	BracketClose
	BraceOpen
	BraceClose

	// Punctuation.
	AtSign
	Dollar
	Period
	PeriodPeriod
	Comma
	Colon
	Semicolon
	QuestionMark
	Arrow

	// Keywords.
	Var
	Print
	If
	Else
	Null
	Not
	And
	Or

	// Structure.
	Newline
	Eof

	symbolCount
)

var symbolName = [symbolCount]string{
	Equal:               "Equal",
	PlusEqual:           "PlusEqual",
	MinusEqual:          "MinusEqual",
	StarEqual:           "StarEqual",
	SlashEqual:          "SlashEqual",
	PercentEqual:        "PercentEqual",
	StarStarEqual:       "StarStarEqual",
	AmpersandEqual:      "AmpersandEqual",
	PipeEqual:           "PipeEqual",
	CaretEqual:          "CaretEqual",
	GreaterGreaterEqual: "GreaterGreaterEqual",
	LessLessEqual:       "LessLessEqual",
	Ampersand:           "Ampersand",
	Pipe:                "Pipe",
	Caret:               "Caret",
	Bang:                "Bang",
	GreaterGreater:      "GreaterGreater",
	LessLess:            "LessLess",
	Greater:             "Greater",
	Less:                "Less",
	EqualEqual:          "EqualEqual",
	NotEqual:            "NotEqual",
	GreaterEqual:        "GreaterEqual",
	LessEqual:           "LessEqual",
	Plus:                "Plus",
	Minus:               "Minus",
	Star:                "Star",
	Slash:               "Slash",
	Percent:             "Percent",
	StarStar:            "StarStar",
	ParenOpen:           "ParenOpen",
	ParenClose:          "ParenClose",
	BracketOpen:         "BracketOpen",
	BracketClose:        "BracketClose",
	BraceOpen:           "BraceOpen",
	BraceClose:          "BraceClose",
	AtSign:              "AtSign",
	Dollar:              "Dollar",
	Period:              "Period",
	PeriodPeriod:        "PeriodPeriod",
	Comma:               "Comma",
	Colon:               "Colon",
	Semicolon:           "Semicolon",
	QuestionMark:        "QuestionMark",
	Arrow:               "Arrow",
	Var:                 "Var",
	Print:               "Print",
	If:                  "If",
	Else:                "Else",
	Null:                "Null",
	Not:                 "Not",
	And:                 "And",
	Or:                  "Or",
	Newline:             "Newline",
	Eof:                 "Eof",
}

// String returns the symbol name.
func (s Symbol) String() string {
	if s < 0 || s >= symbolCount {
		return "Symbol(?)"
	}

	return symbolName[s]
}

// compound maps each compound assignment operator to the binary operator it
// applies before assigning.
var compound = map[Symbol]Symbol{
	PlusEqual:           Plus,
	MinusEqual:          Minus,
	StarEqual:           Star,
	SlashEqual:          Slash,
	PercentEqual:        Percent,
	StarStarEqual:       StarStar,
	AmpersandEqual:      Ampersand,
	PipeEqual:           Pipe,
	CaretEqual:          Caret,
	GreaterGreaterEqual: GreaterGreater,
	LessLessEqual:       LessLess,
}

// Assignments lists every assignment operator, plain and compound.
var Assignments = []Symbol{
	Equal,
	PlusEqual, MinusEqual, StarEqual, SlashEqual, PercentEqual, StarStarEqual,
	AmpersandEqual, PipeEqual, CaretEqual, GreaterGreaterEqual, LessLessEqual,
}

// Compound returns the binary operator underlying a compound assignment.
// It reports false for plain '=' and for non-assignment symbols.
func (s Symbol) Compound() (Symbol, bool) {
	op, ok := compound[s]

	return op, ok
}

// keywords maps reserved words to their token kind. Only words with a
// statement or expression form are reserved; everything else lexes as an
// identifier.
var keywords = map[string]Kind{
	"var":   Var,
	"print": Print,
	"if":    If,
	"else":  Else,
	"null":  Null,
	"not":   Not,
	"and":   And,
	"or":    Or,
	"true":  Boolean(true),
	"false": Boolean(false),
}

// Keyword returns the kind reserved for word, if any.
func Keyword(word string) (Kind, bool) {
	k, ok := keywords[word]

	return k, ok
}

// Keywords returns every reserved word.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}

	return words
}
