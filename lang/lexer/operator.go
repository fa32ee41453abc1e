package lexer

import "github.com/ardnew/seth/lang/token"

type operator struct {
	text []rune
	sym  token.Symbol
}

// operators is ordered longest first so that "**=" is never read as "**"
// followed by "=".
var operators = []operator{
	{[]rune(">>="), token.GreaterGreaterEqual},
	{[]rune("<<="), token.LessLessEqual},
	{[]rune("**="), token.StarStarEqual},

	{[]rune("+="), token.PlusEqual},
	{[]rune("-="), token.MinusEqual},
	{[]rune("*="), token.StarEqual},
	{[]rune("/="), token.SlashEqual},
	{[]rune("%="), token.PercentEqual},
	{[]rune("&="), token.AmpersandEqual},
	{[]rune("|="), token.PipeEqual},
	{[]rune("^="), token.CaretEqual},
	{[]rune(">>"), token.GreaterGreater},
	{[]rune("<<"), token.LessLess},
	{[]rune("=="), token.EqualEqual},
	{[]rune("!="), token.NotEqual},
	{[]rune(">="), token.GreaterEqual},
	{[]rune("<="), token.LessEqual},
	{[]rune("**"), token.StarStar},
	{[]rune(".."), token.PeriodPeriod},
	{[]rune("->"), token.Arrow},

	{[]rune("="), token.Equal},
	{[]rune("&"), token.Ampersand},
	{[]rune("|"), token.Pipe},
	{[]rune("^"), token.Caret},
	{[]rune("!"), token.Bang},
	{[]rune("@"), token.AtSign},
	{[]rune(">"), token.Greater},
	{[]rune("<"), token.Less},
	{[]rune("+"), token.Plus},
	{[]rune("-"), token.Minus},
	{[]rune("*"), token.Star},
	{[]rune("/"), token.Slash},
	{[]rune("%"), token.Percent},
	{[]rune("("), token.ParenOpen},
	{[]rune(")"), token.ParenClose},
	{[]rune("["), token.BracketOpen},
	{[]rune("]"), token.BracketClose},
	{[]rune("{"), token.BraceOpen},
	{[]rune("}"), token.BraceClose},
	{[]rune("$"), token.Dollar},
	{[]rune("."), token.Period},
	{[]rune(","), token.Comma},
	{[]rune(":"), token.Colon},
	{[]rune(";"), token.Semicolon},
	{[]rune("?"), token.QuestionMark},
}

// matchOperator returns the longest operator prefixing src and its length
// in runes.
func matchOperator(src []rune) (token.Symbol, int, bool) {
	for _, op := range operators {
		if hasPrefix(src, op.text) {
			return op.sym, len(op.text), true
		}
	}

	return 0, 0, false
}

func hasPrefix(src, prefix []rune) bool {
	if len(src) < len(prefix) {
		return false
	}

	for i, c := range prefix {
		if src[i] != c {
			return false
		}
	}

	return true
}
