// Package lang runs seth source end to end.
//
// seth is a small dynamically-typed scripting language with
// indentation-delimited blocks:
//
//	var total = 0
//	if total == 0:
//		total += 2 ** 10
//		print total
//	else:
//		print "unreachable"
//
// Source flows through three stages, each in its own package:
//
//   - lexer.Tokenize turns text into tokens.
//   - parser.Parse builds a program of statements.
//   - an interp.Interpreter executes the program.
//
// A [Session] strings the stages together for one persistent global scope.
// Every stage reports defects to a shared diag.Reporter rather than
// stopping at the first one. A program is only interpreted when no lexical
// or syntax error was found.
//
// [Parse] caches the programs of error-free sources by content hash, so
// repeatedly executed sources are tokenized and parsed once.
package lang
