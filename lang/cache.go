package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/seth/lang/ast"
	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/lexer"
	"github.com/ardnew/seth/lang/parser"
	"github.com/ardnew/seth/lang/token"
)

// globalCache stores parsed programs keyed by source hash. Only sources
// that produced no diagnostics are stored, so a broken source is diagnosed
// again every time it is parsed.
var globalCache sync.Map

func sourceKey(source string) string {
	return strconv.FormatUint(xxh3.HashString(source), 36)
}

// Tokenize scans source, reporting lexical errors to rep.
func Tokenize(ctx context.Context, source string, rep *diag.Reporter, opts ...Option) []token.Token {
	o := makeOptions(opts...)

	return lexer.Tokenize(source, rep, lexer.WithLogger(o.logger), lexer.WithContext(ctx))
}

// Parse tokenizes and parses source, reporting lexical and syntax errors to
// rep. The program of an error-free source is cached.
func Parse(ctx context.Context, source string, rep *diag.Reporter, opts ...Option) ast.Program {
	if rep == nil {
		rep = diag.Discard()
	}

	o := makeOptions(opts...)

	if !o.cache {
		return parse(ctx, source, rep, o)
	}

	key := sourceKey(source)

	cached, hit := globalCache.Load(key)

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_key", key),
		slog.Bool("cache_hit", hit),
	)

	if hit {
		if prog, ok := cached.(ast.Program); ok {
			return prog
		}
	}

	before := rep.Count()
	prog := parse(ctx, source, rep, o)

	if rep.Count() == before {
		globalCache.Store(key, prog)
	}

	return prog
}

func parse(ctx context.Context, source string, rep *diag.Reporter, o options) ast.Program {
	tokens := lexer.Tokenize(source, rep, lexer.WithLogger(o.logger), lexer.WithContext(ctx))

	return parser.Parse(tokens, rep, parser.WithLogger(o.logger), parser.WithContext(ctx))
}

// ClearCache removes all cached programs.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
