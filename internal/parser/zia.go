package parser

import (
	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/lexer"
)

// ZiaParser is a ViperParser whose match-arm patterns are parsed
// speculatively: Zia's grammar lets a pattern and an ordinary expression
// start identically (e.g. "Name(a, b)" reads as either a constructor
// pattern or a call), so committing to the pattern grammar and rolling
// back to a plain expression/binding on failure is cheaper than
// unifying the two grammars into one (spec §4.4 "Zia speculation").
type ZiaParser struct {
	*ViperParser
}

// NewZia returns a parser reading lex through em.
func NewZia(lex *lexer.Lexer, em *diag.Emitter) *ZiaParser {
	v := &ViperParser{Base: NewBase(lex, em), zia: true}
	z := &ZiaParser{ViperParser: v}
	v.patternFn = z.parsePattern
	return z
}

// parsePattern wraps ViperParser.parsePattern in a speculation scope: on
// any error, roll back and fall back to the most permissive pattern a
// bare token can mean (a binding, or wildcard for anything else), rather
// than leaving the token stream at whatever point the failed pattern
// parse abandoned it.
func (z *ZiaParser) parsePattern() ast.Pattern {
	hadErrorBefore := z.HasError()
	mark := z.BeginSpeculation()
	pat := z.ViperParser.parsePattern()
	failed := z.HasError() && !hadErrorBefore
	if failed {
		z.Rollback(mark)
		if z.Cur().Kind == lexer.Ident {
			name, _ := z.ExpectIdent(z.code("1500"))
			return ast.Pattern{Kind: ast.PatBinding, Name: name}
		}
		z.Advance()
		return ast.Pattern{Kind: ast.PatWildcard}
	}
	z.Commit(mark)
	return pat
}
