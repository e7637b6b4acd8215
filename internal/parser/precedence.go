package parser

import (
	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/lexer"
)

// binOp describes one binary operator recognized at expression position:
// the AST operator it produces and its precedence level (higher binds
// tighter).
type binOp struct {
	op    ast.BinaryOp
	level int
}

// opTable maps a token's spelling (Punct text or Keyword canonical form)
// to its binOp. Shared shape for every dialect's operator table; each
// dialect builds its own instance since dialects vary in spelling
// ("and"/"&&", "div"/"/").
type opTable map[string]binOp

// climbBinary implements spec §4.4 precedence climbing: parseOperand
// parses one operand (everything from unary through primary), table
// maps the current token to an operator, and floor is the precedence
// below which climbing stops and control returns to the caller.
func climbBinary(b *Base, floor int, table opTable, parseOperand func() ast.Expr) ast.Expr {
	left := parseOperand()
	for {
		key := opKey(b.Cur())
		info, ok := table[key]
		if !ok || info.level < floor {
			return left
		}
		loc := b.Cur().Loc
		b.Advance()
		right := climbBinary(b, info.level+1, table, parseOperand)
		node := ast.NewBinaryExpr(loc, info.op, left, right)
		left = node
	}
}

// opKey is the table lookup key for the current token: its punctuation
// spelling, or its case-folded keyword spelling.
func opKey(t lexer.Token) string {
	switch t.Kind {
	case lexer.Punct:
		return t.Text
	case lexer.Keyword:
		return t.Canonical
	default:
		return ""
	}
}
