// Package lexer implements spec §4.3: one configurable scanner shared by
// all four dialects (BASIC, Pascal, ViperLang, Zia), parametrized by a
// per-dialect Config so each dialect's comment style, quoting rule,
// case-folding policy, and keyword table plug into the same token-reading
// core — the textual analogue of internal/semantic's single Analyzer
// driven by a per-dialect Policy.
package lexer

import "github.com/splanck/vipc/internal/source"

// Kind discriminates token shapes (spec §3 "Token").
type Kind int

const (
	EOF Kind = iota
	Ident
	Keyword
	IntLit
	NumberLit
	StringLit
	StringStart // opening segment of an interpolated string, up to '${'
	StringMid   // segment between two interpolations, after a closing '}'
	StringEnd   // closing segment of an interpolated string
	Punct       // operator/punctuation spelled out in Text, e.g. "+", ":="
	Newline
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case Keyword:
		return "keyword"
	case IntLit:
		return "integer literal"
	case NumberLit:
		return "number literal"
	case StringLit:
		return "string literal"
	case StringStart:
		return "string start"
	case StringMid:
		return "string middle"
	case StringEnd:
		return "string end"
	case Punct:
		return "punctuation"
	case Newline:
		return "newline"
	default:
		return "unknown"
	}
}

// Token is spec §3's Token: original spelling, case-folded canonical form
// (identical to Text where the dialect is case-sensitive), and whichever
// of the numeric/string payloads applies to Kind.
type Token struct {
	Kind      Kind
	Text      string // original spelling
	Canonical string // case-folded where the dialect folds identifiers/keywords
	IntValue  int64
	NumValue  float64
	StrValue  string
	Loc       source.Loc
	Malformed bool // numeric/string literal recovered from a lexical error
}
