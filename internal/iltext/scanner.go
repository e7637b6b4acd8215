package iltext

import (
	"strings"

	"github.com/splanck/vipc/internal/source"
)

// tokKind discriminates the handful of lexical shapes the IL text form
// needs; there is no dialect variation here, so unlike internal/lexer this
// is a single flat token set (spec §4.7, §6 "IL textual form").
type tokKind int

const (
	tokEOF tokKind = iota
	tokNewline
	tokIdent  // bare word: keywords, opcodes, type names, block labels
	tokGlobal // @name
	tokLocal  // %name
	tokNumber
	tokString
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokComma
	tokColon
	tokArrow // ->
	tokEquals
)

type token struct {
	kind tokKind
	text string // spelling without sigil for tokGlobal/tokLocal
	loc  source.Loc
}

// scanner turns IL text into a flat token stream. Comments start with ';'
// and run to end of line (spec §6); newlines are significant tokens since
// instructions are line-oriented.
type scanner struct {
	file   source.FileID
	src    string
	pos    int
	line   uint32
	col    uint32
}

func newScanner(file source.FileID, src string) *scanner {
	return &scanner{file: file, src: src, pos: 0, line: 1, col: 1}
}

func (s *scanner) loc() source.Loc {
	return source.Loc{File: s.file, Line: s.line, Column: s.col}
}

func (s *scanner) peekByte() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) advanceByte() byte {
	b := s.src[s.pos]
	s.pos++
	if b == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return b
}

// next returns the next token, skipping whitespace (other than newline)
// and comments.
func (s *scanner) next() token {
	for {
		switch s.peekByte() {
		case ' ', '\t', '\r':
			s.advanceByte()
			continue
		case ';':
			for s.pos < len(s.src) && s.peekByte() != '\n' {
				s.advanceByte()
			}
			continue
		}
		break
	}

	loc := s.loc()
	if s.pos >= len(s.src) {
		return token{kind: tokEOF, loc: loc}
	}

	b := s.peekByte()
	switch {
	case b == '\n':
		s.advanceByte()
		return token{kind: tokNewline, loc: loc}
	case b == '(':
		s.advanceByte()
		return token{kind: tokLParen, loc: loc}
	case b == ')':
		s.advanceByte()
		return token{kind: tokRParen, loc: loc}
	case b == '{':
		s.advanceByte()
		return token{kind: tokLBrace, loc: loc}
	case b == '}':
		s.advanceByte()
		return token{kind: tokRBrace, loc: loc}
	case b == ',':
		s.advanceByte()
		return token{kind: tokComma, loc: loc}
	case b == ':':
		s.advanceByte()
		return token{kind: tokColon, loc: loc}
	case b == '=':
		s.advanceByte()
		return token{kind: tokEquals, loc: loc}
	case b == '-' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '>':
		s.advanceByte()
		s.advanceByte()
		return token{kind: tokArrow, loc: loc}
	case b == '@':
		s.advanceByte()
		return token{kind: tokGlobal, text: s.scanName(), loc: loc}
	case b == '%':
		s.advanceByte()
		return token{kind: tokLocal, text: s.scanName(), loc: loc}
	case b == '"':
		return s.scanString(loc)
	case isDigit(b) || (b == '-' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1])):
		return s.scanNumber(loc)
	case isIdentStart(b):
		return token{kind: tokIdent, text: s.scanIdent(), loc: loc}
	default:
		s.advanceByte()
		return token{kind: tokIdent, text: string(b), loc: loc}
	}
}

func (s *scanner) scanName() string {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.advanceByte()
	}
	return s.src[start:s.pos]
}

func (s *scanner) scanIdent() string {
	start := s.pos
	for s.pos < len(s.src) && (isIdentPart(s.src[s.pos]) || s.src[s.pos] == '.') {
		s.advanceByte()
	}
	return s.src[start:s.pos]
}

func (s *scanner) scanNumber(loc source.Loc) token {
	start := s.pos
	if s.peekByte() == '-' {
		s.advanceByte()
	}
	for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '.' || s.src[s.pos] == 'e' || s.src[s.pos] == 'E' ||
		((s.src[s.pos] == '+' || s.src[s.pos] == '-') && s.pos > start && (s.src[s.pos-1] == 'e' || s.src[s.pos-1] == 'E'))) {
		s.advanceByte()
	}
	return token{kind: tokNumber, text: s.src[start:s.pos], loc: loc}
}

func (s *scanner) scanString(loc source.Loc) token {
	s.advanceByte() // opening quote
	var sb strings.Builder
	for s.pos < len(s.src) && s.peekByte() != '"' && s.peekByte() != '\n' {
		b := s.advanceByte()
		if b == '\\' && s.pos < len(s.src) {
			sb.WriteByte(s.advanceByte())
			continue
		}
		sb.WriteByte(b)
	}
	if s.peekByte() == '"' {
		s.advanceByte()
	}
	return token{kind: tokString, text: sb.String(), loc: loc}
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool { return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isIdentPart(b byte) bool  { return isIdentStart(b) || isDigit(b) }
