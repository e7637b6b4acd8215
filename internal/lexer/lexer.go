package lexer

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/source"
)

// commentPair is one block-comment delimiter pair, e.g. "/*".."*/" or
// Pascal's "{".."}"
type commentPair struct {
	open, close string
	nested      bool
}

// Config bundles everything that varies by dialect (spec §4.3): comment
// styles, string quoting, interpolation support, case folding, the
// keyword table, and the dialect-scoped error-code prefix.
type Config struct {
	CodePrefix    string // "B", "P", "V", "Z"
	CaseFold      bool
	Keywords      keywordTable
	StringQuote   byte // '"' or '\''
	TripleQuoted  bool
	Interpolation bool
	LineComments  []string
	BlockComments []commentPair
	HexPrefixes   []string // e.g. {"0x", "$"}
	BinPrefix     string   // e.g. "0b"
}

// BasicConfig is the lexer configuration for the BASIC dialect: `//` and
// `/* */` comments, double-quoted strings, case-insensitive keywords, no
// interpolation (spec §4.3).
func BasicConfig() Config {
	return Config{
		CodePrefix:   "B",
		CaseFold:     true,
		Keywords:     basicKeywords,
		StringQuote:  '"',
		LineComments: []string{"//"},
		BlockComments: []commentPair{
			{open: "/*", close: "*/"},
		},
		HexPrefixes: []string{"0x", "$"},
		BinPrefix:   "0b",
	}
}

// PascalConfig is the lexer configuration for the Pascal dialect: `{ }`
// and `(* *)` comments, single-quoted strings, case-insensitive keywords.
func PascalConfig() Config {
	return Config{
		CodePrefix:  "P",
		CaseFold:    true,
		Keywords:    pascalKeywords,
		StringQuote: '\'',
		LineComments: []string{"//"},
		BlockComments: []commentPair{
			{open: "{", close: "}"},
			{open: "(*", close: "*)"},
		},
		HexPrefixes: []string{"$", "0x"},
		BinPrefix:   "0b",
	}
}

// ViperConfig is the lexer configuration for ViperLang: nested block
// comments, double-quoted strings with interpolation and triple-quoted
// verbatim strings, case-sensitive identifiers.
func ViperConfig() Config {
	return Config{
		CodePrefix:   "V",
		CaseFold:     false,
		Keywords:     viperKeywords,
		StringQuote:  '"',
		TripleQuoted: true,
		Interpolation: true,
		LineComments: []string{"//"},
		BlockComments: []commentPair{
			{open: "/*", close: "*/", nested: true},
		},
		HexPrefixes: []string{"0x"},
		BinPrefix:   "0b",
	}
}

// ZiaConfig is the lexer configuration for Zia, identical to ViperLang's
// lexical contract (spec §9 Open Questions notes the two dialects are
// near-identical at the lexical level); a distinct dialect-scoped error
// prefix is all that differs here.
func ZiaConfig() Config {
	cfg := ViperConfig()
	cfg.CodePrefix = "Z"
	cfg.Keywords = ziaKeywords
	return cfg
}

// Lexer is the shared scanner core every dialect configures (spec §4.3).
// It owns a copy of the source text, tracks line/column (1-based, column
// resets on '\n'), and guarantees one-token lookahead via Peek.
type Lexer struct {
	cfg  Config
	file source.FileID
	em   *diag.Emitter
	src  string
	pos  int
	line uint32
	col  uint32

	peeked *Token

	// Interpolation state: parallel stacks so a string literal that
	// itself appears inside an embedded expression (nested
	// interpolation) resumes the correct outer frame (spec §4.3).
	quoteStack []byte
	depthStack []int
}

// New constructs a Lexer over src, registered as file in the emitter's
// source manager, configured per cfg.
func New(cfg Config, file source.FileID, src string, em *diag.Emitter) *Lexer {
	return &Lexer{cfg: cfg, file: file, em: em, src: src, line: 1, col: 1}
}

func (l *Lexer) loc() source.Loc {
	return source.Loc{File: l.file, Line: l.line, Column: l.col}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

// Peek returns the next token without consuming it. One-token lookahead
// is guaranteed (spec §4.3).
func (l *Lexer) Peek() Token {
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}
	return *l.peeked
}

// Next returns the next token, yielding Eof indefinitely once the source
// is exhausted (spec §4.3).
func (l *Lexer) Next() Token {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t
	}
	return l.scan()
}

func (l *Lexer) tok(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text, Canonical: l.fold(text), Loc: l.loc()}
}

var caseFolder = cases.Fold()

// fold returns s's canonical spelling: Unicode case-folded for dialects
// whose keywords/identifiers are case-insensitive (BASIC, Pascal), the
// literal spelling otherwise. Uses x/text/cases rather than strings.ToLower
// so folding is locale-independent; identifiers themselves are ASCII-only
// (see isIdentStart/isIdentPart).
func (l *Lexer) fold(s string) string {
	if l.cfg.CaseFold {
		return caseFolder.String(s)
	}
	return s
}

func (l *Lexer) hasPrefixAt(s string) bool {
	return strings.HasPrefix(l.src[l.pos:], s)
}

func (l *Lexer) scan() Token {
	for {
		if l.pos >= len(l.src) {
			return l.tok(EOF, "")
		}
		c := l.peekByte()

		if c == ' ' || c == '\t' || c == '\r' {
			l.advance()
			continue
		}
		if c == '\n' {
			loc := l.loc()
			l.advance()
			return Token{Kind: Newline, Text: "\n", Loc: loc}
		}
		if l.atLineComment() {
			l.skipLineComment()
			continue
		}
		if op, close, nested, ok := l.atBlockCommentOpen(); ok {
			l.skipBlockComment(op, close, nested)
			continue
		}

		// Resuming an active interpolation frame: a '}' at the frame's
		// own brace depth closes the embedded expression and returns to
		// string lexing.
		if c == '}' && len(l.depthStack) > 0 && l.depthStack[len(l.depthStack)-1] == 0 {
			l.advance()
			return l.resumeString()
		}
		if len(l.depthStack) > 0 {
			if c == '{' {
				l.depthStack[len(l.depthStack)-1]++
			} else if c == '}' {
				l.depthStack[len(l.depthStack)-1]--
			}
		}

		if c == l.cfg.StringQuote {
			return l.scanStringLit()
		}
		if isDigit(c) {
			return l.scanNumber()
		}
		for _, prefix := range l.cfg.HexPrefixes {
			if !isDigit(prefix[0]) && l.hasPrefixAt(prefix) && isHexDigit(l.peekByteAt(len(prefix))) {
				return l.scanNumber()
			}
		}
		if isIdentStart(c) {
			return l.scanIdentOrKeyword()
		}
		return l.scanOperator()
	}
}

func (l *Lexer) atLineComment() bool {
	for _, lc := range l.cfg.LineComments {
		if l.hasPrefixAt(lc) {
			return true
		}
	}
	return false
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peekByte() != '\n' {
		l.advance()
	}
}

func (l *Lexer) atBlockCommentOpen() (open, close string, nested bool, ok bool) {
	for _, bc := range l.cfg.BlockComments {
		if l.hasPrefixAt(bc.open) {
			return bc.open, bc.close, bc.nested, true
		}
	}
	return "", "", false, false
}

// skipBlockComment consumes a block comment, reporting an unterminated
// comment as reaching EOF (spec §4.3).
func (l *Lexer) skipBlockComment(open, close string, nested bool) {
	startLoc := l.loc()
	for i := 0; i < len(open); i++ {
		l.advance()
	}
	depth := 1
	for depth > 0 {
		if l.pos >= len(l.src) {
			l.em.Emitf(diag.Error, l.code("0001"), startLoc, uint32(len(open)), "unterminated block comment")
			return
		}
		if nested && l.hasPrefixAt(open) {
			for i := 0; i < len(open); i++ {
				l.advance()
			}
			depth++
			continue
		}
		if l.hasPrefixAt(close) {
			for i := 0; i < len(close); i++ {
				l.advance()
			}
			depth--
			continue
		}
		l.advance()
	}
}

func (l *Lexer) code(suffix string) string {
	return l.cfg.CodePrefix + suffix
}

func (l *Lexer) scanIdentOrKeyword() Token {
	loc := l.loc()
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peekByte()) {
		l.advance()
	}
	text := l.src[start:l.pos]
	canon := l.fold(text)
	kind := Ident
	if l.cfg.Keywords.contains(canon) {
		kind = Keyword
	}
	return Token{Kind: kind, Text: text, Canonical: canon, Loc: loc}
}

// scanNumber reads decimal, hex, and binary integers and float/exponent
// numbers. A malformed literal still yields a token with a zero synthetic
// value so parsing continues (spec §4.3).
func (l *Lexer) scanNumber() Token {
	loc := l.loc()
	start := l.pos

	for _, prefix := range l.cfg.HexPrefixes {
		if l.hasPrefixAt(prefix) {
			for i := 0; i < len(prefix); i++ {
				l.advance()
			}
			digitsStart := l.pos
			for l.pos < len(l.src) && isHexDigit(l.peekByte()) {
				l.advance()
			}
			text := l.src[start:l.pos]
			if l.pos == digitsStart {
				l.em.Emitf(diag.Error, l.code("0002"), loc, uint32(len(text)), "malformed hexadecimal literal %q", text)
				return Token{Kind: IntLit, Text: text, Canonical: text, Loc: loc, Malformed: true}
			}
			v, err := strconv.ParseInt(l.src[digitsStart:l.pos], 16, 64)
			if err != nil {
				l.em.Emitf(diag.Error, l.code("0003"), loc, uint32(len(text)), "integer literal %q out of range", text)
				return Token{Kind: IntLit, Text: text, Canonical: text, Loc: loc, Malformed: true}
			}
			return Token{Kind: IntLit, Text: text, Canonical: text, IntValue: v, Loc: loc}
		}
	}
	if l.cfg.BinPrefix != "" && l.hasPrefixAt(l.cfg.BinPrefix) {
		prefix := l.cfg.BinPrefix
		for i := 0; i < len(prefix); i++ {
			l.advance()
		}
		digitsStart := l.pos
		for l.pos < len(l.src) && (l.peekByte() == '0' || l.peekByte() == '1') {
			l.advance()
		}
		text := l.src[start:l.pos]
		if l.pos == digitsStart {
			l.em.Emitf(diag.Error, l.code("0004"), loc, uint32(len(text)), "malformed binary literal %q", text)
			return Token{Kind: IntLit, Text: text, Canonical: text, Loc: loc, Malformed: true}
		}
		v, err := strconv.ParseInt(l.src[digitsStart:l.pos], 2, 64)
		if err != nil {
			l.em.Emitf(diag.Error, l.code("0003"), loc, uint32(len(text)), "integer literal %q out of range", text)
			return Token{Kind: IntLit, Text: text, Canonical: text, Loc: loc, Malformed: true}
		}
		return Token{Kind: IntLit, Text: text, Canonical: text, IntValue: v, Loc: loc}
	}

	for l.pos < len(l.src) && isDigit(l.peekByte()) {
		l.advance()
	}
	isFloat := false
	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		isFloat = true
		l.advance()
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			l.advance()
		}
	}
	if c := l.peekByte(); c == 'e' || c == 'E' {
		save := l.pos
		saveLine, saveCol := l.line, l.col
		l.advance()
		if c2 := l.peekByte(); c2 == '+' || c2 == '-' {
			l.advance()
		}
		if isDigit(l.peekByte()) {
			isFloat = true
			for l.pos < len(l.src) && isDigit(l.peekByte()) {
				l.advance()
			}
		} else {
			l.pos, l.line, l.col = save, saveLine, saveCol
		}
	}

	text := l.src[start:l.pos]
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.em.Emitf(diag.Error, l.code("0005"), loc, uint32(len(text)), "malformed number literal %q", text)
			return Token{Kind: NumberLit, Text: text, Canonical: text, Loc: loc, Malformed: true}
		}
		return Token{Kind: NumberLit, Text: text, Canonical: text, NumValue: v, Loc: loc}
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.em.Emitf(diag.Error, l.code("0003"), loc, uint32(len(text)), "integer literal %q out of range", text)
		return Token{Kind: IntLit, Text: text, Canonical: text, Loc: loc, Malformed: true}
	}
	return Token{Kind: IntLit, Text: text, Canonical: text, IntValue: v, Loc: loc}
}

// scanStringLit reads a new string literal starting at the current quote
// character, handling escapes, triple-quoted verbatim strings, and (for
// dialects that support it) `${` interpolation, per spec §4.3.
func (l *Lexer) scanStringLit() Token {
	loc := l.loc()
	quote := l.cfg.StringQuote

	if l.cfg.TripleQuoted && l.hasPrefixAt(strings.Repeat(string(quote), 3)) {
		return l.scanTripleQuoted(loc, quote)
	}

	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			l.em.Emitf(diag.Error, l.code("0006"), loc, 1, "unterminated string literal")
			return Token{Kind: StringLit, Text: sb.String(), StrValue: sb.String(), Loc: loc, Malformed: true}
		}
		c := l.peekByte()
		if c == quote {
			l.advance()
			return Token{Kind: StringLit, Text: sb.String(), StrValue: sb.String(), Loc: loc}
		}
		if c == '\n' {
			l.em.Emitf(diag.Error, l.code("0006"), loc, 1, "unterminated string literal")
			return Token{Kind: StringLit, Text: sb.String(), StrValue: sb.String(), Loc: loc, Malformed: true}
		}
		if c == '\\' {
			l.advance()
			sb.WriteByte(l.scanEscape())
			continue
		}
		if l.cfg.Interpolation && c == '$' && l.peekByteAt(1) == '{' {
			l.advance()
			l.advance()
			l.quoteStack = append(l.quoteStack, quote)
			l.depthStack = append(l.depthStack, 0)
			return Token{Kind: StringStart, Text: sb.String(), StrValue: sb.String(), Loc: loc}
		}
		sb.WriteByte(l.advance())
	}
}

// scanTripleQuoted reads a verbatim (no escape processing) multi-line
// string delimited by three quote characters (ViperLang/Zia).
func (l *Lexer) scanTripleQuoted(loc source.Loc, quote byte) Token {
	delim := strings.Repeat(string(quote), 3)
	for i := 0; i < 3; i++ {
		l.advance()
	}
	start := l.pos
	for {
		if l.pos >= len(l.src) {
			l.em.Emitf(diag.Error, l.code("0007"), loc, 1, "unterminated triple-quoted string")
			return Token{Kind: StringLit, Text: l.src[start:l.pos], StrValue: l.src[start:l.pos], Loc: loc, Malformed: true}
		}
		if l.hasPrefixAt(delim) {
			text := l.src[start:l.pos]
			for i := 0; i < 3; i++ {
				l.advance()
			}
			return Token{Kind: StringLit, Text: text, StrValue: text, Loc: loc}
		}
		l.advance()
	}
}

// resumeString continues lexing string text after an embedded
// interpolation expression's closing '}', producing StringMid if another
// `${` follows or StringEnd once the string's closing quote is reached.
func (l *Lexer) resumeString() Token {
	loc := l.loc()
	n := len(l.quoteStack)
	quote := l.quoteStack[n-1]
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			l.quoteStack = l.quoteStack[:n-1]
			l.depthStack = l.depthStack[:n-1]
			l.em.Emitf(diag.Error, l.code("0006"), loc, 1, "unterminated string literal")
			return Token{Kind: StringEnd, Text: sb.String(), StrValue: sb.String(), Loc: loc, Malformed: true}
		}
		c := l.peekByte()
		if c == quote {
			l.advance()
			l.quoteStack = l.quoteStack[:n-1]
			l.depthStack = l.depthStack[:n-1]
			return Token{Kind: StringEnd, Text: sb.String(), StrValue: sb.String(), Loc: loc}
		}
		if c == '\\' {
			l.advance()
			sb.WriteByte(l.scanEscape())
			continue
		}
		if c == '$' && l.peekByteAt(1) == '{' {
			l.advance()
			l.advance()
			l.depthStack[n-1] = 0
			return Token{Kind: StringMid, Text: sb.String(), StrValue: sb.String(), Loc: loc}
		}
		sb.WriteByte(l.advance())
	}
}

// scanEscape reads one escape sequence after a consumed backslash:
// \n \r \t \\ \" \' \0 \$ (spec §4.3). An unrecognized escape passes the
// character through unchanged.
func (l *Lexer) scanEscape() byte {
	if l.pos >= len(l.src) {
		return '\\'
	}
	c := l.advance()
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case '\\':
		return '\\'
	case '"':
		return '"'
	case '\'':
		return '\''
	case '0':
		return 0
	case '$':
		return '$'
	default:
		return c
	}
}

// operators lists multi-character operators in longest-first order so the
// scan prefers the longest match.
var operators = []string{
	"<<=", ">>=", "...", "?..", "??=",
	"<<", ">>", "<=", ">=", "==", "!=", "<>", ":=", "->", "=>", "&&", "||",
	"?.", "??", "..",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "!", "<", ">", "=", "(", ")",
	"{", "}", "[", "]", ",", ";", ":", ".", "?",
}

func (l *Lexer) scanOperator() Token {
	loc := l.loc()
	for _, op := range operators {
		if l.hasPrefixAt(op) {
			for i := 0; i < len(op); i++ {
				l.advance()
			}
			return Token{Kind: Punct, Text: op, Canonical: op, Loc: loc}
		}
	}
	c := l.advance()
	l.em.Emitf(diag.Error, l.code("0008"), loc, 1, "unexpected character %q", c)
	return Token{Kind: Punct, Text: string(c), Canonical: string(c), Loc: loc, Malformed: true}
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool   { return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') }
func isIdentStart(b byte) bool { return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isIdentPart(b byte) bool  { return isIdentStart(b) || isDigit(b) }
