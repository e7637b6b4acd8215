// Package parser implements spec §4.4: one recursive-descent parser per
// dialect (BASIC, Pascal, ViperLang, Zia), all built on the shared token-
// handling primitives in this file, producing the common internal/ast
// tree every dialect feeds into internal/semantic.
package parser

import (
	"fmt"
	"strings"

	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/lexer"
	"github.com/splanck/vipc/internal/source"
)

// Base bundles peek/advance/check/match/expect (spec §4.4 "Token handling
// primitives") plus the sticky-error flag and diagnostic-muting needed by
// resyncAfterError and Zia's speculation scope. Every dialect parser
// embeds a Base and builds its own grammar on top of it.
type Base struct {
	Lex *lexer.Lexer
	Em  *diag.Emitter

	cur      lexer.Token
	hasError bool
	muted    bool
}

// NewBase primes the token stream so Cur() returns the first token.
func NewBase(lex *lexer.Lexer, em *diag.Emitter) Base {
	b := Base{Lex: lex, Em: em}
	b.cur = lex.Next()
	return b
}

// Cur returns the current (already-peeked) token.
func (b *Base) Cur() lexer.Token { return b.cur }

// PeekNext returns the token after Cur without consuming either.
func (b *Base) PeekNext() lexer.Token { return b.Lex.Peek() }

// Advance consumes and returns the current token.
func (b *Base) Advance() lexer.Token {
	prev := b.cur
	b.cur = b.Lex.Next()
	return prev
}

// Check reports whether the current token has the given kind.
func (b *Base) Check(kind lexer.Kind) bool { return b.cur.Kind == kind }

// CheckKeyword reports whether the current token is the keyword word
// (compared against its canonical, case-folded spelling).
func (b *Base) CheckKeyword(word string) bool {
	return b.cur.Kind == lexer.Keyword && b.cur.Canonical == word
}

// CheckPunct reports whether the current token is the punctuation p.
func (b *Base) CheckPunct(p string) bool {
	return b.cur.Kind == lexer.Punct && b.cur.Text == p
}

// Match consumes the current token if it has kind and reports whether it
// did.
func (b *Base) Match(kind lexer.Kind) bool {
	if b.Check(kind) {
		b.Advance()
		return true
	}
	return false
}

// MatchPunct is Match for a specific punctuation spelling.
func (b *Base) MatchPunct(p string) bool {
	if b.CheckPunct(p) {
		b.Advance()
		return true
	}
	return false
}

// MatchKeyword is Match for a specific keyword spelling.
func (b *Base) MatchKeyword(word string) bool {
	if b.CheckKeyword(word) {
		b.Advance()
		return true
	}
	return false
}

// MatchIdentWord consumes the current token if it is a plain identifier
// (not a dialect keyword) spelled word, case-insensitively. Used for
// contextual words — like Pascal's property "read"/"write" — that are
// not reserved and so never tokenize as Keyword.
func (b *Base) MatchIdentWord(word string) bool {
	if b.cur.Kind == lexer.Ident && strings.EqualFold(b.cur.Text, word) {
		b.Advance()
		return true
	}
	return false
}

// ExpectPunct consumes p or reports "expected p, got ..." (spec §4.4
// "expect(kind, description)").
func (b *Base) ExpectPunct(code, p string) bool {
	if b.MatchPunct(p) {
		return true
	}
	b.Em.EmitExpected(code, b.cur.Loc, "'"+p+"'", describe(b.cur))
	return false
}

// ExpectKeyword consumes word or reports the same "expected" shape.
func (b *Base) ExpectKeyword(code, word string) bool {
	if b.MatchKeyword(word) {
		return true
	}
	b.Em.EmitExpected(code, b.cur.Loc, "'"+word+"'", describe(b.cur))
	return false
}

// ExpectIdent consumes an identifier and returns its spelling, or reports
// the "expected" diagnostic and returns "".
func (b *Base) ExpectIdent(code string) (string, bool) {
	if b.cur.Kind == lexer.Ident {
		return b.Advance().Text, true
	}
	b.Em.EmitExpected(code, b.cur.Loc, "an identifier", describe(b.cur))
	return "", false
}

// HasError reports the sticky error flag (spec §4.4).
func (b *Base) HasError() bool { return b.hasError }

// Emit routes a diagnostic at loc through the emitter unless a speculation
// scope is currently suppressing output, and sets the sticky error flag
// for Error severity, matching the teacher's "report, keep going" parser
// error model.
func (b *Base) Emit(sev diag.Severity, code string, loc source.Loc, length uint32, msg string) {
	if sev == diag.Error {
		b.hasError = true
	}
	if b.muted {
		return
	}
	b.Em.Emit(sev, code, loc, length, msg)
}

// Emitf reports a formatted diagnostic at the current token's location,
// unless muted by an active speculation scope.
func (b *Base) Emitf(sev diag.Severity, code string, length uint32, format string, args ...interface{}) {
	if b.muted {
		if sev == diag.Error {
			b.hasError = true
		}
		return
	}
	if sev == diag.Error {
		b.hasError = true
	}
	b.Em.Emitf(sev, code, b.cur.Loc, length, format, args...)
}

// Mark is a speculation checkpoint: both the lexer's scan position and the
// parser's sticky-error/muting state (spec §4.4 "Speculation (Zia)").
type Mark struct {
	lex      lexer.State
	cur      lexer.Token
	hadError bool
	wasMuted bool
}

// BeginSpeculation opens a speculative scope: subsequent diagnostics are
// suppressed until Commit or Rollback.
func (b *Base) BeginSpeculation() Mark {
	m := Mark{lex: b.Lex.SaveState(), cur: b.cur, hadError: b.hasError, wasMuted: b.muted}
	b.muted = true
	return m
}

// Commit keeps everything parsed since m and un-suppresses diagnostics
// (restoring whatever muting state was active before the speculation
// began, so nested scopes compose).
func (b *Base) Commit(m Mark) {
	b.muted = m.wasMuted
}

// Rollback restores both the lexer position and the sticky-error/muting
// state captured at m, discarding everything parsed in between — bounded
// backtracking per spec §4.4.
func (b *Base) Rollback(m Mark) {
	b.Lex.RestoreState(m.lex)
	b.cur = m.cur
	b.hasError = m.hadError
	b.muted = m.wasMuted
}

// ResyncAfterError implements spec §4.4 "Error recovery": skip tokens
// until a stable synchronization point — a token in stopKeywords, a token
// in stopPuncts, or end of file — leaving that token unconsumed so the
// caller's own statement-list loop can resume from it.
func (b *Base) ResyncAfterError(stopKeywords, stopPuncts map[string]bool) {
	b.hasError = true
	for {
		if b.Check(lexer.EOF) {
			return
		}
		if b.cur.Kind == lexer.Keyword && stopKeywords[b.cur.Canonical] {
			return
		}
		if b.cur.Kind == lexer.Punct && stopPuncts[b.cur.Text] {
			return
		}
		b.Advance()
	}
}

func describe(t lexer.Token) string {
	if t.Kind == lexer.EOF {
		return "end of file"
	}
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%q", t.Text)
}
