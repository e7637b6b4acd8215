package parser

import (
	"strings"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/lexer"
	"github.com/splanck/vipc/internal/source"
)

// BasicParser implements spec §4.4's BASIC grammar: NAMESPACE/USING
// placement, SUB/FUNCTION declarations, DIM, classic control statements,
// and the canonical expression ladder (omitting the levels BASIC has no
// syntax for — ternary, range, coalesce, bitwise).
type BasicParser struct {
	Base
	seq *StatementSequencer
}

// NewBasic returns a parser reading lex through em.
func NewBasic(lex *lexer.Lexer, em *diag.Emitter) *BasicParser {
	p := &BasicParser{Base: NewBase(lex, em)}
	p.seq = newSequencer(&p.Base)
	return p
}

func (p *BasicParser) code(suffix string) string { return "B" + suffix }

// StatementSequencer centralizes BASIC's newline/colon statement
// separation and leading line-label consumption (spec §4.4): single
// statements, colon-separated lists, and SUB/FUNCTION/IF/loop bodies all
// share this one sequencing policy rather than three separate splitting
// rules scattered through the grammar.
type StatementSequencer struct {
	b             *Base
	byNum         map[int]source.Loc
	byName        map[string]source.Loc
	nextSynthetic int
}

func newSequencer(b *Base) *StatementSequencer {
	return &StatementSequencer{b: b, byNum: map[int]source.Loc{}, byName: map[string]source.Loc{}, nextSynthetic: 1000000}
}

// SkipSeparators consumes a run of newline/':' statement separators.
func (s *StatementSequencer) SkipSeparators() {
	for s.b.Check(lexer.Newline) || s.b.CheckPunct(":") {
		s.b.Advance()
	}
}

// ConsumeLabel consumes a leading numeric line-number or named label, if
// the current position has one, registering it and reporting duplicates
// (spec §4.4 "Labels and line numbers").
func (s *StatementSequencer) ConsumeLabel() {
	if s.b.Cur().Kind == lexer.IntLit {
		loc := s.b.Cur().Loc
		n := int(s.b.Cur().IntValue)
		s.b.Advance()
		if prior, dup := s.byNum[n]; dup {
			s.b.Emitf(diag.Error, "B2200", 1, "duplicate label %d (first defined at %s)", n, prior.String())
		} else {
			s.byNum[n] = loc
		}
		return
	}
	if s.b.Cur().Kind == lexer.Ident && s.b.PeekNext().Kind == lexer.Punct && s.b.PeekNext().Text == ":" {
		loc := s.b.Cur().Loc
		name := s.b.Cur().Text
		s.b.Advance()
		s.b.Advance() // ':'
		s.nextSynthetic++
		if prior, dup := s.byName[name]; dup {
			s.b.Emitf(diag.Error, "B2200", 1, "duplicate label %q (first defined at %s)", name, prior.String())
		} else {
			s.byName[name] = loc
		}
	}
}

var basicSyncKeywords = map[string]bool{
	"if": true, "while": true, "for": true, "do": true, "sub": true,
	"function": true, "dim": true, "namespace": true, "using": true,
	"end": true, "select": true,
}

// ParseModule parses one BASIC compilation unit. Top-level statements that
// aren't declarations are collected into a synthetic "main" function, the
// same convention used by the Pascal and BASIC lowerer's "module-init +
// main" pair (spec §8 "Boundary behaviors").
func (p *BasicParser) ParseModule() *ast.ModuleDecl {
	loc := p.Cur().Loc
	var decls []ast.Decl
	var mainStmts []ast.Stmt

	for {
		p.seq.SkipSeparators()
		if p.Check(lexer.EOF) {
			break
		}
		p.seq.ConsumeLabel()
		p.seq.SkipSeparators()
		if p.Check(lexer.EOF) {
			break
		}
		switch {
		case p.CheckKeyword("namespace"):
			decls = append(decls, p.parseNamespace())
		case p.CheckKeyword("using"):
			decls = append(decls, p.parseUsing())
		case p.CheckKeyword("sub"):
			decls = append(decls, p.parseSubOrFunction(true))
		case p.CheckKeyword("function"):
			decls = append(decls, p.parseSubOrFunction(false))
		case p.CheckKeyword("dim"):
			decls = append(decls, p.parseGlobalDim()...)
		default:
			s := p.parseStmt()
			if s != nil {
				mainStmts = append(mainStmts, s)
			}
		}
	}

	decls = append(decls, ast.NewFunctionDecl(loc, "main", nil, nil, ast.NewBlockStmt(loc, mainStmts)))
	return ast.NewModuleDecl(loc, "", decls)
}

func (p *BasicParser) parseNamespace() *ast.NamespaceDecl {
	loc := p.Cur().Loc
	p.Advance()
	path := p.parseDottedPath()
	var decls []ast.Decl
	for {
		p.seq.SkipSeparators()
		if p.CheckKeyword("end") || p.Check(lexer.EOF) {
			break
		}
		p.seq.ConsumeLabel()
		p.seq.SkipSeparators()
		if p.CheckKeyword("end") || p.Check(lexer.EOF) {
			break
		}
		switch {
		case p.CheckKeyword("using"):
			decls = append(decls, p.parseUsing())
		case p.CheckKeyword("sub"):
			decls = append(decls, p.parseSubOrFunction(true))
		case p.CheckKeyword("function"):
			decls = append(decls, p.parseSubOrFunction(false))
		case p.CheckKeyword("dim"):
			decls = append(decls, p.parseGlobalDim()...)
		default:
			p.Emitf(diag.Error, p.code("2203"), 1, "unexpected token %s in namespace body", describe(p.Cur()))
			p.ResyncAfterError(basicSyncKeywords, map[string]bool{})
		}
	}
	p.ExpectKeyword(p.code("2204"), "end")
	p.ExpectKeyword(p.code("2205"), "namespace")
	return ast.NewNamespaceDecl(loc, path, decls)
}

func (p *BasicParser) parseUsing() *ast.ImportDecl {
	loc := p.Cur().Loc
	p.Advance()
	path := p.parseDottedPathString()
	alias := ""
	if p.MatchKeyword("as") {
		alias, _ = p.ExpectIdent(p.code("2210"))
	}
	return ast.NewImportDecl(loc, path, alias)
}

func (p *BasicParser) parseDottedPath() []string {
	var parts []string
	n, ok := p.ExpectIdent(p.code("2211"))
	if ok {
		parts = append(parts, n)
	}
	for p.MatchPunct(".") {
		n2, ok2 := p.ExpectIdent(p.code("2211"))
		if ok2 {
			parts = append(parts, n2)
		}
	}
	return parts
}

func (p *BasicParser) parseDottedPathString() string {
	return strings.Join(p.parseDottedPath(), ".")
}

// parseSubOrFunction parses "SUB Name(params) ... END SUB" or "FUNCTION
// Name(params) AS Type ... END FUNCTION". A bare identifier immediately
// followed by something other than '(' after a known procedure's name is
// not handled here; see parseCallOrAssignStmt's targeted diagnostic (spec
// §4.4 "Procedure-call diagnostics").
func (p *BasicParser) parseSubOrFunction(isSub bool) *ast.FunctionDecl {
	loc := p.Cur().Loc
	p.Advance()
	name, _ := p.ExpectIdent(p.code("2220"))
	params := p.parseParams()
	var ret ast.TypeNode
	if !isSub && p.MatchKeyword("as") {
		ret = p.parseTypeNode()
	}
	endWord := "sub"
	if !isSub {
		endWord = "function"
	}
	body := p.parseStmtBlockUntil("end")
	p.ExpectKeyword(p.code("2221"), "end")
	p.ExpectKeyword(p.code("2222"), endWord)
	return ast.NewFunctionDecl(loc, name, params, ret, body)
}

func (p *BasicParser) parseParams() []ast.Param {
	if !p.MatchPunct("(") {
		return nil
	}
	var params []ast.Param
	if p.MatchPunct(")") {
		return params
	}
	for {
		name, _ := p.ExpectIdent(p.code("2230"))
		var typ ast.TypeNode
		if p.MatchKeyword("as") {
			typ = p.parseTypeNode()
		}
		params = append(params, ast.Param{Name: name, Type: typ})
		if p.MatchPunct(",") {
			continue
		}
		break
	}
	p.ExpectPunct(p.code("2231"), ")")
	return params
}

func (p *BasicParser) parseTypeNode() ast.TypeNode {
	loc := p.Cur().Loc
	// Built-in type names (Integer, String, ...) are reserved words in this
	// dialect and lex as keywords, so they are accepted here as well.
	var name string
	ok := true
	if t := p.Cur(); t.Kind == lexer.Keyword && (t.Canonical == "boolean" || t.Canonical == "byte" ||
		t.Canonical == "integer" || t.Canonical == "number" || t.Canonical == "string") {
		name = p.Advance().Text
	} else {
		name, ok = p.ExpectIdent(p.code("2240"))
	}
	if !ok {
		return ast.NewNamedType(loc, nil, "")
	}
	var qualifier []string
	for p.CheckPunct(".") {
		qualifier = append(qualifier, name)
		p.Advance()
		n2, ok2 := p.ExpectIdent(p.code("2240"))
		if !ok2 {
			break
		}
		name = n2
	}
	return ast.NewNamedType(loc, qualifier, name)
}

func (p *BasicParser) parseGlobalDim() []ast.Decl {
	loc := p.Cur().Loc
	p.Advance()
	names := p.parseIdentList()
	var typ ast.TypeNode
	if p.MatchKeyword("as") {
		typ = p.parseTypeNode()
	}
	var init ast.Expr
	if p.MatchPunct("=") {
		init = p.parseExpr()
	}
	var decls []ast.Decl
	for _, n := range names {
		decls = append(decls, ast.NewGlobalVarDecl(loc, n, typ, init, false, false))
	}
	return decls
}

func (p *BasicParser) parseIdentList() []string {
	var names []string
	n, ok := p.ExpectIdent(p.code("2241"))
	if ok {
		names = append(names, n)
	}
	for p.MatchPunct(",") {
		n2, ok2 := p.ExpectIdent(p.code("2241"))
		if ok2 {
			names = append(names, n2)
		}
	}
	return names
}

// parseStmtBlockUntil parses statements until the current token is one of
// the stop keywords (not consumed) or EOF — the BASIC analogue of a
// brace-delimited block, every variant of which (IF/WHILE/DO/FOR/SUB/
// FUNCTION/SELECT bodies) routes through the same StatementSequencer.
func (p *BasicParser) parseStmtBlockUntil(stopWords ...string) *ast.BlockStmt {
	loc := p.Cur().Loc
	stop := make(map[string]bool, len(stopWords))
	for _, w := range stopWords {
		stop[w] = true
	}
	var stmts []ast.Stmt
	for {
		p.seq.SkipSeparators()
		if p.Check(lexer.EOF) || (p.Cur().Kind == lexer.Keyword && stop[p.Cur().Canonical]) {
			break
		}
		p.seq.ConsumeLabel()
		p.seq.SkipSeparators()
		if p.Check(lexer.EOF) || (p.Cur().Kind == lexer.Keyword && stop[p.Cur().Canonical]) {
			break
		}
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	return ast.NewBlockStmt(loc, stmts)
}

func (p *BasicParser) atStmtEnd() bool {
	return p.Check(lexer.Newline) || p.CheckPunct(":") || p.Check(lexer.EOF)
}

func (p *BasicParser) parseStmt() ast.Stmt {
	switch {
	case p.CheckKeyword("if"):
		return p.parseIfStmt()
	case p.CheckKeyword("while"):
		return p.parseWhileStmt()
	case p.CheckKeyword("do"):
		return p.parseDoStmt()
	case p.CheckKeyword("for"):
		if p.PeekNext().Kind == lexer.Keyword && p.PeekNext().Canonical == "each" {
			return p.parseForEachStmt()
		}
		return p.parseForStmt()
	case p.CheckKeyword("select"):
		return p.parseSelectStmt()
	case p.CheckKeyword("dim"):
		return p.parseDimStmt()
	case p.CheckKeyword("const"):
		return p.parseConstStmt()
	case p.CheckKeyword("exit"):
		return p.parseExitStmt()
	case p.CheckKeyword("return"):
		return p.parseReturnStmt()
	case p.CheckKeyword("print"):
		return p.parsePrintStmt()
	case p.CheckKeyword("goto"):
		return p.parseGotoStmt()
	default:
		return p.parseCallOrAssignStmt()
	}
}

func (p *BasicParser) parseIfStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	return p.parseIfTail(loc)
}

// parseIfTail parses "cond THEN block (ELSEIF cond THEN block)* (ELSE
// block)? END IF", called once for "if" and recursively to fold "elseif"
// into the same shape; only the innermost call (the one that doesn't see
// a further elseif) consumes the trailing "END IF".
func (p *BasicParser) parseIfTail(loc source.Loc) ast.Stmt {
	cond := p.parseExpr()
	p.ExpectKeyword(p.code("2300"), "then")
	then := p.parseStmtBlockUntil("elseif", "else", "end")
	if p.CheckKeyword("elseif") {
		elLoc := p.Cur().Loc
		p.Advance()
		els := p.parseIfTail(elLoc)
		return ast.NewIfStmt(loc, cond, then, els)
	}
	var els ast.Stmt
	if p.MatchKeyword("else") {
		els = p.parseStmtBlockUntil("end")
	}
	p.ExpectKeyword(p.code("2301"), "end")
	p.ExpectKeyword(p.code("2302"), "if")
	return ast.NewIfStmt(loc, cond, then, els)
}

func (p *BasicParser) parseWhileStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	cond := p.parseExpr()
	body := p.parseStmtBlockUntil("wend")
	p.ExpectKeyword(p.code("2310"), "wend")
	return ast.NewWhileStmt(loc, cond, body)
}

// parseDoStmt models "DO ... LOOP UNTIL cond" as "while not cond do body",
// reusing WhileStmt rather than adding a post-condition loop node; the
// only observable difference (the body always running once) is a lowering
// concern outside this frontend's scope.
func (p *BasicParser) parseDoStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	body := p.parseStmtBlockUntil("loop")
	p.ExpectKeyword(p.code("2320"), "loop")
	p.ExpectKeyword(p.code("2321"), "until")
	cond := p.parseExpr()
	notCond := ast.NewUnaryExpr(cond.Loc(), ast.OpNot, cond)
	return ast.NewWhileStmt(loc, notCond, body)
}

func (p *BasicParser) parseForStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	v, _ := p.ExpectIdent(p.code("2330"))
	p.ExpectPunct(p.code("2331"), "=")
	lo := p.parseExpr()
	p.ExpectKeyword(p.code("2332"), "to")
	hi := p.parseExpr()
	var step ast.Expr
	if p.MatchKeyword("step") {
		step = p.parseExpr()
	}
	body := p.parseStmtBlockUntil("next")
	p.ExpectKeyword(p.code("2333"), "next")
	if p.Cur().Kind == lexer.Ident {
		p.Advance() // optional "NEXT i" loop-variable echo
	}
	return ast.NewForStmt(loc, v, lo, hi, step, false, body)
}

func (p *BasicParser) parseForEachStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance() // 'for'
	p.ExpectKeyword(p.code("2334"), "each")
	v, _ := p.ExpectIdent(p.code("2335"))
	p.ExpectKeyword(p.code("2336"), "in")
	coll := p.parseExpr()
	body := p.parseStmtBlockUntil("next")
	p.ExpectKeyword(p.code("2337"), "next")
	if p.Cur().Kind == lexer.Ident {
		p.Advance()
	}
	return ast.NewForInStmt(loc, v, coll, body)
}

// parseSelectStmt maps "SELECT CASE expr / CASE label / CASE ELSE / END
// SELECT" onto MatchStmt, the same construct ViperLang/Zia's "match" uses,
// rather than a parallel BASIC-only case node.
func (p *BasicParser) parseSelectStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	p.ExpectKeyword(p.code("2340"), "case")
	scrut := p.parseExpr()
	var arms []ast.MatchStmtArm
	for p.CheckKeyword("case") {
		p.Advance()
		if p.MatchKeyword("else") {
			body := p.parseStmtBlockUntil("case", "end")
			arms = append(arms, ast.MatchStmtArm{Pattern: ast.Pattern{Kind: ast.PatWildcard}, Body: body})
			continue
		}
		label := p.parseExpr()
		body := p.parseStmtBlockUntil("case", "end")
		arms = append(arms, ast.MatchStmtArm{Pattern: ast.Pattern{Kind: ast.PatLiteral, At: label}, Body: body})
	}
	p.ExpectKeyword(p.code("2341"), "end")
	p.ExpectKeyword(p.code("2342"), "select")
	return ast.NewMatchStmt(loc, scrut, arms)
}

func (p *BasicParser) parseDimStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	names := p.parseIdentList()
	var typ ast.TypeNode
	if p.MatchKeyword("as") {
		typ = p.parseTypeNode()
	}
	var init ast.Expr
	if p.MatchPunct("=") {
		init = p.parseExpr()
	}
	if len(names) == 1 {
		return ast.NewVarStmt(loc, names[0], typ, init, false)
	}
	var stmts []ast.Stmt
	for _, n := range names {
		stmts = append(stmts, ast.NewVarStmt(loc, n, typ, nil, false))
	}
	return ast.NewBlockStmt(loc, stmts)
}

func (p *BasicParser) parseConstStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	name, _ := p.ExpectIdent(p.code("2243"))
	var typ ast.TypeNode
	if p.MatchKeyword("as") {
		typ = p.parseTypeNode()
	}
	p.ExpectPunct(p.code("2244"), "=")
	init := p.parseExpr()
	return ast.NewVarStmt(loc, name, typ, init, true)
}

// parseExitStmt models "EXIT FOR"/"EXIT DO"/"EXIT SUB"/"EXIT FUNCTION" as
// BreakStmt; distinguishing a procedure-level exit from a loop-level exit
// is a lowering concern this frontend doesn't need to resolve.
func (p *BasicParser) parseExitStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	if p.Cur().Kind == lexer.Keyword {
		p.Advance()
	}
	return ast.NewBreakStmt(loc)
}

func (p *BasicParser) parseReturnStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	var val ast.Expr
	if !p.atStmtEnd() {
		val = p.parseExpr()
	}
	return ast.NewReturnStmt(loc, val)
}

func (p *BasicParser) parsePrintStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	var args []ast.Arg
	if !p.atStmtEnd() {
		for {
			args = append(args, ast.Arg{Value: p.parseExpr()})
			if !p.MatchPunct(",") {
				break
			}
		}
	}
	return ast.NewExprStmt(loc, ast.NewCallExpr(loc, ast.NewIdent(loc, "Print"), args))
}

// parseGotoStmt parses "GOTO label" for syntactic completeness; unstructured
// jumps have no representation in this AST (there is no lowering stage in
// this frontend), so the target is recorded only as an evaluated
// identifier reference.
func (p *BasicParser) parseGotoStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	if p.Cur().Kind == lexer.IntLit {
		t := p.Advance()
		return ast.NewExprStmt(loc, ast.NewIntLit(t.Loc, t.IntValue, t.Text))
	}
	name, _ := p.ExpectIdent(p.code("2350"))
	return ast.NewExprStmt(loc, ast.NewIdent(loc, name))
}

// parseCallOrAssignStmt parses either "target = value" or a bare call/
// reference used as a statement, and reports the targeted "expected '('
// after procedure name" diagnostic (spec §4.4) when a bare identifier is
// immediately followed by something that looks like a first argument
// rather than '(' or '='.
func (p *BasicParser) parseCallOrAssignStmt() ast.Stmt {
	loc := p.Cur().Loc
	if p.Cur().Kind == lexer.Ident {
		name := p.Cur().Text
		next := p.PeekNext()
		if next.Kind != lexer.Punct || (next.Text != "(" && next.Text != "=" && next.Text != "." && next.Text != "[") {
			if !p.atStmtEndKind(next) {
				p.Emitf(diag.Error, p.code("2360"), uint32(len(name)), "expected '(' after procedure name '%s'", name)
			}
		}
	}
	x := p.parsePostfix(p.parsePrimary)
	if p.MatchPunct("=") {
		val := p.parseExpr()
		return ast.NewAssignStmt(loc, x, val)
	}
	return ast.NewExprStmt(loc, x)
}

func (p *BasicParser) atStmtEndKind(t lexer.Token) bool {
	return t.Kind == lexer.Newline || t.Kind == lexer.EOF || (t.Kind == lexer.Punct && t.Text == ":")
}

func (p *BasicParser) parseExpr() ast.Expr { return p.parseOr() }

var basicOrOps = opTable{"or": {op: ast.OpLogicalOr}}
var basicAndOps = opTable{"and": {op: ast.OpLogicalAnd}}
var basicEqOps = opTable{"=": {op: ast.OpEq}, "<>": {op: ast.OpNe}}
var basicCmpOps = opTable{"<": {op: ast.OpLt}, ">": {op: ast.OpGt}, "<=": {op: ast.OpLe}, ">=": {op: ast.OpGe}}
var basicAddOps = opTable{"+": {op: ast.OpAdd}, "-": {op: ast.OpSub}}
var basicMulOps = opTable{"*": {op: ast.OpMul}, "/": {op: ast.OpDiv}, "mod": {op: ast.OpMod}}

func (p *BasicParser) parseOr() ast.Expr  { return climbBinary(&p.Base, 0, basicOrOps, p.parseAnd) }
func (p *BasicParser) parseAnd() ast.Expr { return climbBinary(&p.Base, 0, basicAndOps, p.parseEquality) }
func (p *BasicParser) parseEquality() ast.Expr {
	return climbBinary(&p.Base, 0, basicEqOps, p.parseComparison)
}
func (p *BasicParser) parseComparison() ast.Expr {
	return climbBinary(&p.Base, 0, basicCmpOps, p.parseAdditive)
}
func (p *BasicParser) parseAdditive() ast.Expr {
	return climbBinary(&p.Base, 0, basicAddOps, p.parseMul)
}
func (p *BasicParser) parseMul() ast.Expr { return climbBinary(&p.Base, 0, basicMulOps, p.parseUnary) }

func (p *BasicParser) parseUnary() ast.Expr {
	loc := p.Cur().Loc
	switch {
	case p.MatchKeyword("not"):
		return ast.NewUnaryExpr(loc, ast.OpNot, p.parseUnary())
	case p.MatchPunct("-"):
		return ast.NewUnaryExpr(loc, ast.OpNeg, p.parseUnary())
	default:
		return p.parsePostfix(p.parsePrimary)
	}
}

func (p *BasicParser) parsePostfix(parsePrimary func() ast.Expr) ast.Expr {
	x := parsePrimary()
	for {
		loc := p.Cur().Loc
		switch {
		case p.MatchPunct("."):
			field, _ := p.ExpectIdent(p.code("2370"))
			x = ast.NewFieldExpr(loc, x, field)
		case p.MatchPunct("("):
			var args []ast.Arg
			if !p.CheckPunct(")") {
				for {
					args = append(args, ast.Arg{Value: p.parseExpr()})
					if !p.MatchPunct(",") {
						break
					}
				}
			}
			p.ExpectPunct(p.code("2371"), ")")
			x = ast.NewCallExpr(loc, x, args)
		case p.MatchPunct("["):
			idx := p.parseExpr()
			p.ExpectPunct(p.code("2372"), "]")
			x = ast.NewIndexExpr(loc, x, idx)
		case p.MatchKeyword("is"):
			x = ast.NewIsExpr(loc, x, p.parseTypeNode())
		case p.MatchKeyword("as"):
			x = ast.NewAsExpr(loc, x, p.parseTypeNode())
		default:
			return x
		}
	}
}

func (p *BasicParser) parsePrimary() ast.Expr {
	t := p.Cur()
	loc := t.Loc
	switch {
	case t.Kind == lexer.IntLit:
		p.Advance()
		return ast.NewIntLit(loc, t.IntValue, t.Text)
	case t.Kind == lexer.NumberLit:
		p.Advance()
		return ast.NewNumberLit(loc, t.NumValue, t.Text)
	case t.Kind == lexer.StringLit:
		p.Advance()
		return ast.NewStringLit(loc, t.StrValue)
	case p.CheckKeyword("true"):
		p.Advance()
		return ast.NewBoolLit(loc, true)
	case p.CheckKeyword("false"):
		p.Advance()
		return ast.NewBoolLit(loc, false)
	case p.MatchPunct("("):
		x := p.parseExpr()
		p.ExpectPunct(p.code("2380"), ")")
		return x
	case t.Kind == lexer.Ident:
		p.Advance()
		return ast.NewIdent(loc, t.Text)
	default:
		p.Emitf(diag.Error, p.code("2381"), 1, "expected an expression, got %s", describe(t))
		p.Advance()
		return ast.NewIdent(loc, "")
	}
}
