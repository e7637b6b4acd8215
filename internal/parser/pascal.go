package parser

import (
	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/lexer"
	"github.com/splanck/vipc/internal/source"
)

// PascalParser implements spec §4.4's Pascal grammar: program/uses/type
// (class/interface/record) declarations, the flatter coalesce → relation
// → simple → term → factor → primary expression ladder, and the
// virtual/override class model of spec §4.6.
type PascalParser struct {
	Base
}

// NewPascal returns a parser reading lex through em.
func NewPascal(lex *lexer.Lexer, em *diag.Emitter) *PascalParser {
	return &PascalParser{Base: NewBase(lex, em)}
}

func (p *PascalParser) code(suffix string) string { return "P" + suffix }

var pascalSyncKeywords = map[string]bool{
	"begin": true, "end": true, "if": true, "while": true, "for": true,
	"var": true, "type": true, "function": true, "procedure": true,
	"class": true, "until": true,
}
var pascalSyncPuncts = map[string]bool{";": true}

// ParseModule parses one Pascal program into a ModuleDecl, wrapping the
// body statement between "begin" and the final "end." in a synthetic
// "main" function so every dialect's AST has a uniform entry point.
func (p *PascalParser) ParseModule() *ast.ModuleDecl {
	loc := p.Cur().Loc
	var name string
	if p.MatchKeyword("program") {
		n, _ := p.ExpectIdent(p.code("2001"))
		name = n
		p.ExpectPunct(p.code("2002"), ";")
	}

	var decls []ast.Decl
	for !p.CheckKeyword("begin") && !p.Check(lexer.EOF) {
		d := p.parseTopDecl()
		if d != nil {
			decls = append(decls, d...)
			continue
		}
		p.ResyncAfterError(pascalSyncKeywords, pascalSyncPuncts)
		if p.CheckKeyword("begin") || p.Check(lexer.EOF) {
			break
		}
	}

	body := p.parseBeginEnd()
	p.ExpectPunct(p.code("2003"), ".")

	decls = append(decls, ast.NewFunctionDecl(loc, "main", nil, nil, body))
	return ast.NewModuleDecl(loc, name, decls)
}

// parseTopDecl parses one top-level declaration group (uses/var/type/
// function/procedure) and may return more than one Decl (var sections,
// uses lists).
func (p *PascalParser) parseTopDecl() []ast.Decl {
	switch {
	case p.CheckKeyword("uses"):
		return p.parseUses()
	case p.CheckKeyword("var"):
		return p.parseGlobalVarSection()
	case p.CheckKeyword("type"):
		return p.parseTypeSection()
	case p.CheckKeyword("function"):
		return []ast.Decl{p.parseFunctionDecl(false)}
	case p.CheckKeyword("procedure"):
		return []ast.Decl{p.parseFunctionDecl(true)}
	default:
		p.Emitf(diag.Error, p.code("2004"), 1, "expected a declaration or 'begin', got %s", describe(p.Cur()))
		return nil
	}
}

func (p *PascalParser) parseUses() []ast.Decl {
	p.Advance()
	var decls []ast.Decl
	for {
		loc := p.Cur().Loc
		name, ok := p.ExpectIdent(p.code("2005"))
		if !ok {
			break
		}
		decls = append(decls, ast.NewImportDecl(loc, name, ""))
		if !p.MatchPunct(",") {
			break
		}
	}
	p.ExpectPunct(p.code("2006"), ";")
	return decls
}

func (p *PascalParser) parseGlobalVarSection() []ast.Decl {
	p.Advance()
	var decls []ast.Decl
	for p.Cur().Kind == lexer.Ident {
		names := p.parseIdentList()
		p.ExpectPunct(p.code("2010"), ":")
		typ := p.parseTypeNode()
		var init ast.Expr
		if p.MatchPunct("=") {
			init = p.parseExpr()
		}
		p.ExpectPunct(p.code("2011"), ";")
		for _, n := range names {
			decls = append(decls, ast.NewGlobalVarDecl(typ.Loc(), n, typ, init, false, false))
		}
	}
	return decls
}

func (p *PascalParser) parseIdentList() []string {
	var names []string
	n, ok := p.ExpectIdent(p.code("2012"))
	if ok {
		names = append(names, n)
	}
	for p.MatchPunct(",") {
		n2, ok2 := p.ExpectIdent(p.code("2012"))
		if ok2 {
			names = append(names, n2)
		}
	}
	return names
}

func (p *PascalParser) parseTypeSection() []ast.Decl {
	p.Advance()
	var decls []ast.Decl
	for p.Cur().Kind == lexer.Ident {
		loc := p.Cur().Loc
		name, _ := p.ExpectIdent(p.code("2020"))
		p.ExpectPunct(p.code("2021"), "=")
		d := p.parseTypeBody(loc, name)
		p.ExpectPunct(p.code("2022"), ";")
		decls = append(decls, d)
	}
	return decls
}

func (p *PascalParser) parseTypeBody(loc source.Loc, name string) ast.Decl {
	switch {
	case p.MatchKeyword("class"):
		return p.parseClassBody(loc, name, ast.KindEntity)
	case p.MatchKeyword("interface"):
		return p.parseClassBody(loc, name, ast.KindInterface)
	case p.MatchKeyword("record"):
		return p.parseClassBody(loc, name, ast.KindValue)
	default:
		// Type alias: "type TFoo = Integer;" — modeled as a value type
		// with the aliased type as its sole base, since this grammar has
		// no dedicated alias node.
		aliased := p.parseTypeNode()
		td := ast.NewTypeDecl(loc, ast.KindValue, name)
		if named, ok := aliased.(*ast.NamedType); ok {
			td.Base = named
		}
		return td
	}
}

func (p *PascalParser) parseClassBody(loc source.Loc, name string, kind ast.TypeDeclKind) *ast.TypeDecl {
	td := ast.NewTypeDecl(loc, kind, name)
	if p.MatchPunct("(") {
		baseLoc := p.Cur().Loc
		baseName, ok := p.ExpectIdent(p.code("2023"))
		if ok {
			base := ast.NewNamedType(baseLoc, nil, baseName)
			if kind == ast.KindInterface {
				td.Interfaces = append(td.Interfaces, base)
			} else {
				td.Base = base
			}
		}
		for p.MatchPunct(",") {
			ifLoc := p.Cur().Loc
			ifName, ok2 := p.ExpectIdent(p.code("2023"))
			if ok2 {
				td.Interfaces = append(td.Interfaces, ast.NewNamedType(ifLoc, nil, ifName))
			}
		}
		p.ExpectPunct(p.code("2024"), ")")
	}

	vis := ast.VisPublic
	for !p.CheckKeyword("end") && !p.Check(lexer.EOF) {
		switch {
		case p.MatchKeyword("public"):
			vis = ast.VisPublic
			p.MatchPunct(";")
		case p.MatchKeyword("protected"):
			vis = ast.VisProtected
			p.MatchPunct(";")
		case p.MatchKeyword("private"):
			vis = ast.VisPrivate
			p.MatchPunct(";")
		case p.MatchKeyword("property"):
			td.Properties = append(td.Properties, p.parsePropertyDecl())
		case p.CheckKeyword("function"), p.CheckKeyword("procedure"):
			td.Methods = append(td.Methods, p.parseMethodDecl(vis))
		case p.Cur().Kind == lexer.Ident:
			td.Constructors, td.Fields = p.parseMemberOrCtor(td.Constructors, td.Fields, vis)
		default:
			p.Emitf(diag.Error, p.code("2025"), 1, "unexpected token %s in type body", describe(p.Cur()))
			p.ResyncAfterError(map[string]bool{"end": true}, map[string]bool{";": true})
			p.MatchPunct(";")
		}
	}
	p.ExpectKeyword(p.code("2026"), "end")

	for _, m := range td.Methods {
		if m.IsAbstract {
			td.IsAbstract = true
		}
	}
	return td
}

// parseMemberOrCtor handles "Create(...)" constructors and plain field
// declarations, both of which start with a bare identifier.
func (p *PascalParser) parseMemberOrCtor(ctors []*ast.ConstructorDecl, fields []*ast.FieldDecl, vis ast.Visibility) ([]*ast.ConstructorDecl, []*ast.FieldDecl) {
	loc := p.Cur().Loc
	name, _ := p.ExpectIdent(p.code("2027"))
	if p.CheckPunct("(") {
		params := p.parseParams()
		p.ExpectPunct(p.code("2028"), ";")
		var body *ast.BlockStmt
		if p.CheckKeyword("begin") {
			body = p.parseBeginEnd()
			p.ExpectPunct(p.code("2029"), ";")
		}
		return append(ctors, ast.NewConstructorDecl(loc, name, params, body)), fields
	}
	names := []string{name}
	for p.MatchPunct(",") {
		n2, ok2 := p.ExpectIdent(p.code("2012"))
		if ok2 {
			names = append(names, n2)
		}
	}
	p.ExpectPunct(p.code("2030"), ":")
	typ := p.parseTypeNode()
	isWeak := false
	isFinal := false
	for p.CheckKeyword("weak") || p.CheckKeyword("final") {
		if p.MatchKeyword("weak") {
			isWeak = true
		}
		if p.MatchKeyword("final") {
			isFinal = true
		}
	}
	p.ExpectPunct(p.code("2031"), ";")
	for _, n := range names {
		f := ast.NewFieldDecl(loc, n, typ, vis)
		f.IsWeak = isWeak
		f.IsFinal = isFinal
		fields = append(fields, f)
	}
	return ctors, fields
}

func (p *PascalParser) parsePropertyDecl() *ast.PropertyDecl {
	loc := p.Cur().Loc
	name, _ := p.ExpectIdent(p.code("2040"))
	p.ExpectPunct(p.code("2041"), ":")
	typ := p.parseTypeNode()
	getter, setter := "", ""
	if p.MatchIdentWord("read") {
		getter, _ = p.ExpectIdent(p.code("2042"))
	}
	if p.MatchIdentWord("write") {
		setter, _ = p.ExpectIdent(p.code("2042"))
	}
	p.ExpectPunct(p.code("2043"), ";")
	return ast.NewPropertyDecl(loc, name, typ, getter, setter)
}

// parseMethodDecl parses "function|procedure Name(params)[: Type]; mods;
// [begin ... end;]" — modifiers (virtual/override/abstract) follow the
// header per spec §4.6's inheritance model.
func (p *PascalParser) parseMethodDecl(vis ast.Visibility) *ast.MethodDecl {
	loc := p.Cur().Loc
	isFunc := p.MatchKeyword("function")
	if !isFunc {
		p.ExpectKeyword(p.code("2050"), "procedure")
	}
	name, _ := p.ExpectIdent(p.code("2051"))
	params := p.parseParams()
	var ret ast.TypeNode
	if isFunc {
		p.ExpectPunct(p.code("2052"), ":")
		ret = p.parseTypeNode()
	}
	p.ExpectPunct(p.code("2053"), ";")

	md := ast.NewMethodDecl(loc, name, params, ret, nil, vis)
	for p.CheckKeyword("virtual") || p.CheckKeyword("override") || p.CheckKeyword("abstract") || p.CheckKeyword("final") {
		switch {
		case p.MatchKeyword("virtual"):
			md.IsVirtual = true
		case p.MatchKeyword("override"):
			md.IsOverride = true
		case p.MatchKeyword("abstract"):
			md.IsAbstract = true
		case p.MatchKeyword("final"):
		}
		p.ExpectPunct(p.code("2054"), ";")
	}
	if p.CheckKeyword("begin") {
		md.Body = p.parseBeginEnd()
		p.ExpectPunct(p.code("2055"), ";")
	}
	return md
}

func (p *PascalParser) parseFunctionDecl(isProc bool) *ast.FunctionDecl {
	loc := p.Cur().Loc
	p.Advance() // 'function' or 'procedure'
	name, _ := p.ExpectIdent(p.code("2060"))
	params := p.parseParams()
	var ret ast.TypeNode
	if !isProc {
		p.ExpectPunct(p.code("2061"), ":")
		ret = p.parseTypeNode()
	}
	p.ExpectPunct(p.code("2062"), ";")
	body := p.parseBeginEnd()
	p.ExpectPunct(p.code("2063"), ";")
	return ast.NewFunctionDecl(loc, name, params, ret, body)
}

func (p *PascalParser) parseParams() []ast.Param {
	if !p.MatchPunct("(") {
		return nil
	}
	var params []ast.Param
	if p.MatchPunct(")") {
		return params
	}
	for {
		isVar := p.MatchKeyword("var")
		names := p.parseIdentList()
		p.ExpectPunct(p.code("2070"), ":")
		typ := p.parseTypeNode()
		for _, n := range names {
			params = append(params, ast.Param{Name: n, Type: typ, IsVar: isVar})
		}
		if p.MatchPunct(";") {
			continue
		}
		break
	}
	p.ExpectPunct(p.code("2071"), ")")
	return params
}

func (p *PascalParser) parseTypeNode() ast.TypeNode {
	loc := p.Cur().Loc
	// Built-in type names (Integer, String, ...) are reserved words in this
	// dialect and lex as keywords, so they are accepted here as well.
	var name string
	ok := true
	if t := p.Cur(); t.Kind == lexer.Keyword && (t.Canonical == "boolean" || t.Canonical == "byte" ||
		t.Canonical == "integer" || t.Canonical == "number" || t.Canonical == "string") {
		name = p.Advance().Text
	} else {
		name, ok = p.ExpectIdent(p.code("2080"))
	}
	if !ok {
		return ast.NewNamedType(loc, nil, "")
	}
	var qualifier []string
	for p.CheckPunct(".") {
		qualifier = append(qualifier, name)
		p.Advance()
		n2, ok2 := p.ExpectIdent(p.code("2080"))
		if !ok2 {
			break
		}
		name = n2
	}
	var t ast.TypeNode = ast.NewNamedType(loc, qualifier, name)
	for p.MatchPunct("?") {
		t = ast.NewOptionalTypeNode(loc, t)
	}
	return t
}

// parseBeginEnd parses "begin stmt (';' stmt)* end", accepting stray
// semicolons (empty statements) per classic Pascal grammar.
func (p *PascalParser) parseBeginEnd() *ast.BlockStmt {
	loc := p.Cur().Loc
	p.ExpectKeyword(p.code("2090"), "begin")
	var stmts []ast.Stmt
	for !p.CheckKeyword("end") && !p.Check(lexer.EOF) {
		if p.MatchPunct(";") {
			continue
		}
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
		if !p.CheckKeyword("end") {
			p.MatchPunct(";")
		}
	}
	p.ExpectKeyword(p.code("2091"), "end")
	return ast.NewBlockStmt(loc, stmts)
}

func (p *PascalParser) parseStmt() ast.Stmt {
	switch {
	case p.CheckKeyword("begin"):
		return p.parseBeginEnd()
	case p.CheckKeyword("if"):
		return p.parseIfStmt()
	case p.CheckKeyword("while"):
		return p.parseWhileStmt()
	case p.CheckKeyword("for"):
		return p.parseForStmt()
	case p.CheckKeyword("case"):
		return p.parseCaseStmt()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *PascalParser) parseIfStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	cond := p.parseExpr()
	p.ExpectKeyword(p.code("2100"), "then")
	then := p.parseStmt()
	var els ast.Stmt
	if p.MatchKeyword("else") {
		els = p.parseStmt()
	}
	return ast.NewIfStmt(loc, cond, then, els)
}

func (p *PascalParser) parseWhileStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	cond := p.parseExpr()
	p.ExpectKeyword(p.code("2101"), "do")
	body := p.parseStmt()
	return ast.NewWhileStmt(loc, cond, body)
}

func (p *PascalParser) parseForStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	v, _ := p.ExpectIdent(p.code("2110"))
	p.ExpectPunct(p.code("2111"), ":=")
	lo := p.parseExpr()
	down := false
	if p.MatchKeyword("downto") {
		down = true
	} else {
		p.ExpectKeyword(p.code("2112"), "to")
	}
	hi := p.parseExpr()
	p.ExpectKeyword(p.code("2113"), "do")
	body := p.parseStmt()
	return ast.NewForStmt(loc, v, lo, hi, nil, down, body)
}

// parseCaseStmt translates Pascal's "case x of label: stmt; ... end" into
// a MatchStmt over integer-literal patterns, with "else" as the wildcard
// arm, reusing the shared Match construct rather than a parallel one.
func (p *PascalParser) parseCaseStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	scrut := p.parseExpr()
	p.ExpectKeyword(p.code("2120"), "of")
	var arms []ast.MatchStmtArm
	for !p.CheckKeyword("end") && !p.CheckKeyword("else") && !p.Check(lexer.EOF) {
		label := p.parseExpr()
		p.ExpectPunct(p.code("2121"), ":")
		body := p.parseStmt()
		p.MatchPunct(";")
		arms = append(arms, ast.MatchStmtArm{Pattern: ast.Pattern{Kind: ast.PatLiteral, At: label}, Body: body})
	}
	if p.MatchKeyword("else") {
		body := p.parseStmt()
		p.MatchPunct(";")
		arms = append(arms, ast.MatchStmtArm{Pattern: ast.Pattern{Kind: ast.PatWildcard}, Body: body})
	}
	p.ExpectKeyword(p.code("2122"), "end")
	return ast.NewMatchStmt(loc, scrut, arms)
}

// parseSimpleStmt parses an assignment or a bare call expression used as a
// statement; the two share a prefix (a postfix expression) until ":=" is
// or isn't seen.
func (p *PascalParser) parseSimpleStmt() ast.Stmt {
	loc := p.Cur().Loc
	x := p.parsePostfix(p.parsePrimary)
	if p.MatchPunct(":=") {
		val := p.parseExpr()
		return ast.NewAssignStmt(loc, x, val)
	}
	return ast.NewExprStmt(loc, x)
}

func (p *PascalParser) parseExpr() ast.Expr { return p.parseRelation() }

var pascalRelOps = opTable{
	"=": {op: ast.OpEq, level: 0}, "<>": {op: ast.OpNe, level: 0},
	"<": {op: ast.OpLt, level: 0}, ">": {op: ast.OpGt, level: 0},
	"<=": {op: ast.OpLe, level: 0}, ">=": {op: ast.OpGe, level: 0},
}

var pascalSimpleOps = opTable{
	"+": {op: ast.OpAdd, level: 0}, "-": {op: ast.OpSub, level: 0},
	"or": {op: ast.OpLogicalOr, level: 0},
}

var pascalTermOps = opTable{
	"*": {op: ast.OpMul, level: 0}, "/": {op: ast.OpDiv, level: 0},
	"div": {op: ast.OpIntDiv, level: 0}, "mod": {op: ast.OpMod, level: 0},
	"and": {op: ast.OpLogicalAnd, level: 0},
}

func (p *PascalParser) parseRelation() ast.Expr {
	return climbBinary(&p.Base, 0, pascalRelOps, p.parseSimple)
}

func (p *PascalParser) parseSimple() ast.Expr {
	return climbBinary(&p.Base, 0, pascalSimpleOps, p.parseTerm)
}

func (p *PascalParser) parseTerm() ast.Expr {
	return climbBinary(&p.Base, 0, pascalTermOps, p.parseFactor)
}

func (p *PascalParser) parseFactor() ast.Expr {
	loc := p.Cur().Loc
	switch {
	case p.MatchKeyword("not"):
		return ast.NewUnaryExpr(loc, ast.OpNot, p.parseFactor())
	case p.MatchPunct("-"):
		return ast.NewUnaryExpr(loc, ast.OpNeg, p.parseFactor())
	case p.MatchPunct("+"):
		return ast.NewUnaryExpr(loc, ast.OpPos, p.parseFactor())
	default:
		return p.parsePostfix(p.parsePrimary)
	}
}

// parsePostfix applies field access, indexing, calls, and is/as checks
// around whatever parsePrimary produced (spec §4.4 postfix tier).
func (p *PascalParser) parsePostfix(parsePrimary func() ast.Expr) ast.Expr {
	x := parsePrimary()
	for {
		loc := p.Cur().Loc
		switch {
		case p.MatchPunct("."):
			field, _ := p.ExpectIdent(p.code("2130"))
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
			p.ExpectPunct(p.code("2131"), ")")
			x = ast.NewCallExpr(loc, x, args)
		case p.MatchPunct("["):
			idx := p.parseExpr()
			p.ExpectPunct(p.code("2132"), "]")
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

func (p *PascalParser) parsePrimary() ast.Expr {
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
	case p.CheckKeyword("nil"):
		p.Advance()
		return ast.NewNullLit(loc)
	case p.CheckKeyword("self"):
		p.Advance()
		return ast.NewSelfExpr(loc)
	case p.CheckKeyword("inherited"):
		p.Advance()
		return ast.NewSuperExpr(loc)
	case p.CheckKeyword("new"):
		p.Advance()
		typ := p.parseTypeNode()
		var args []ast.Arg
		if p.MatchPunct("(") {
			if !p.CheckPunct(")") {
				for {
					args = append(args, ast.Arg{Value: p.parseExpr()})
					if !p.MatchPunct(",") {
						break
					}
				}
			}
			p.ExpectPunct(p.code("2140"), ")")
		}
		return ast.NewNewExpr(loc, typ, args)
	case p.MatchPunct("("):
		x := p.parseExpr()
		p.ExpectPunct(p.code("2141"), ")")
		return x
	case t.Kind == lexer.Ident:
		p.Advance()
		return ast.NewIdent(loc, t.Text)
	default:
		p.Emitf(diag.Error, p.code("2142"), 1, "expected an expression, got %s", describe(t))
		p.Advance()
		return ast.NewIdent(loc, "")
	}
}
