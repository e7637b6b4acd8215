package parser

import (
	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/lexer"
	"github.com/splanck/vipc/internal/source"
)

// ViperParser implements spec §4.4's ViperLang grammar: entity/value/
// interface declarations with single inheritance and interfaces, generics,
// optionals, guard/match statements, and the canonical full expression
// ladder. ZiaParser embeds this and overrides only what Zia's grammar adds
// (speculative pattern-vs-expression disambiguation in match arms).
type ViperParser struct {
	Base
	zia bool

	// patternFn parses one match-arm pattern. NewViper binds it to
	// parsePattern directly; NewZia rebinds it to a speculative variant
	// that can backtrack, since this field (not a virtual method) is what
	// lets ZiaParser's override reach the recursive sub-pattern calls
	// inside parsePattern itself.
	patternFn func() ast.Pattern
}

// NewViper returns a parser reading lex through em.
func NewViper(lex *lexer.Lexer, em *diag.Emitter) *ViperParser {
	p := &ViperParser{Base: NewBase(lex, em)}
	p.patternFn = p.parsePattern
	return p
}

func (p *ViperParser) code(suffix string) string {
	if p.zia {
		return "Z" + suffix
	}
	return "V" + suffix
}

var viperSyncKeywords = map[string]bool{
	"entity": true, "value": true, "interface": true, "class": true,
	"func": true, "var": true, "let": true, "const": true, "import": true,
	"bind": true, "if": true, "while": true, "for": true, "match": true,
	"guard": true, "return": true, "break": true, "continue": true,
}

// ParseModule parses one ViperLang/Zia compilation unit.
func (p *ViperParser) ParseModule() *ast.ModuleDecl {
	loc := p.Cur().Loc
	var decls []ast.Decl
	for !p.Check(lexer.EOF) {
		d := p.parseTopDecl()
		if d != nil {
			decls = append(decls, d)
		}
	}
	return ast.NewModuleDecl(loc, "", decls)
}

func (p *ViperParser) parseTopDecl() ast.Decl {
	switch {
	case p.CheckKeyword("import"), p.CheckKeyword("bind"):
		return p.parseImport()
	case p.CheckKeyword("abstract"):
		return p.parseTypeDecl()
	case p.CheckKeyword("entity"), p.CheckKeyword("value"), p.CheckKeyword("interface"), p.CheckKeyword("class"):
		return p.parseTypeDecl()
	case p.CheckKeyword("extern"):
		return p.parseFuncDecl()
	case p.CheckKeyword("func"):
		return p.parseFuncDecl()
	case p.CheckKeyword("var"), p.CheckKeyword("let"), p.CheckKeyword("const"):
		return p.parseGlobalVar()
	default:
		p.Emitf(diag.Error, p.code("1200"), 1, "expected a declaration, got %s", describe(p.Cur()))
		p.ResyncAfterError(viperSyncKeywords, map[string]bool{})
		return nil
	}
}

// parseImport handles both "import" (ordinary, cycle-checked per
// spec §4.5) and "bind" (same AST shape; the ImportResolver's cycle
// policy, not the parser, is what distinguishes dialects).
func (p *ViperParser) parseImport() *ast.ImportDecl {
	loc := p.Cur().Loc
	p.Advance()
	var path string
	if p.Cur().Kind == lexer.StringLit {
		path = p.Advance().StrValue
	} else {
		path = p.parseDottedPathString()
	}
	alias := ""
	if p.MatchKeyword("as") {
		alias, _ = p.ExpectIdent(p.code("1201"))
	}
	p.MatchPunct(";")
	return ast.NewImportDecl(loc, path, alias)
}

func (p *ViperParser) parseDottedPathString() string {
	name, _ := p.ExpectIdent(p.code("1202"))
	for p.MatchPunct(".") {
		n2, ok := p.ExpectIdent(p.code("1202"))
		if ok {
			name = name + "." + n2
		}
	}
	return name
}

// parseTypeDecl parses "[abstract] (entity|value|interface|class) Name
// [<T,U>] [: Base] [implements I1, I2] { members }". "class" is accepted
// as a synonym for "entity" (both denote a reference type).
func (p *ViperParser) parseTypeDecl() *ast.TypeDecl {
	loc := p.Cur().Loc
	isAbstract := p.MatchKeyword("abstract")
	var kind ast.TypeDeclKind
	switch {
	case p.MatchKeyword("value"):
		kind = ast.KindValue
	case p.MatchKeyword("interface"):
		kind = ast.KindInterface
	case p.MatchKeyword("entity"):
		kind = ast.KindEntity
	case p.MatchKeyword("class"):
		kind = ast.KindEntity
	}
	name, _ := p.ExpectIdent(p.code("1210"))
	td := ast.NewTypeDecl(loc, kind, name)
	td.IsAbstract = isAbstract

	if p.MatchPunct("<") {
		for {
			tp, ok := p.ExpectIdent(p.code("1211"))
			if ok {
				td.TypeParams = append(td.TypeParams, tp)
			}
			if p.MatchPunct(",") {
				continue
			}
			break
		}
		p.ExpectPunct(p.code("1212"), ">")
	}
	if p.MatchPunct(":") {
		td.Base = p.parseNamedType()
	}
	if p.MatchKeyword("implements") {
		for {
			td.Interfaces = append(td.Interfaces, p.parseNamedType())
			if p.MatchPunct(",") {
				continue
			}
			break
		}
	}
	p.ExpectPunct(p.code("1213"), "{")
	for !p.CheckPunct("}") && !p.Check(lexer.EOF) {
		p.parseMember(td)
	}
	p.ExpectPunct(p.code("1214"), "}")
	return td
}

// parseMember parses one field/property/method/constructor into td,
// handling the modifier prefixes (visibility, virtual/override/abstract/
// static, weak/final) shared by all three member kinds.
func (p *ViperParser) parseMember(td *ast.TypeDecl) {
	vis := ast.VisPublic
	for {
		switch {
		case p.MatchKeyword("protected"):
			vis = ast.VisProtected
			continue
		case p.MatchKeyword("private"):
			vis = ast.VisPrivate
			continue
		case p.MatchKeyword("public"):
			vis = ast.VisPublic
			continue
		}
		break
	}
	isVirtual := p.MatchKeyword("virtual")
	isOverride := p.MatchKeyword("override")
	isAbstract := p.MatchKeyword("abstract")
	isStatic := p.MatchKeyword("static")
	isWeak := p.MatchKeyword("weak")
	isFinal := p.MatchKeyword("final")

	switch {
	case p.CheckKeyword("new"):
		td.Constructors = append(td.Constructors, p.parseConstructor())
	case p.CheckKeyword("func"):
		m := p.parseMethod(vis, isVirtual, isOverride, isAbstract, isStatic)
		td.Methods = append(td.Methods, m)
	case p.CheckKeyword("property"):
		td.Properties = append(td.Properties, p.parseProperty())
	default:
		td.Fields = append(td.Fields, p.parseField(vis, isWeak, isFinal))
	}
}

func (p *ViperParser) parseConstructor() *ast.ConstructorDecl {
	loc := p.Cur().Loc
	p.Advance() // 'new'
	params := p.parseParams()
	body := p.parseBlock()
	return ast.NewConstructorDecl(loc, "new", params, body)
}

func (p *ViperParser) parseMethod(vis ast.Visibility, isVirtual, isOverride, isAbstract, isStatic bool) *ast.MethodDecl {
	loc := p.Cur().Loc
	p.Advance() // 'func'
	name, _ := p.ExpectIdent(p.code("1220"))
	params := p.parseParams()
	var ret ast.TypeNode
	if p.MatchPunct("->") {
		ret = p.parseTypeNode()
	}
	var body *ast.BlockStmt
	if p.CheckPunct("{") {
		body = p.parseBlock()
	} else {
		p.ExpectPunct(p.code("1221"), ";")
	}
	m := ast.NewMethodDecl(loc, name, params, ret, body, vis)
	m.IsVirtual = isVirtual
	m.IsOverride = isOverride
	m.IsAbstract = isAbstract
	m.IsStatic = isStatic
	return m
}

func (p *ViperParser) parseProperty() *ast.PropertyDecl {
	loc := p.Cur().Loc
	p.Advance() // 'property'
	name, _ := p.ExpectIdent(p.code("1230"))
	p.ExpectPunct(p.code("1231"), ":")
	typ := p.parseTypeNode()
	getter, setter := "", ""
	if p.MatchPunct("{") {
		for !p.CheckPunct("}") && !p.Check(lexer.EOF) {
			switch {
			case p.MatchIdentWord("get"):
				getter = name
				if p.CheckPunct("{") {
					p.parseBlock()
				} else {
					p.MatchPunct(";")
				}
			case p.MatchIdentWord("set"):
				setter = name
				if p.CheckPunct("{") {
					p.parseBlock()
				} else {
					p.MatchPunct(";")
				}
			default:
				p.Advance()
			}
		}
		p.ExpectPunct(p.code("1232"), "}")
	} else {
		p.MatchPunct(";")
		getter = name
	}
	return ast.NewPropertyDecl(loc, name, typ, getter, setter)
}

func (p *ViperParser) parseField(vis ast.Visibility, isWeak, isFinal bool) *ast.FieldDecl {
	loc := p.Cur().Loc
	name, _ := p.ExpectIdent(p.code("1240"))
	var typ ast.TypeNode
	if p.MatchPunct(":") {
		typ = p.parseTypeNode()
	}
	f := ast.NewFieldDecl(loc, name, typ, vis)
	f.IsWeak = isWeak
	f.IsFinal = isFinal
	if p.MatchPunct("=") {
		f.Default = p.parseExpr()
	}
	p.MatchPunct(";")
	return f
}

// parseFuncDecl parses "[extern] func Name(params) [-> Ret] { body }" or,
// for an extern declaration without a body, "... -> Ret ["Runtime.Name"];".
func (p *ViperParser) parseFuncDecl() *ast.FunctionDecl {
	loc := p.Cur().Loc
	isExtern := p.MatchKeyword("extern")
	p.ExpectKeyword(p.code("1250"), "func")
	name, _ := p.ExpectIdent(p.code("1251"))
	params := p.parseParams()
	var ret ast.TypeNode
	if p.MatchPunct("->") {
		ret = p.parseTypeNode()
	}
	fd := ast.NewFunctionDecl(loc, name, params, ret, nil)
	fd.IsExtern = isExtern
	if isExtern {
		fd.ExternName = name
		if p.Cur().Kind == lexer.StringLit {
			fd.ExternName = p.Advance().StrValue
		}
		p.ExpectPunct(p.code("1252"), ";")
		return fd
	}
	fd.Body = p.parseBlock()
	return fd
}

func (p *ViperParser) parseGlobalVar() *ast.GlobalVarDecl {
	loc := p.Cur().Loc
	isConst := p.MatchKeyword("const")
	isFinal := isConst
	if !isConst {
		if p.MatchKeyword("let") {
			isFinal = true
		} else {
			p.ExpectKeyword(p.code("1260"), "var")
		}
	}
	name, _ := p.ExpectIdent(p.code("1261"))
	var typ ast.TypeNode
	if p.MatchPunct(":") {
		typ = p.parseTypeNode()
	}
	var init ast.Expr
	if p.MatchPunct("=") {
		init = p.parseExpr()
	}
	p.MatchPunct(";")
	return ast.NewGlobalVarDecl(loc, name, typ, init, isConst, isFinal)
}

func (p *ViperParser) parseParams() []ast.Param {
	p.ExpectPunct(p.code("1270"), "(")
	var params []ast.Param
	if p.MatchPunct(")") {
		return params
	}
	for {
		isVar := p.MatchKeyword("var")
		name, _ := p.ExpectIdent(p.code("1271"))
		var typ ast.TypeNode
		if p.MatchPunct(":") {
			typ = p.parseTypeNode()
		}
		var def ast.Expr
		if p.MatchPunct("=") {
			def = p.parseExpr()
		}
		params = append(params, ast.Param{Name: name, Type: typ, Default: def, IsVar: isVar})
		if p.MatchPunct(",") {
			continue
		}
		break
	}
	p.ExpectPunct(p.code("1272"), ")")
	return params
}

func (p *ViperParser) parseNamedType() *ast.NamedType {
	loc := p.Cur().Loc
	var qualifier []string
	name, _ := p.ExpectIdent(p.code("1280"))
	for p.CheckPunct(".") && p.PeekNext().Kind == lexer.Ident {
		qualifier = append(qualifier, name)
		p.Advance()
		name, _ = p.ExpectIdent(p.code("1280"))
	}
	return ast.NewNamedType(loc, qualifier, name)
}

// parseTypeNode parses a type annotation: a named/generic type, a
// function type "(T1, T2) -> R", a tuple type "(T1, T2)", or any of those
// suffixed with "?" for Optional.
func (p *ViperParser) parseTypeNode() ast.TypeNode {
	loc := p.Cur().Loc
	var base ast.TypeNode
	if p.CheckPunct("(") {
		p.Advance()
		var elems []ast.TypeNode
		if !p.CheckPunct(")") {
			for {
				elems = append(elems, p.parseTypeNode())
				if p.MatchPunct(",") {
					continue
				}
				break
			}
		}
		p.ExpectPunct(p.code("1290"), ")")
		if p.MatchPunct("->") {
			ret := p.parseTypeNode()
			base = ast.NewFuncTypeNode(loc, elems, ret)
		} else {
			base = ast.NewTupleTypeNode(loc, elems)
		}
	} else {
		nt := p.parseNamedType()
		if p.MatchPunct("<") {
			var args []ast.TypeNode
			for {
				args = append(args, p.parseTypeNode())
				if p.MatchPunct(",") {
					continue
				}
				break
			}
			p.ExpectPunct(p.code("1291"), ">")
			base = ast.NewGenericTypeNode(loc, nt.Name, args)
		} else {
			base = nt
		}
	}
	for p.MatchPunct("?") {
		base = ast.NewOptionalTypeNode(loc, base)
	}
	return base
}

func (p *ViperParser) parseBlock() *ast.BlockStmt {
	loc := p.Cur().Loc
	p.ExpectPunct(p.code("1300"), "{")
	var stmts []ast.Stmt
	for !p.CheckPunct("}") && !p.Check(lexer.EOF) {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	p.ExpectPunct(p.code("1301"), "}")
	return ast.NewBlockStmt(loc, stmts)
}

func (p *ViperParser) parseStmt() ast.Stmt {
	switch {
	case p.CheckKeyword("var"), p.CheckKeyword("let"), p.CheckKeyword("const"):
		return p.parseVarStmt()
	case p.CheckKeyword("if"):
		return p.parseIfStmt()
	case p.CheckKeyword("while"):
		return p.parseWhileStmt()
	case p.CheckKeyword("for"):
		return p.parseForStmt()
	case p.CheckKeyword("guard"):
		return p.parseGuardStmt()
	case p.CheckKeyword("match"):
		return p.parseMatchStmt()
	case p.CheckKeyword("return"):
		return p.parseReturnStmt()
	case p.CheckKeyword("break"):
		loc := p.Cur().Loc
		p.Advance()
		p.MatchPunct(";")
		return ast.NewBreakStmt(loc)
	case p.CheckKeyword("continue"):
		loc := p.Cur().Loc
		p.Advance()
		p.MatchPunct(";")
		return ast.NewContinueStmt(loc)
	case p.CheckPunct("{"):
		return p.parseBlock()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *ViperParser) parseVarStmt() ast.Stmt {
	loc := p.Cur().Loc
	isFinal := p.CheckKeyword("const") || p.CheckKeyword("let")
	p.Advance()
	name, _ := p.ExpectIdent(p.code("1310"))
	var typ ast.TypeNode
	if p.MatchPunct(":") {
		typ = p.parseTypeNode()
	}
	var init ast.Expr
	if p.MatchPunct("=") {
		init = p.parseExpr()
	}
	p.MatchPunct(";")
	return ast.NewVarStmt(loc, name, typ, init, isFinal)
}

func (p *ViperParser) parseIfStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	cond := p.parseExpr()
	then := p.parseBlock()
	var els ast.Stmt
	if p.MatchKeyword("else") {
		if p.CheckKeyword("if") {
			els = p.parseIfStmt()
		} else {
			els = p.parseBlock()
		}
	}
	return ast.NewIfStmt(loc, cond, then, els)
}

func (p *ViperParser) parseWhileStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	cond := p.parseExpr()
	body := p.parseBlock()
	return ast.NewWhileStmt(loc, cond, body)
}

// parseForStmt parses "for V in lo..hi { body }" as a counted ForStmt, and
// "for V in collection { body }" as ForInStmt for any other collection
// expression (spec §4.6 "For"/"For-in" share one surface keyword here).
func (p *ViperParser) parseForStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	v, _ := p.ExpectIdent(p.code("1320"))
	p.ExpectKeyword(p.code("1321"), "in")
	expr := p.parseExpr()
	if rng, ok := expr.(*ast.RangeExpr); ok {
		body := p.parseBlock()
		return ast.NewForStmt(loc, v, rng.Lo, rng.Hi, nil, false, body)
	}
	body := p.parseBlock()
	return ast.NewForInStmt(loc, v, expr, body)
}

func (p *ViperParser) parseGuardStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	cond := p.parseExpr()
	p.ExpectKeyword(p.code("1330"), "else")
	els := p.parseBlock()
	return ast.NewGuardStmt(loc, cond, els)
}

// parseMatchStmt parses "match scrutinee { pattern [if guard] => body, ... }".
// ViperParser parses each arm's pattern with the plain (non-speculative)
// grammar; ZiaParser overrides parsePattern to add bounded backtracking.
func (p *ViperParser) parseMatchStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	scrutinee := p.parseExpr()
	p.ExpectPunct(p.code("1340"), "{")
	var arms []ast.MatchStmtArm
	for !p.CheckPunct("}") && !p.Check(lexer.EOF) {
		pat := p.patternFn()
		var guard ast.Expr
		if p.MatchKeyword("if") {
			guard = p.parseExpr()
		}
		p.ExpectPunct(p.code("1341"), "=>")
		var body ast.Stmt
		if p.CheckPunct("{") {
			body = p.parseBlock()
		} else {
			body = ast.NewExprStmt(p.Cur().Loc, p.parseExpr())
		}
		arms = append(arms, ast.MatchStmtArm{Pattern: pat, Guard: guard, Body: body})
		p.MatchPunct(",")
	}
	p.ExpectPunct(p.code("1342"), "}")
	return ast.NewMatchStmt(loc, scrutinee, arms)
}

// parsePattern parses one match-arm pattern: "_" (wildcard), a literal, a
// bound name, "Name(sub, sub)" (constructor), or "(sub, sub)" (tuple).
func (p *ViperParser) parsePattern() ast.Pattern {
	switch {
	case p.MatchIdentWord("_"):
		return ast.Pattern{Kind: ast.PatWildcard}
	case p.CheckKeyword("null"):
		p.Advance()
		return ast.Pattern{Kind: ast.PatLiteral, At: ast.NewNullLit(p.Cur().Loc)}
	case p.Cur().Kind == lexer.IntLit || p.Cur().Kind == lexer.NumberLit || p.Cur().Kind == lexer.StringLit:
		return ast.Pattern{Kind: ast.PatLiteral, At: p.parsePrimary()}
	case p.CheckPunct("("):
		p.Advance()
		var sub []ast.Pattern
		if !p.CheckPunct(")") {
			for {
				sub = append(sub, p.patternFn())
				if p.MatchPunct(",") {
					continue
				}
				break
			}
		}
		p.ExpectPunct(p.code("1350"), ")")
		return ast.Pattern{Kind: ast.PatTuple, Sub: sub}
	case p.Cur().Kind == lexer.Ident:
		name, _ := p.ExpectIdent(p.code("1351"))
		if p.MatchPunct("(") {
			var sub []ast.Pattern
			if !p.CheckPunct(")") {
				for {
					sub = append(sub, p.patternFn())
					if p.MatchPunct(",") {
						continue
					}
					break
				}
			}
			p.ExpectPunct(p.code("1352"), ")")
			return ast.Pattern{Kind: ast.PatConstructor, Name: name, Sub: sub}
		}
		return ast.Pattern{Kind: ast.PatBinding, Name: name}
	default:
		p.Emitf(diag.Error, p.code("1353"), 1, "expected a pattern, got %s", describe(p.Cur()))
		p.Advance()
		return ast.Pattern{Kind: ast.PatWildcard}
	}
}

func (p *ViperParser) parseReturnStmt() ast.Stmt {
	loc := p.Cur().Loc
	p.Advance()
	var val ast.Expr
	if !p.CheckPunct(";") && !p.CheckPunct("}") {
		val = p.parseExpr()
	}
	p.MatchPunct(";")
	return ast.NewReturnStmt(loc, val)
}

func (p *ViperParser) parseExprOrAssignStmt() ast.Stmt {
	loc := p.Cur().Loc
	x := p.parseExpr()
	if p.MatchPunct("=") {
		val := p.parseExpr()
		p.MatchPunct(";")
		return ast.NewAssignStmt(loc, x, val)
	}
	p.MatchPunct(";")
	return ast.NewExprStmt(loc, x)
}

// Expression grammar: assignment is handled at statement level above this
// ladder, which runs ternary -> range -> coalesce -> or -> and -> bit-or
// -> bit-xor -> bit-and -> equality -> comparison -> additive ->
// multiplicative -> unary -> postfix -> primary (spec §4.4 "canonical
// precedence ladder").
func (p *ViperParser) parseExpr() ast.Expr { return p.parseTernary() }

func (p *ViperParser) parseTernary() ast.Expr {
	loc := p.Cur().Loc
	cond := p.parseRange()
	if p.MatchPunct("?") {
		then := p.parseExpr()
		p.ExpectPunct(p.code("1400"), ":")
		els := p.parseExpr()
		return ast.NewTernaryExpr(loc, cond, then, els)
	}
	return cond
}

func (p *ViperParser) parseRange() ast.Expr {
	loc := p.Cur().Loc
	lo := p.parseCoalesce()
	if p.MatchPunct("..") {
		hi := p.parseCoalesce()
		return ast.NewRangeExpr(loc, lo, hi)
	}
	return lo
}

func (p *ViperParser) parseCoalesce() ast.Expr {
	loc := p.Cur().Loc
	left := p.parseOr()
	for p.MatchPunct("??") {
		right := p.parseOr()
		left = ast.NewCoalesceExpr(loc, left, right)
	}
	return left
}

var viperOrOps = opTable{"or": {op: ast.OpLogicalOr}}
var viperAndOps = opTable{"and": {op: ast.OpLogicalAnd}}
var viperBitOrOps = opTable{"|": {op: ast.OpBitOr}}
var viperBitXorOps = opTable{"^": {op: ast.OpBitXor}}
var viperBitAndOps = opTable{"&": {op: ast.OpBitAnd}}
var viperEqOps = opTable{"==": {op: ast.OpEq}, "!=": {op: ast.OpNe}}
var viperCmpOps = opTable{"<": {op: ast.OpLt}, ">": {op: ast.OpGt}, "<=": {op: ast.OpLe}, ">=": {op: ast.OpGe}}
var viperAddOps = opTable{"+": {op: ast.OpAdd}, "-": {op: ast.OpSub}}
var viperMulOps = opTable{"*": {op: ast.OpMul}, "/": {op: ast.OpDiv}, "mod": {op: ast.OpMod}}

func (p *ViperParser) parseOr() ast.Expr  { return climbBinary(&p.Base, 0, viperOrOps, p.parseAnd) }
func (p *ViperParser) parseAnd() ast.Expr { return climbBinary(&p.Base, 0, viperAndOps, p.parseBitOr) }
func (p *ViperParser) parseBitOr() ast.Expr {
	return climbBinary(&p.Base, 0, viperBitOrOps, p.parseBitXor)
}
func (p *ViperParser) parseBitXor() ast.Expr {
	return climbBinary(&p.Base, 0, viperBitXorOps, p.parseBitAnd)
}
func (p *ViperParser) parseBitAnd() ast.Expr {
	return climbBinary(&p.Base, 0, viperBitAndOps, p.parseEquality)
}
func (p *ViperParser) parseEquality() ast.Expr {
	return climbBinary(&p.Base, 0, viperEqOps, p.parseComparison)
}
func (p *ViperParser) parseComparison() ast.Expr {
	return climbBinary(&p.Base, 0, viperCmpOps, p.parseAdditive)
}
func (p *ViperParser) parseAdditive() ast.Expr {
	return climbBinary(&p.Base, 0, viperAddOps, p.parseMul)
}
func (p *ViperParser) parseMul() ast.Expr { return climbBinary(&p.Base, 0, viperMulOps, p.parseUnary) }

func (p *ViperParser) parseUnary() ast.Expr {
	loc := p.Cur().Loc
	switch {
	case p.MatchKeyword("not"):
		return ast.NewUnaryExpr(loc, ast.OpNot, p.parseUnary())
	case p.MatchPunct("-"):
		return ast.NewUnaryExpr(loc, ast.OpNeg, p.parseUnary())
	case p.MatchPunct("!"):
		return ast.NewUnaryExpr(loc, ast.OpBitNot, p.parseUnary())
	default:
		return p.parsePostfix()
	}
}

func (p *ViperParser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		loc := p.Cur().Loc
		switch {
		case p.MatchPunct("?."):
			field, _ := p.ExpectIdent(p.code("1410"))
			x = ast.NewOptionalChainExpr(loc, x, field)
		case p.MatchPunct("."):
			if p.Cur().Kind == lexer.IntLit {
				idx := int(p.Advance().IntValue)
				x = ast.NewTupleIndexExpr(loc, x, idx)
				continue
			}
			field, _ := p.ExpectIdent(p.code("1411"))
			x = ast.NewFieldExpr(loc, x, field)
		case p.MatchPunct("("):
			var args []ast.Arg
			if !p.CheckPunct(")") {
				for {
					args = append(args, p.parseArg())
					if p.MatchPunct(",") {
						continue
					}
					break
				}
			}
			p.ExpectPunct(p.code("1412"), ")")
			x = ast.NewCallExpr(loc, x, args)
		case p.MatchPunct("["):
			idx := p.parseExpr()
			p.ExpectPunct(p.code("1413"), "]")
			x = ast.NewIndexExpr(loc, x, idx)
		case p.MatchKeyword("is"):
			x = ast.NewIsExpr(loc, x, p.parseTypeNode())
		case p.MatchKeyword("as"):
			x = ast.NewAsExpr(loc, x, p.parseTypeNode())
		case p.MatchPunct("!"):
			x = ast.NewTryExpr(loc, x)
		default:
			return x
		}
	}
}

func (p *ViperParser) parseArg() ast.Arg {
	if p.Cur().Kind == lexer.Ident && p.PeekNext().Kind == lexer.Punct && p.PeekNext().Text == ":" {
		name := p.Advance().Text
		p.Advance() // ':'
		return ast.Arg{Name: name, Value: p.parseExpr()}
	}
	return ast.Arg{Value: p.parseExpr()}
}

func (p *ViperParser) parsePrimary() ast.Expr {
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
	case t.Kind == lexer.StringStart:
		return p.parseInterpString()
	case p.CheckKeyword("true"):
		p.Advance()
		return ast.NewBoolLit(loc, true)
	case p.CheckKeyword("false"):
		p.Advance()
		return ast.NewBoolLit(loc, false)
	case p.CheckKeyword("null"):
		p.Advance()
		return ast.NewNullLit(loc)
	case p.CheckKeyword("self"):
		p.Advance()
		return ast.NewSelfExpr(loc)
	case p.CheckKeyword("super"):
		p.Advance()
		return ast.NewSuperExpr(loc)
	case p.CheckKeyword("new"):
		p.Advance()
		typ := p.parseTypeNode()
		p.ExpectPunct(p.code("1420"), "(")
		var args []ast.Arg
		if !p.CheckPunct(")") {
			for {
				args = append(args, p.parseArg())
				if p.MatchPunct(",") {
					continue
				}
				break
			}
		}
		p.ExpectPunct(p.code("1421"), ")")
		return ast.NewNewExpr(loc, typ, args)
	case p.CheckKeyword("match"):
		return p.parseMatchExpr()
	case p.CheckKeyword("if"):
		return p.parseIfExpr()
	case p.CheckKeyword("func"):
		return p.parseLambda()
	case p.MatchPunct("["):
		return p.parseListOrSet(loc)
	case p.MatchPunct("{"):
		return p.parseBlockOrMapExpr(loc)
	case p.MatchPunct("("):
		return p.parseParenOrTuple(loc)
	case t.Kind == lexer.Ident:
		p.Advance()
		return ast.NewIdent(loc, t.Text)
	default:
		p.Emitf(diag.Error, p.code("1430"), 1, "expected an expression, got %s", describe(t))
		p.Advance()
		return ast.NewIdent(loc, "")
	}
}

func (p *ViperParser) parseInterpString() ast.Expr {
	loc := p.Cur().Loc
	var segs []string
	var exprs []ast.Expr
	t := p.Advance() // StringStart
	segs = append(segs, t.StrValue)
	for {
		exprs = append(exprs, p.parseExpr())
		if p.Cur().Kind == lexer.StringMid {
			m := p.Advance()
			segs = append(segs, m.StrValue)
			continue
		}
		if p.Cur().Kind == lexer.StringEnd {
			e := p.Advance()
			segs = append(segs, e.StrValue)
		}
		break
	}
	return ast.NewInterpStringExpr(loc, segs, exprs)
}

func (p *ViperParser) parseMatchExpr() ast.Expr {
	loc := p.Cur().Loc
	p.Advance()
	scrutinee := p.parseExpr()
	p.ExpectPunct(p.code("1440"), "{")
	var arms []ast.MatchArm
	for !p.CheckPunct("}") && !p.Check(lexer.EOF) {
		pat := p.patternFn()
		var guard ast.Expr
		if p.MatchKeyword("if") {
			guard = p.parseExpr()
		}
		p.ExpectPunct(p.code("1441"), "=>")
		body := p.parseExpr()
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		p.MatchPunct(",")
	}
	p.ExpectPunct(p.code("1442"), "}")
	return ast.NewMatchExpr(loc, scrutinee, arms)
}

func (p *ViperParser) parseIfExpr() ast.Expr {
	loc := p.Cur().Loc
	p.Advance()
	cond := p.parseExpr()
	then := p.parseBlockExprBody()
	p.ExpectKeyword(p.code("1450"), "else")
	els := p.parseBlockExprBody()
	return ast.NewIfExpr(loc, cond, then, els)
}

func (p *ViperParser) parseBlockExprBody() ast.Expr {
	loc := p.Cur().Loc
	p.ExpectPunct(p.code("1451"), "{")
	var stmts []ast.Stmt
	var tail ast.Expr
	for !p.CheckPunct("}") && !p.Check(lexer.EOF) {
		s := p.parseStmt()
		if es, ok := s.(*ast.ExprStmt); ok && p.CheckPunct("}") {
			tail = es.X
			break
		}
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	p.ExpectPunct(p.code("1452"), "}")
	return ast.NewBlockExpr(loc, stmts, tail)
}

func (p *ViperParser) parseLambda() ast.Expr {
	loc := p.Cur().Loc
	p.Advance() // 'func'
	params := p.parseParams()
	var ret ast.TypeNode
	if p.MatchPunct("->") {
		ret = p.parseTypeNode()
	}
	var body ast.Expr
	if p.MatchPunct("=>") {
		body = p.parseExpr()
	} else {
		body = p.parseBlockExprBody()
	}
	return ast.NewLambdaExpr(loc, params, ret, body)
}

func (p *ViperParser) parseListOrSet(loc source.Loc) ast.Expr {
	if p.MatchPunct("]") {
		return ast.NewListLit(loc, nil)
	}
	first := p.parseExpr()
	if p.MatchPunct(":") {
		entries := []ast.MapEntry{{Key: first, Value: p.parseExpr()}}
		for p.MatchPunct(",") {
			k := p.parseExpr()
			p.ExpectPunct(p.code("1460"), ":")
			v := p.parseExpr()
			entries = append(entries, ast.MapEntry{Key: k, Value: v})
		}
		p.ExpectPunct(p.code("1461"), "]")
		return ast.NewMapLit(loc, entries)
	}
	elems := []ast.Expr{first}
	for p.MatchPunct(",") {
		elems = append(elems, p.parseExpr())
	}
	p.ExpectPunct(p.code("1462"), "]")
	return ast.NewListLit(loc, elems)
}

func (p *ViperParser) parseBlockOrMapExpr(loc source.Loc) ast.Expr {
	if p.MatchPunct("}") {
		return ast.NewSetLit(loc, nil)
	}
	first := p.parseExpr()
	if p.MatchPunct(":") {
		entries := []ast.MapEntry{{Key: first, Value: p.parseExpr()}}
		for p.MatchPunct(",") {
			k := p.parseExpr()
			p.ExpectPunct(p.code("1463"), ":")
			v := p.parseExpr()
			entries = append(entries, ast.MapEntry{Key: k, Value: v})
		}
		p.ExpectPunct(p.code("1464"), "}")
		return ast.NewMapLit(loc, entries)
	}
	elems := []ast.Expr{first}
	for p.MatchPunct(",") {
		elems = append(elems, p.parseExpr())
	}
	p.ExpectPunct(p.code("1465"), "}")
	return ast.NewSetLit(loc, elems)
}

func (p *ViperParser) parseParenOrTuple(loc source.Loc) ast.Expr {
	if p.MatchPunct(")") {
		return ast.NewUnitLit(loc)
	}
	first := p.parseExpr()
	if !p.CheckPunct(",") {
		p.ExpectPunct(p.code("1470"), ")")
		return first
	}
	elems := []ast.Expr{first}
	for p.MatchPunct(",") {
		elems = append(elems, p.parseExpr())
	}
	p.ExpectPunct(p.code("1471"), ")")
	return ast.NewTupleExpr(loc, elems)
}
