// Package iltext implements spec §4.7, the textual encoding that serves as
// the pivot between every frontend dialect and any downstream backend: a
// version directive, an optional target triple, extern declarations, and
// function definitions of labelled blocks and line-oriented instructions.
package iltext

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/ferrors"
	"github.com/splanck/vipc/internal/il"
	"github.com/splanck/vipc/internal/source"
)

var knownConventions = map[string]bool{
	"": true, "ccall": true, "stdcall": true, "fastcall": true, "vipercall": true,
}

// parser is a one-token-lookahead recursive-descent reader over the IL
// text token stream, grounded on the same peek/advance/check/match/expect
// primitives every dialect parser uses (spec §4.4), reused here because
// the IL text form has its own small grammar but the same shape of
// problem.
type parser struct {
	sc  *scanner
	em  *diag.Emitter
	cur token

	sawVersion bool
	versionLoc source.Loc
	sawTarget  bool
	targetLoc  source.Loc
}

// Parse reads src (registered under file in the source manager backing em)
// and returns the IL module it describes. The returned error is non-nil
// only for a condition that leaves the parser unable to recover any
// further structure (e.g. end of file before a closing '}'); diagnostics
// for recoverable problems — duplicate blocks, unknown branch targets,
// malformed headers — are reported through em and do not, by themselves,
// produce a non-nil error, matching spec §7's "collect, don't throw"
// policy. Callers gate on the emitter's error count, not on this error.
func Parse(file source.FileID, src string, em *diag.Emitter) (*il.Module, error) {
	p := &parser{sc: newScanner(file, src), em: em}
	p.advance()
	return p.parseModule()
}

func (p *parser) advance() token {
	prev := p.cur
	p.cur = p.sc.next()
	return prev
}

func (p *parser) check(k tokKind) bool { return p.cur.kind == k }

func (p *parser) match(k tokKind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) skipNewlines() {
	for p.check(tokNewline) {
		p.advance()
	}
}

// skipToLineEnd consumes tokens up to (not including) the next newline or
// EOF, used for error recovery between top-level constructs.
func (p *parser) skipToLineEnd() {
	for !p.check(tokNewline) && !p.check(tokEOF) {
		p.advance()
	}
}

func (p *parser) expectIdent(what string) (string, bool) {
	if p.cur.kind == tokIdent {
		tok := p.advance()
		return tok.text, true
	}
	p.em.EmitExpected(CodeMalformedHeader, p.cur.loc, what, tokDesc(p.cur))
	return "", false
}

func (p *parser) parseModule() (*il.Module, error) {
	mod := &il.Module{}
	for {
		p.skipNewlines()
		switch {
		case p.check(tokEOF):
			return mod, nil
		case p.cur.kind == tokIdent && p.cur.text == "il":
			p.parseVersionDirective(mod)
		case p.cur.kind == tokIdent && p.cur.text == "target":
			p.parseTargetDirective(mod)
		case p.cur.kind == tokIdent && p.cur.text == "extern":
			if e, ok := p.parseExtern(); ok {
				mod.Externs = append(mod.Externs, e)
			}
		case p.cur.kind == tokIdent && p.cur.text == "func":
			if f, err := p.parseFunction(); err != nil {
				return mod, err
			} else if f != nil {
				mod.Functions = append(mod.Functions, f)
			}
		default:
			p.em.Emitf(diag.Error, CodeUnexpectedToken, p.cur.loc, 1,
				"unexpected token %s at module level", tokDesc(p.cur))
			p.skipToLineEnd()
		}
	}
}

func (p *parser) parseVersionDirective(mod *il.Module) {
	loc := p.cur.loc
	p.advance() // 'il'
	version := p.restOfLine()
	if p.sawVersion {
		p.em.Emitf(diag.Error, CodeDuplicateVersion, loc, 1,
			"duplicate version directive (first seen at line %d)", p.versionLoc.Line)
		return
	}
	p.sawVersion = true
	p.versionLoc = loc
	mod.Version = version

	v := strings.TrimSpace(version)
	if v == "" {
		p.em.Emitf(diag.Error, CodeMalformedHeader, loc, 1, "empty version directive")
		return
	}
	if !semver.IsValid(normalizeSemver(v)) {
		p.em.Emitf(diag.Warning, CodeMalformedHeader, loc, uint32(len(v)),
			"version %q is not a recognized semantic version", v)
	}
}

// normalizeSemver adapts a bare "1.0.0"-style IL version to the "vX.Y.Z"
// form golang.org/x/mod/semver requires.
func normalizeSemver(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

func (p *parser) parseTargetDirective(mod *il.Module) {
	loc := p.cur.loc
	p.advance() // 'target'
	var triple string
	if p.cur.kind == tokString || p.cur.kind == tokIdent {
		triple = p.cur.text
		wasIdent := p.cur.kind == tokIdent
		line, end := p.cur.loc.Line, p.cur.loc.Column+uint32(len(p.cur.text))
		p.advance()
		// A bare triple such as x86_64-unknown-linux scans as several
		// adjacent tokens ('-' is its own token); join those with no gap.
		for wasIdent && (p.cur.kind == tokIdent || p.cur.kind == tokNumber) &&
			p.cur.loc.Line == line && p.cur.loc.Column == end {
			triple += p.cur.text
			end += uint32(len(p.cur.text))
			p.advance()
		}
	}
	if !p.check(tokNewline) && !p.check(tokEOF) {
		p.em.Emit(diag.Error, CodeTrailingTargetJunk, p.cur.loc, 1,
			"unexpected trailing tokens after target triple")
		p.skipToLineEnd()
	}
	if p.sawTarget {
		p.em.Emitf(diag.Error, CodeDuplicateTarget, loc, 1,
			"duplicate target triple (first seen at line %d)", p.targetLoc.Line)
		return
	}
	p.sawTarget = true
	p.targetLoc = loc
	mod.TargetTriple = triple
}

// restOfLine concatenates every token's text up to the next newline/EOF,
// used for the version directive whose spelling is free-form.
func (p *parser) restOfLine() string {
	var out string
	for !p.check(tokNewline) && !p.check(tokEOF) {
		if out != "" {
			out += " "
		}
		out += p.cur.text
		p.advance()
	}
	return out
}

// parseParamList parses "(<ParamList>)": zero or more "Type %name" entries
// separated by commas, each name unique within the list (spec §4.7).
func (p *parser) parseParamList() []il.Param {
	if !p.match(tokLParen) {
		p.em.EmitExpected(CodeMalformedHeader, p.cur.loc, "'('", tokDesc(p.cur))
		return nil
	}
	var params []il.Param
	seen := make(map[string]bool)
	if p.check(tokRParen) {
		p.advance()
		return params
	}
	for {
		if p.check(tokComma) || p.check(tokRParen) {
			p.em.Emit(diag.Error, CodeEmptyParamSlot, p.cur.loc, 1, "empty parameter slot")
			if p.check(tokComma) {
				p.advance()
				continue
			}
			break
		}
		ty, ok := p.expectIdent("a parameter type")
		if !ok {
			break
		}
		if !p.check(tokLocal) {
			p.em.EmitExpected(CodeMalformedHeader, p.cur.loc, "parameter name starting with '%'", tokDesc(p.cur))
			break
		}
		name := p.advance().text
		if seen[name] {
			p.em.Emitf(diag.Error, CodeDuplicateParam, p.cur.loc, uint32(len(name)),
				"duplicate parameter name '%%%s'", name)
		}
		seen[name] = true
		params = append(params, il.Param{Type: ty, Name: name})
		if p.match(tokComma) {
			continue
		}
		break
	}
	if !p.match(tokRParen) {
		p.em.EmitExpected(CodeMalformedHeader, p.cur.loc, "')'", tokDesc(p.cur))
	}
	return params
}

func (p *parser) parseRetType() string {
	if !p.match(tokArrow) {
		p.em.EmitExpected(CodeMalformedHeader, p.cur.loc, "'->'", tokDesc(p.cur))
		return ""
	}
	ty, _ := p.expectIdent("a return type")
	return ty
}

func (p *parser) parseExtern() (il.Extern, bool) {
	loc := p.cur.loc
	p.advance() // 'extern'
	conv := ""
	if p.cur.kind == tokIdent && p.peekAheadIsGlobal() {
		conv = p.advance().text
		if !knownConventions[conv] {
			p.em.Emitf(diag.Error, CodeUnknownConvention, loc, uint32(len(conv)),
				"unknown calling convention '%s'", conv)
		}
	}
	if !p.check(tokGlobal) {
		p.em.EmitExpected(CodeMalformedHeader, p.cur.loc, "'@name'", tokDesc(p.cur))
		p.skipToLineEnd()
		return il.Extern{}, false
	}
	name := p.advance().text
	params := p.parseParamList()
	ret := p.parseRetType()
	if !p.check(tokNewline) && !p.check(tokEOF) {
		p.em.Emit(diag.Error, CodeMalformedHeader, p.cur.loc, 1, "unexpected tokens after extern declaration")
		p.skipToLineEnd()
	}
	return il.Extern{Name: name, Conv: conv, Params: params, Ret: ret, Loc: loc}, true
}

// peekAheadIsGlobal reports whether the token after p.cur is a '@name',
// used to decide whether the current identifier is a calling-convention
// keyword rather than the extern's own name.
func (p *parser) peekAheadIsGlobal() bool {
	save := *p.sc
	saveCur := p.cur
	p.advance()
	isGlobal := p.cur.kind == tokGlobal
	*p.sc = save
	p.cur = saveCur
	return isGlobal
}

func (p *parser) parseFunction() (*il.Function, error) {
	loc := p.cur.loc
	p.advance() // 'func'
	if !p.check(tokGlobal) {
		p.em.EmitExpected(CodeMalformedHeader, p.cur.loc, "'@name'", tokDesc(p.cur))
		p.skipToLineEnd()
		return nil, nil
	}
	name := p.advance().text
	params := p.parseParamList()
	ret := p.parseRetType()
	if !p.match(tokLBrace) {
		p.em.EmitExpected(CodeMalformedHeader, p.cur.loc, "'{'", tokDesc(p.cur))
		p.skipToLineEnd()
		return nil, nil
	}
	fn := &il.Function{Name: name, Params: params, Ret: ret, Loc: loc}
	seenBlocks := make(map[string]source.Loc)
	for {
		p.skipNewlines()
		if p.check(tokRBrace) {
			p.advance()
			break
		}
		if p.check(tokEOF) {
			return fn, ferrors.New(loc, "unexpected end of file; missing '}'")
		}
		block := p.parseBlock()
		if block == nil {
			continue
		}
		if _, dup := seenBlocks[block.Label]; dup {
			p.em.Emitf(diag.Error, CodeDuplicateBlock, block.Loc, uint32(len(block.Label)),
				"duplicate block '%s' (line %d)", block.Label, block.Loc.Line)
			continue
		}
		seenBlocks[block.Label] = block.Loc
		fn.Blocks = append(fn.Blocks, block)
	}
	p.validateBranchTargets(fn)
	return fn, nil
}

func (p *parser) parseBlock() *il.Block {
	loc := p.cur.loc
	if p.cur.kind != tokIdent {
		p.em.Emit(diag.Error, CodeMissingLabel, loc, 1, "expected a block label")
		p.skipToLineEnd()
		return nil
	}
	label := p.advance().text
	var params []il.Param
	if p.check(tokLParen) {
		params = p.parseParamList()
	}
	if !p.match(tokColon) {
		p.em.EmitExpected(CodeMissingLabel, p.cur.loc, "':' after block label", tokDesc(p.cur))
	}
	block := &il.Block{Label: label, Params: params, Loc: loc}
	seenResults := make(map[string]bool)
	for {
		p.skipNewlines()
		if p.check(tokRBrace) || p.check(tokEOF) {
			break
		}
		if p.cur.kind == tokIdent && p.peekAheadIsBlockStart() {
			break
		}
		instr := p.parseInstr(seenResults)
		if instr == nil {
			continue
		}
		block.Instructions = append(block.Instructions, *instr)
		if il.IsTerminator(instr.Opcode) {
			term := *instr
			block.Terminator = &term
		}
	}
	return block
}

// peekAheadIsBlockStart reports whether the current identifier begins a
// new block header rather than an instruction: "label:" or
// "label(<params>):" with no '=' or opcode shape in between.
func (p *parser) peekAheadIsBlockStart() bool {
	save := *p.sc
	saveCur := p.cur
	defer func() { *p.sc = save; p.cur = saveCur }()

	p.advance()
	if p.cur.kind == tokColon {
		return true
	}
	if p.cur.kind == tokLParen {
		depth := 0
		for {
			switch p.cur.kind {
			case tokLParen:
				depth++
			case tokRParen:
				depth--
			case tokEOF, tokNewline:
				return false
			}
			p.advance()
			if depth == 0 {
				break
			}
		}
		return p.cur.kind == tokColon
	}
	return false
}

func (p *parser) parseInstr(seenResults map[string]bool) *il.Instr {
	loc := p.cur.loc
	var result string
	if p.cur.kind == tokLocal {
		save := *p.sc
		saveCur := p.cur
		name := p.cur.text
		p.advance()
		if p.check(tokEquals) {
			p.advance()
			if seenResults[name] {
				p.em.Emitf(diag.Error, CodeDuplicateResult, loc, uint32(len(name)),
					"duplicate result '%%%s'", name)
			}
			seenResults[name] = true
			result = name
		} else {
			*p.sc = save
			p.cur = saveCur
		}
	}
	if p.cur.kind != tokIdent {
		p.em.Emit(diag.Error, CodeUnexpectedToken, p.cur.loc, 1, "expected an opcode")
		p.skipToLineEnd()
		return nil
	}
	opcode := p.advance().text
	var operands []string
	parenDepth := 0
	for {
		switch p.cur.kind {
		case tokNewline, tokEOF:
			goto done
		case tokRBrace:
			if parenDepth == 0 {
				goto done
			}
		case tokLParen:
			parenDepth++
		case tokRParen:
			parenDepth--
		}
		operands = append(operands, tokDesc(p.cur))
		p.advance()
	}
done:
	if opcode == "call" && parenDepth != 0 {
		p.em.Emit(diag.Error, CodeMalformedCall, loc, 1, "malformed call: unbalanced argument list")
	}
	return &il.Instr{Opcode: opcode, Operands: operands, Result: result, Loc: loc}
}

// validateBranchTargets checks every br/brcond/switch operand that names a
// block is a block that actually exists in fn (spec §4.7's "unknown block
// 'L'" diagnostic).
func (p *parser) validateBranchTargets(fn *il.Function) {
	for _, b := range fn.Blocks {
		for _, instr := range b.Instructions {
			switch instr.Opcode {
			case "br", "brcond", "switch":
				for _, operand := range instr.Operands {
					if !looksLikeLabel(operand) {
						continue
					}
					if fn.Block(operand) == nil {
						p.em.Emitf(diag.Error, CodeUnknownBlockTarget, instr.Loc, uint32(len(operand)),
							"unknown block '%s'", operand)
					}
				}
			}
		}
	}
}

// looksLikeLabel heuristically identifies a branch operand as a block
// label rather than a value reference: a bare identifier with no sigil.
func looksLikeLabel(operand string) bool {
	if operand == "" {
		return false
	}
	b := operand[0]
	if b == '%' || b == '@' || isDigit(b) || b == '-' || b == '"' {
		return false
	}
	return isIdentStart(b)
}

func tokDesc(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokNewline:
		return "newline"
	case tokGlobal:
		return "@" + t.text
	case tokLocal:
		return "%" + t.text
	case tokString:
		return fmt.Sprintf("%q", t.text)
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokComma:
		return "','"
	case tokColon:
		return "':'"
	case tokArrow:
		return "'->'"
	case tokEquals:
		return "'='"
	default:
		return t.text
	}
}
