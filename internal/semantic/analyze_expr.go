package semantic

import (
	"strings"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/types"
)

// analyzeExpr computes and records the type of expr via the side-table
// (spec §4.6 "Expression typing"). It is the single entry point every
// other pass calls to type an expression.
func (a *Analyzer) analyzeExpr(e ast.Expr) types.TypeRef {
	if e == nil {
		return a.ty.TUnit
	}
	switch n := e.(type) {
	case *ast.IntLit:
		return a.setType(e, a.ty.TInteger)
	case *ast.NumberLit:
		return a.setType(e, a.ty.TNumber)
	case *ast.StringLit:
		return a.setType(e, a.ty.TString)
	case *ast.BoolLit:
		return a.setType(e, a.ty.TBoolean)
	case *ast.NullLit:
		return a.setType(e, a.ty.Optional(a.ty.TUnknown))
	case *ast.UnitLit:
		return a.setType(e, a.ty.TUnit)
	case *ast.InterpStringExpr:
		for _, sub := range n.Exprs {
			a.analyzeExpr(sub)
		}
		return a.setType(e, a.ty.TString)
	case *ast.Ident:
		return a.analyzeIdent(n)
	case *ast.SelfExpr:
		if sym, ok := a.scopes.Current().Lookup("self"); ok {
			return a.setType(e, sym.Type)
		}
		a.emitter.Emit(diag.Error, a.code("1400"), n.Loc(), 4, "'self' used outside a method body")
		return a.setType(e, a.ty.TUnknown)
	case *ast.SuperExpr:
		return a.setType(e, a.ty.TUnknown)
	case *ast.BinaryExpr:
		return a.analyzeBinary(n)
	case *ast.UnaryExpr:
		return a.analyzeUnary(n)
	case *ast.TernaryExpr:
		return a.analyzeTernary(n)
	case *ast.CallExpr:
		return a.analyzeCall(n)
	case *ast.IndexExpr:
		return a.analyzeIndex(n)
	case *ast.FieldExpr:
		return a.analyzeField(n)
	case *ast.OptionalChainExpr:
		return a.analyzeOptionalChain(n)
	case *ast.CoalesceExpr:
		return a.analyzeCoalesce(n)
	case *ast.IsExpr:
		a.analyzeExpr(n.Value)
		return a.setType(e, a.ty.TBoolean)
	case *ast.AsExpr:
		a.analyzeExpr(n.Value)
		return a.setType(e, a.resolveType(n.Type))
	case *ast.RangeExpr:
		lo := a.analyzeExpr(n.Lo)
		hi := a.analyzeExpr(n.Hi)
		if lo.Kind != types.Integer || hi.Kind != types.Integer {
			a.emitter.Emit(diag.Error, a.code("1410"), n.Loc(), 1, "range bounds must be Integer")
		}
		return a.setType(e, a.ty.ListOf(a.ty.TInteger))
	case *ast.TryExpr:
		inner := a.analyzeExpr(n.Value)
		if inner.Kind == types.Optional {
			return a.setType(e, inner.Elem)
		}
		return a.setType(e, inner)
	case *ast.NewExpr:
		return a.analyzeNew(n)
	case *ast.LambdaExpr:
		return a.analyzeLambda(n)
	case *ast.ListLit:
		return a.analyzeListLit(n)
	case *ast.MapLit:
		return a.analyzeMapLit(n)
	case *ast.SetLit:
		return a.analyzeSetLit(n)
	case *ast.TupleExpr:
		elems := make([]types.TypeRef, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = a.analyzeExpr(el)
		}
		return a.setType(e, a.ty.TupleOf(elems))
	case *ast.TupleIndexExpr:
		recv := a.analyzeExpr(n.Receiver)
		if recv.Kind == types.Tuple && n.Index >= 0 && n.Index < len(recv.Elems) {
			return a.setType(e, recv.Elems[n.Index])
		}
		a.emitter.Emit(diag.Error, a.code("1420"), n.Loc(), 1, "tuple index out of range")
		return a.setType(e, a.ty.TUnknown)
	case *ast.IfExpr:
		a.analyzeExpr(n.Cond)
		thenT := a.analyzeExpr(n.Then)
		elseT := a.analyzeExpr(n.Else)
		common := a.commonSuperType(thenT, elseT)
		if common == nil {
			a.emitter.Emit(diag.Error, a.code("1430"), n.Loc(), 1, "if-expression branches have incompatible types")
			common = a.ty.TUnknown
		}
		return a.setType(e, common)
	case *ast.BlockExpr:
		a.scopes.Push()
		defer a.scopes.Pop()
		for _, s := range n.Stmts {
			a.analyzeStmt(s)
		}
		if n.Tail != nil {
			return a.setType(e, a.analyzeExpr(n.Tail))
		}
		return a.setType(e, a.ty.TUnit)
	case *ast.MatchExpr:
		return a.analyzeMatchExpr(n)
	default:
		return a.ty.TUnknown
	}
}

func (a *Analyzer) analyzeIdent(n *ast.Ident) types.TypeRef {
	if sym, ok := a.scopes.Current().Lookup(n.Name); ok {
		return a.setType(n, sym.Type)
	}
	a.emitter.Emit(diag.Error, CodeNSUnresolvableType, n.Loc(), uint32(len(n.Name)), "undefined name '"+n.Name+"'")
	return a.setType(n, a.ty.TUnknown)
}

func (a *Analyzer) analyzeBinary(n *ast.BinaryExpr) types.TypeRef {
	lt := a.analyzeExpr(n.Left)
	rt := a.analyzeExpr(n.Right)
	var result types.TypeRef
	switch n.Op {
	case ast.OpAdd:
		if lt.Kind == types.String && rt.Kind == types.String {
			result = a.ty.TString
		} else if lt.IsNumeric() && rt.IsNumeric() {
			result = arithResult(a, lt, rt)
		} else {
			a.emitter.Emit(diag.Error, a.code("1440"), n.Loc(), 1, "operands to '+' must both be numeric or both be String")
			result = a.ty.TUnknown
		}
	case ast.OpSub, ast.OpMul, ast.OpDiv:
		if lt.IsNumeric() && rt.IsNumeric() {
			result = arithResult(a, lt, rt)
		} else {
			a.emitter.Emit(diag.Error, a.code("1441"), n.Loc(), 1, "arithmetic operands must be numeric")
			result = a.ty.TUnknown
		}
	case ast.OpIntDiv, ast.OpMod, ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		if lt.Kind == types.Integer && rt.Kind == types.Integer {
			result = a.ty.TInteger
		} else {
			a.emitter.Emit(diag.Error, a.code("1442"), n.Loc(), 1, "operator requires Integer operands")
			result = a.ty.TUnknown
		}
	case ast.OpEq, ast.OpNe:
		if a.commonSuperType(lt, rt) == nil && !(a.ty.IsEnum(lt) && lt == rt) {
			a.emitter.Emit(diag.Error, a.code("1450"), n.Loc(), 1, "operands to comparison must share a common type")
		}
		result = a.ty.TBoolean
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if a.commonSuperType(lt, rt) == nil {
			a.emitter.Emit(diag.Error, a.code("1451"), n.Loc(), 1, "operands to comparison must share a common type")
		}
		result = a.ty.TBoolean
	case ast.OpLogicalAnd, ast.OpLogicalOr:
		if lt.Kind != types.Boolean || rt.Kind != types.Boolean {
			a.emitter.Emit(diag.Error, a.code("1460"), n.Loc(), 1, "operands to logical operator must be Boolean")
		}
		result = a.ty.TBoolean
	default:
		result = a.ty.TUnknown
	}
	return a.setType(n, result)
}

func arithResult(a *Analyzer, l, r types.TypeRef) types.TypeRef {
	if l.Kind == types.Integer && r.Kind == types.Integer {
		return a.ty.TInteger
	}
	return a.ty.TNumber
}

func (a *Analyzer) analyzeUnary(n *ast.UnaryExpr) types.TypeRef {
	t := a.analyzeExpr(n.Operand)
	switch n.Op {
	case ast.OpNot:
		if t.Kind != types.Boolean {
			a.emitter.Emit(diag.Error, a.code("1470"), n.Loc(), 1, "operand to 'not' must be Boolean")
		}
		return a.setType(n, a.ty.TBoolean)
	case ast.OpBitNot:
		if t.Kind != types.Integer {
			a.emitter.Emit(diag.Error, a.code("1471"), n.Loc(), 1, "bitwise-not requires an Integer operand")
		}
		return a.setType(n, a.ty.TInteger)
	default:
		if !t.IsNumeric() {
			a.emitter.Emit(diag.Error, a.code("1472"), n.Loc(), 1, "unary +/- requires a numeric operand")
		}
		return a.setType(n, t)
	}
}

func (a *Analyzer) analyzeTernary(n *ast.TernaryExpr) types.TypeRef {
	condT := a.analyzeExpr(n.Cond)
	if condT.Kind != types.Boolean {
		a.emitter.Emit(diag.Error, a.code("1480"), n.Cond.Loc(), 1, "condition must be Boolean")
	}
	thenT := a.analyzeExpr(n.Then)
	elseT := a.analyzeExpr(n.Else)
	common := a.commonSuperType(thenT, elseT)
	if common == nil {
		a.emitter.Emit(diag.Error, a.code("1481"), n.Loc(), 1, "ternary branches have incompatible types")
		common = a.ty.TUnknown
	}
	return a.setType(n, common)
}

func (a *Analyzer) analyzeIndex(n *ast.IndexExpr) types.TypeRef {
	recv := a.analyzeExpr(n.Receiver)
	idx := a.analyzeExpr(n.Index)
	switch recv.Kind {
	case types.List, types.Set:
		if idx.Kind != types.Integer {
			a.emitter.Emit(diag.Error, a.code("1490"), n.Index.Loc(), 1, "list/set index must be Integer")
		}
		return a.setType(n, recv.Elem)
	case types.Map:
		if !assignable(idx, recv.Key) {
			a.emitter.Emit(diag.Error, a.code("1491"), n.Index.Loc(), 1, "map index type mismatch")
		}
		return a.setType(n, recv.Val)
	case types.String:
		return a.setType(n, a.ty.TByte)
	default:
		a.emitter.Emit(diag.Error, a.code("1492"), n.Loc(), 1, "type is not indexable")
		return a.setType(n, a.ty.TUnknown)
	}
}

func (a *Analyzer) analyzeField(n *ast.FieldExpr) types.TypeRef {
	// Static-like namespaced access, e.g. "Viper.Math.Pi".
	if dotted, ok := a.dottedNameOf(n); ok {
		if entry, ok := a.registry.LookupGetter(dotted); ok {
			a.runtimeFieldGetters[n] = dotted
			return a.setType(n, a.resolvePrimitiveName(entry.Ret))
		}
		if a.resolveNamespacedAccess(dotted, n.Loc()) {
			return a.setType(n, a.ty.TUnknown)
		}
	}

	recv := a.analyzeExpr(n.Receiver)
	ci := a.classForType(recv)
	if ci == nil {
		a.emitter.Emit(diag.Error, a.code("1500"), n.Loc(), uint32(len(n.Field)), "field access on a non-entity type")
		return a.setType(n, a.ty.TUnknown)
	}
	if f, ok := ci.LookupField(n.Field); ok {
		return a.setType(n, f.Type)
	}
	if p, ok := ci.Properties[n.Field]; ok {
		return a.setType(n, p.Type)
	}
	if m, ok := ci.LookupMethod(n.Field); ok {
		return a.setType(n, m.Signature)
	}
	a.emitter.Emit(diag.Error, a.code("1501"), n.Loc(), uint32(len(n.Field)),
		"unknown member '"+n.Field+"' of type '"+ci.Name+"'")
	return a.setType(n, a.ty.TUnknown)
}

// dottedNameOf reconstructs "A.B.C" when n is a chain of FieldExpr over
// Idents, used to recognize Runtime Registry getters/functions.
func (a *Analyzer) dottedNameOf(n ast.Expr) (string, bool) {
	var parts []string
	cur := n
	for {
		switch e := cur.(type) {
		case *ast.FieldExpr:
			parts = append([]string{e.Field}, parts...)
			cur = e.Receiver
		case *ast.Ident:
			parts = append([]string{e.Name}, parts...)
			return strings.Join(parts, "."), true
		default:
			return "", false
		}
	}
}

func (a *Analyzer) classForType(t types.TypeRef) *ClassInfo {
	if t == nil || t.Kind != types.Named {
		return nil
	}
	return a.classes[a.foldName(t.Name)]
}

func (a *Analyzer) analyzeOptionalChain(n *ast.OptionalChainExpr) types.TypeRef {
	recv := a.analyzeExpr(n.Receiver)
	if recv.Kind != types.Optional {
		a.emitter.Emit(diag.Error, a.code("1510"), n.Loc(), 1, "'?.' requires an Optional receiver")
		return a.setType(n, a.ty.TUnknown)
	}
	ci := a.classForType(recv.Elem)
	if ci == nil {
		return a.setType(n, a.ty.Optional(a.ty.TUnknown))
	}
	if f, ok := ci.LookupField(n.Field); ok {
		return a.setType(n, a.ty.Optional(f.Type))
	}
	a.emitter.Emit(diag.Error, a.code("1511"), n.Loc(), uint32(len(n.Field)), "unknown member '"+n.Field+"'")
	return a.setType(n, a.ty.Optional(a.ty.TUnknown))
}

func (a *Analyzer) analyzeCoalesce(n *ast.CoalesceExpr) types.TypeRef {
	lt := a.analyzeExpr(n.Left)
	if lt.Kind != types.Optional {
		a.emitter.Emit(diag.Error, a.code("1520"), n.Left.Loc(), 1, "left side of '??' must be Optional")
		return a.setType(n, a.analyzeExpr(n.Right))
	}
	rt := a.analyzeExpr(n.Right)
	if !assignable(rt, lt.Elem) {
		a.emitter.Emit(diag.Error, a.code("1521"), n.Right.Loc(), 1, "right side of '??' is not assignable to the Optional's element type")
	}
	return a.setType(n, lt.Elem)
}

func (a *Analyzer) analyzeNew(n *ast.NewExpr) types.TypeRef {
	t := a.resolveType(n.Type)
	ci := a.classForType(t)
	if ci == nil {
		a.emitter.Emit(diag.Error, a.code("1530"), n.Loc(), 1, "'new' target is not an entity type")
		return a.setType(n, t)
	}
	if ci.IsAbstract {
		a.emitter.Emit(diag.Error, a.code("1531"), n.Loc(), uint32(len(ci.Name)),
			"cannot instantiate abstract class '"+ci.Name+"'; use a concrete subclass")
	}
	for _, arg := range n.Args {
		a.analyzeExpr(arg.Value)
	}
	return a.setType(n, t)
}

func (a *Analyzer) analyzeListLit(n *ast.ListLit) types.TypeRef {
	var elem types.TypeRef
	for _, e := range n.Elems {
		t := a.analyzeExpr(e)
		if elem == nil {
			elem = t
		} else if common := a.commonSuperType(elem, t); common != nil {
			elem = common
		} else {
			a.emitter.Emit(diag.Error, a.code("1540"), e.Loc(), 1, "list element type mismatch")
		}
	}
	if elem == nil {
		elem = a.ty.TUnknown
	}
	return a.setType(n, a.ty.ListOf(elem))
}

func (a *Analyzer) analyzeSetLit(n *ast.SetLit) types.TypeRef {
	var elem types.TypeRef
	for _, e := range n.Elems {
		t := a.analyzeExpr(e)
		if elem == nil {
			elem = t
		}
	}
	if elem == nil {
		elem = a.ty.TUnknown
	}
	return a.setType(n, a.ty.SetOf(elem))
}

func (a *Analyzer) analyzeMapLit(n *ast.MapLit) types.TypeRef {
	var key, val types.TypeRef
	for _, e := range n.Entries {
		k := a.analyzeExpr(e.Key)
		v := a.analyzeExpr(e.Value)
		if key == nil {
			key, val = k, v
		}
	}
	if key == nil {
		key, val = a.ty.TUnknown, a.ty.TUnknown
	}
	return a.setType(n, a.ty.MapOf(key, val))
}

func (a *Analyzer) analyzeCall(n *ast.CallExpr) types.TypeRef {
	argTypes := make([]types.TypeRef, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = a.analyzeExpr(arg.Value)
	}

	if dotted, ok := a.dottedNameOf(n.Callee); ok {
		if _, ok := a.registry.LookupFunction(dotted); ok {
			a.runtimeCallees[n] = dotted
			sym, _ := a.scopes.Global().Lookup(dotted)
			if sym != nil {
				return a.setType(n, sym.Type.Ret)
			}
		}
	}

	if ident, ok := n.Callee.(*ast.Ident); ok {
		sym, ok := a.scopes.Current().Lookup(ident.Name)
		if !ok {
			a.emitter.Emit(diag.Error, CodeNSUnresolvableType, ident.Loc(), uint32(len(ident.Name)), "undefined name '"+ident.Name+"'")
			return a.setType(n, a.ty.TUnknown)
		}
		if len(sym.Overloads) > 0 {
			return a.setType(n, a.resolveOverload(sym, argTypes, n.Loc()))
		}
		if sym.Type == nil || sym.Type.Kind != types.Function {
			a.emitter.Emit(diag.Error, a.code("1550"), n.Loc(), uint32(len(ident.Name)), "'"+ident.Name+"' is not callable")
			return a.setType(n, a.ty.TUnknown)
		}
		a.checkArgs(sym.Type, n, argTypes)
		return a.setType(n, sym.Type.Ret)
	}

	calleeT := a.analyzeExpr(n.Callee)
	if calleeT.Kind != types.Function {
		a.emitter.Emit(diag.Error, a.code("1551"), n.Loc(), 1, "callee is not callable")
		return a.setType(n, a.ty.TUnknown)
	}
	a.checkArgs(calleeT, n, argTypes)
	return a.setType(n, calleeT.Ret)
}

func (a *Analyzer) checkArgs(fn types.TypeRef, call *ast.CallExpr, argTypes []types.TypeRef) {
	if len(call.Args) != len(fn.Params) {
		a.emitter.Emitf(diag.Error, a.code("1560"), call.Loc(), 1,
			"expected %d argument(s), got %d", len(fn.Params), len(call.Args))
		return
	}
	for i, want := range fn.Params {
		if !assignable(argTypes[i], want) {
			a.emitter.Emitf(diag.Error, a.code("1561"), call.Args[i].Value.Loc(), 1,
				"argument %d type mismatch: expected %s", i+1, want.String())
		}
	}
}

func (a *Analyzer) analyzeLambda(n *ast.LambdaExpr) types.TypeRef {
	a.scopes.Push()
	defer a.scopes.Pop()
	params := make([]types.TypeRef, len(n.Params))
	locals := make(map[string]bool)
	for i, p := range n.Params {
		pt := a.ty.TUnknown
		if p.Type != nil {
			pt = a.resolveType(p.Type)
		}
		params[i] = pt
		locals[p.Name] = true
		a.scopes.Current().Define(p.Name, &Symbol{Kind: SymParameter, Name: p.Name, Type: pt})
	}
	bodyT := a.analyzeExpr(n.Body)
	ret := bodyT
	if n.Ret != nil {
		ret = a.resolveType(n.Ret)
	}
	n.Captures = a.collectCaptures(n.Body, locals)
	return a.setType(n, a.ty.Func(params, ret))
}
