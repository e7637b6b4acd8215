package semantic

import (
	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/types"
)

// analyzeBlockStmt analyzes a block in its own scope. Every push_scope has
// a matching pop_scope on every exit path, including the panic-recovery
// path guarded by the defer (spec §4.6, §8 invariant).
func (a *Analyzer) analyzeBlockStmt(b *ast.BlockStmt) {
	a.scopes.Push()
	defer a.scopes.Pop()
	for _, s := range b.Stmts {
		a.analyzeStmt(s)
	}
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		a.analyzeBlockStmt(n)
	case *ast.ExprStmt:
		a.analyzeExpr(n.X)
	case *ast.VarStmt:
		a.analyzeVarStmt(n)
	case *ast.IfStmt:
		a.analyzeIfStmt(n)
	case *ast.WhileStmt:
		a.analyzeWhileStmt(n)
	case *ast.ForStmt:
		a.analyzeForStmt(n)
	case *ast.ForInStmt:
		a.analyzeForInStmt(n)
	case *ast.ReturnStmt:
		a.analyzeReturnStmt(n)
	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.emitter.Emit(diag.Error, a.code("1600"), n.Loc(), 5, "'break' outside a loop")
		}
	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.emitter.Emit(diag.Error, a.code("1601"), n.Loc(), 8, "'continue' outside a loop")
		}
	case *ast.GuardStmt:
		a.analyzeGuardStmt(n)
	case *ast.MatchStmt:
		a.analyzeMatchStmt(n)
	case *ast.AssignStmt:
		a.analyzeAssignStmt(n)
	}
}

// analyzeAssignStmt implements spec §4.6 "Assignment": the target must be
// an assignable location (variable, field, index, or tuple-index), the
// value must be assignable to the target's type, and assigning to a
// final or loop variable is an error.
func (a *Analyzer) analyzeAssignStmt(n *ast.AssignStmt) {
	switch t := n.Target.(type) {
	case *ast.Ident, *ast.IndexExpr, *ast.FieldExpr, *ast.TupleIndexExpr:
		_ = t
	default:
		a.emitter.Emit(diag.Error, a.code("1670"), n.Target.Loc(), 1, "assignment target is not assignable")
	}

	targetT := a.analyzeExpr(n.Target)
	valT := a.analyzeExpr(n.Value)
	if !assignable(valT, targetT) {
		a.emitter.Emit(diag.Error, a.code("1671"), n.Value.Loc(), 1, "assigned value's type does not match the target's type")
	}

	if id, ok := n.Target.(*ast.Ident); ok {
		if sym, found := a.scopes.Current().Lookup(id.Name); found && sym.IsFinal {
			a.emitter.Emitf(diag.Error, a.code("1672"), n.Loc(), uint32(len(id.Name)),
				"cannot assign to '%s': it is read-only (final or a loop variable)", id.Name)
		}
	}
}

func (a *Analyzer) analyzeVarStmt(n *ast.VarStmt) {
	var t types.TypeRef
	if n.Init != nil {
		initT := a.analyzeExpr(n.Init)
		if n.Type != nil {
			declared := a.resolveType(n.Type)
			if !assignable(initT, declared) {
				a.emitter.Emit(diag.Error, a.code("1610"), n.Loc(), uint32(len(n.Name)),
					"initializer type does not match declared type of '"+n.Name+"'")
			}
			t = declared
		} else {
			t = initT
		}
	} else if n.Type != nil {
		t = a.resolveType(n.Type)
	} else {
		t = a.ty.TUnknown
	}
	a.scopes.Current().Define(n.Name, &Symbol{Kind: SymVariable, Name: n.Name, Type: t, IsFinal: n.IsFinal, Decl: n})
}

func (a *Analyzer) analyzeIfStmt(n *ast.IfStmt) {
	condT := a.analyzeExpr(n.Cond)
	if condT.Kind != types.Boolean {
		a.emitter.Emit(diag.Error, a.code("1620"), n.Cond.Loc(), 1, "condition must be Boolean")
	}
	a.analyzeStmt(n.Then)
	if n.Else != nil {
		a.analyzeStmt(n.Else)
	}
}

func (a *Analyzer) analyzeWhileStmt(n *ast.WhileStmt) {
	condT := a.analyzeExpr(n.Cond)
	if condT.Kind != types.Boolean {
		a.emitter.Emit(diag.Error, a.code("1621"), n.Cond.Loc(), 1, "condition must be Boolean")
	}
	a.loopDepth++
	a.analyzeStmt(n.Body)
	a.loopDepth--
}

// analyzeForStmt implements spec §4.6 "For": the loop variable is
// ordinal, read-only inside the loop body, and scoped to the loop only.
func (a *Analyzer) analyzeForStmt(n *ast.ForStmt) {
	loT := a.analyzeExpr(n.Lo)
	hiT := a.analyzeExpr(n.Hi)
	if !a.isOrdinal(loT) || !a.isOrdinal(hiT) {
		a.emitter.Emit(diag.Error, a.code("1630"), n.Loc(), uint32(len(n.Var)), "for-loop bounds must be ordinal (Integer or enum)")
	}
	if n.Step != nil {
		a.analyzeExpr(n.Step)
	}
	a.scopes.Push()
	a.scopes.Current().Define(n.Var, &Symbol{Kind: SymVariable, Name: n.Var, Type: loT, IsFinal: true})
	a.loopDepth++
	a.analyzeStmt(n.Body)
	a.loopDepth--
	a.scopes.Pop()
}

// isOrdinal reports whether t can drive a counted "for" loop: Integer or a
// registered enum (spec §4.6 "For").
func (a *Analyzer) isOrdinal(t types.TypeRef) bool {
	return t != nil && (t.Kind == types.Integer || a.ty.IsEnum(t))
}

// analyzeForInStmt implements spec §4.6 "For-in": the collection must be
// iterable; the element type drives the loop variable's type.
func (a *Analyzer) analyzeForInStmt(n *ast.ForInStmt) {
	collT := a.analyzeExpr(n.Collection)
	var elemT types.TypeRef
	switch collT.Kind {
	case types.List, types.Set:
		elemT = collT.Elem
	case types.Map:
		elemT = collT.Key
	case types.String:
		elemT = a.ty.TByte
	default:
		a.emitter.Emit(diag.Error, a.code("1640"), n.Collection.Loc(), 1, "for-in requires an iterable collection")
		elemT = a.ty.TUnknown
	}
	a.scopes.Push()
	a.scopes.Current().Define(n.Var, &Symbol{Kind: SymVariable, Name: n.Var, Type: elemT, IsFinal: true})
	a.loopDepth++
	a.analyzeStmt(n.Body)
	a.loopDepth--
	a.scopes.Pop()
}

func (a *Analyzer) analyzeReturnStmt(n *ast.ReturnStmt) {
	if !a.currentRetSet {
		return
	}
	if n.Value == nil {
		if a.currentRetType.Kind != types.Unit {
			a.emitter.Emit(diag.Error, a.code("1650"), n.Loc(), 6, "missing return value")
		}
		return
	}
	vt := a.analyzeExpr(n.Value)
	if !assignable(vt, a.currentRetType) {
		a.emitter.Emit(diag.Error, a.code("1651"), n.Value.Loc(), 1, "return value type does not match the declared return type")
	}
}

// analyzeGuardStmt implements spec §4.6 "Guard": the else block must
// unconditionally exit the enclosing scope.
func (a *Analyzer) analyzeGuardStmt(n *ast.GuardStmt) {
	condT := a.analyzeExpr(n.Cond)
	if condT.Kind != types.Boolean {
		a.emitter.Emit(diag.Error, a.code("1660"), n.Cond.Loc(), 1, "guard condition must be Boolean")
	}
	a.analyzeBlockStmt(n.Else)
	if !alwaysExits(n.Else) {
		a.emitter.Emit(diag.Error, a.code("1661"), n.Else.Loc(), 5, "guard's else block must unconditionally exit the enclosing scope")
	}
}

// alwaysExits is a conservative "always-exits" analysis (spec §4.6) that
// looks only at the block's last statement: it proves exit when that
// statement is a return/break/continue, a nested block that always exits,
// or an if with an else whose branches both always exit. An empty block
// never exits.
func alwaysExits(b *ast.BlockStmt) bool {
	if len(b.Stmts) == 0 {
		return false
	}
	return stmtAlwaysExits(b.Stmts[len(b.Stmts)-1])
}

func stmtAlwaysExits(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	case *ast.BlockStmt:
		return alwaysExits(n)
	case *ast.IfStmt:
		if n.Else == nil {
			return false
		}
		return stmtAlwaysExits(n.Then) && stmtAlwaysExits(n.Else)
	default:
		return false
	}
}
