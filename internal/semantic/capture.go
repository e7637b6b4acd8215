package semantic

import "github.com/splanck/vipc/internal/ast"

// collectCaptures walks a lambda body looking for identifiers that are
// free (not bound by a lambda parameter or an inner declaration) and
// resolve to an enclosing-scope variable. Each is recorded with a
// by-ref/by-value hint: a name that is ever assigned to inside the body
// captures by reference, otherwise by value (spec §4.6 "Lambda").
func (a *Analyzer) collectCaptures(body ast.Expr, locals map[string]bool) []ast.LambdaCapture {
	bound := make(map[string]bool, len(locals))
	for k := range locals {
		bound[k] = true
	}
	free := make(map[string]bool)
	assigned := make(map[string]bool)
	walkExprCapture(body, bound, free, assigned)

	var captures []ast.LambdaCapture
	for name := range free {
		if _, ok := a.scopes.Current().Lookup(name); !ok {
			continue
		}
		kind := ast.CaptureByValue
		if assigned[name] {
			kind = ast.CaptureByRef
		}
		captures = append(captures, ast.LambdaCapture{Name: name, Kind: kind})
	}
	return captures
}

func walkExprCapture(e ast.Expr, bound, free, assigned map[string]bool) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.Ident:
		if !bound[n.Name] {
			free[n.Name] = true
		}
	case *ast.BinaryExpr:
		walkExprCapture(n.Left, bound, free, assigned)
		walkExprCapture(n.Right, bound, free, assigned)
	case *ast.UnaryExpr:
		walkExprCapture(n.Operand, bound, free, assigned)
	case *ast.TernaryExpr:
		walkExprCapture(n.Cond, bound, free, assigned)
		walkExprCapture(n.Then, bound, free, assigned)
		walkExprCapture(n.Else, bound, free, assigned)
	case *ast.CallExpr:
		walkExprCapture(n.Callee, bound, free, assigned)
		for _, arg := range n.Args {
			walkExprCapture(arg.Value, bound, free, assigned)
		}
	case *ast.IndexExpr:
		walkExprCapture(n.Receiver, bound, free, assigned)
		walkExprCapture(n.Index, bound, free, assigned)
	case *ast.FieldExpr:
		walkExprCapture(n.Receiver, bound, free, assigned)
	case *ast.OptionalChainExpr:
		walkExprCapture(n.Receiver, bound, free, assigned)
	case *ast.CoalesceExpr:
		walkExprCapture(n.Left, bound, free, assigned)
		walkExprCapture(n.Right, bound, free, assigned)
	case *ast.IsExpr:
		walkExprCapture(n.Value, bound, free, assigned)
	case *ast.AsExpr:
		walkExprCapture(n.Value, bound, free, assigned)
	case *ast.RangeExpr:
		walkExprCapture(n.Lo, bound, free, assigned)
		walkExprCapture(n.Hi, bound, free, assigned)
	case *ast.TryExpr:
		walkExprCapture(n.Value, bound, free, assigned)
	case *ast.NewExpr:
		for _, arg := range n.Args {
			walkExprCapture(arg.Value, bound, free, assigned)
		}
	case *ast.LambdaExpr:
		inner := copySet(bound)
		for _, p := range n.Params {
			inner[p.Name] = true
		}
		walkExprCapture(n.Body, inner, free, assigned)
	case *ast.ListLit:
		for _, el := range n.Elems {
			walkExprCapture(el, bound, free, assigned)
		}
	case *ast.SetLit:
		for _, el := range n.Elems {
			walkExprCapture(el, bound, free, assigned)
		}
	case *ast.MapLit:
		for _, entry := range n.Entries {
			walkExprCapture(entry.Key, bound, free, assigned)
			walkExprCapture(entry.Value, bound, free, assigned)
		}
	case *ast.TupleExpr:
		for _, el := range n.Elems {
			walkExprCapture(el, bound, free, assigned)
		}
	case *ast.TupleIndexExpr:
		walkExprCapture(n.Receiver, bound, free, assigned)
	case *ast.IfExpr:
		walkExprCapture(n.Cond, bound, free, assigned)
		walkExprCapture(n.Then, bound, free, assigned)
		walkExprCapture(n.Else, bound, free, assigned)
	case *ast.BlockExpr:
		inner := copySet(bound)
		for _, s := range n.Stmts {
			walkStmtCapture(s, inner, free, assigned)
		}
		walkExprCapture(n.Tail, inner, free, assigned)
	case *ast.MatchExpr:
		walkExprCapture(n.Scrutinee, bound, free, assigned)
		for _, arm := range n.Arms {
			inner := copySet(bound)
			bindPatternNames(arm.Pattern, inner)
			walkExprCapture(arm.Guard, inner, free, assigned)
			walkExprCapture(arm.Body, inner, free, assigned)
		}
	case *ast.InterpStringExpr:
		for _, sub := range n.Exprs {
			walkExprCapture(sub, bound, free, assigned)
		}
	}
}

func walkStmtCapture(s ast.Stmt, bound, free, assigned map[string]bool) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		inner := copySet(bound)
		for _, inner2 := range n.Stmts {
			walkStmtCapture(inner2, inner, free, assigned)
		}
	case *ast.ExprStmt:
		walkExprCapture(n.X, bound, free, assigned)
	case *ast.VarStmt:
		walkExprCapture(n.Init, bound, free, assigned)
		bound[n.Name] = true
	case *ast.IfStmt:
		walkExprCapture(n.Cond, bound, free, assigned)
		walkStmtCapture(n.Then, bound, free, assigned)
		if n.Else != nil {
			walkStmtCapture(n.Else, bound, free, assigned)
		}
	case *ast.WhileStmt:
		walkExprCapture(n.Cond, bound, free, assigned)
		walkStmtCapture(n.Body, bound, free, assigned)
	case *ast.ForStmt:
		walkExprCapture(n.Lo, bound, free, assigned)
		walkExprCapture(n.Hi, bound, free, assigned)
		inner := copySet(bound)
		inner[n.Var] = true
		walkStmtCapture(n.Body, inner, free, assigned)
	case *ast.ForInStmt:
		walkExprCapture(n.Collection, bound, free, assigned)
		inner := copySet(bound)
		inner[n.Var] = true
		walkStmtCapture(n.Body, inner, free, assigned)
	case *ast.ReturnStmt:
		walkExprCapture(n.Value, bound, free, assigned)
	case *ast.GuardStmt:
		walkExprCapture(n.Cond, bound, free, assigned)
		walkStmtCapture(n.Else, bound, free, assigned)
	case *ast.AssignStmt:
		walkExprCapture(n.Value, bound, free, assigned)
		if id, ok := n.Target.(*ast.Ident); ok {
			assigned[id.Name] = true
		} else {
			walkExprCapture(n.Target, bound, free, assigned)
		}
	case *ast.MatchStmt:
		walkExprCapture(n.Scrutinee, bound, free, assigned)
		for _, arm := range n.Arms {
			inner := copySet(bound)
			bindPatternNames(arm.Pattern, inner)
			walkExprCapture(arm.Guard, inner, free, assigned)
			walkStmtCapture(arm.Body, inner, free, assigned)
		}
	}
}

func bindPatternNames(pat ast.Pattern, bound map[string]bool) {
	switch pat.Kind {
	case ast.PatBinding:
		bound[pat.Name] = true
	case ast.PatConstructor, ast.PatTuple:
		for _, sub := range pat.Sub {
			bindPatternNames(sub, bound)
		}
	}
}

func copySet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
