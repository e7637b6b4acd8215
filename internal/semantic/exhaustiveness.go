package semantic

import (
	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/source"
	"github.com/splanck/vipc/internal/types"
)

// coverage accumulates what a sequence of match arms has proven covered,
// per spec §4.6 "Match & exhaustiveness".
type coverage struct {
	hasIrrefutable  bool
	coversNull      bool
	coversSome      bool
	coveredIntegers map[int64]bool
	coveredBools    map[bool]bool
}

func newCoverage() *coverage {
	return &coverage{coveredIntegers: make(map[int64]bool), coveredBools: make(map[bool]bool)}
}

// applyPattern updates cov for one arm's pattern and reports a redundancy
// warning if the arm can never match (fully shadowed by an earlier
// irrefutable arm).
func (a *Analyzer) applyPattern(cov *coverage, pat ast.Pattern, loc source.Loc) {
	if cov.hasIrrefutable {
		a.emitter.Emit(diag.Warning, a.code("1700"), loc, 1, "unreachable match arm: an earlier arm is irrefutable")
	}
	switch pat.Kind {
	case ast.PatWildcard, ast.PatBinding:
		cov.hasIrrefutable = true
	case ast.PatLiteral:
		switch lit := pat.At.(type) {
		case *ast.IntLit:
			cov.coveredIntegers[lit.Value] = true
		case *ast.BoolLit:
			cov.coveredBools[lit.Value] = true
		case *ast.NullLit:
			cov.coversNull = true
		}
	case ast.PatConstructor:
		if pat.Name == "some" || pat.Name == "Some" {
			cov.coversSome = true
		}
	}
}

// isExhaustive decides exhaustiveness from the scrutinee type: Boolean
// requires both values (or an irrefutable arm); Optional requires null and
// some; an enum requires an irrefutable arm, since its declared variant set
// is not tracked and covering every variant explicitly is not recognized;
// otherwise an irrefutable arm is mandatory.
func (a *Analyzer) isExhaustive(scrutinee types.TypeRef, cov *coverage) bool {
	if cov.hasIrrefutable {
		return true
	}
	switch scrutinee.Kind {
	case types.Boolean:
		return cov.coveredBools[true] && cov.coveredBools[false]
	case types.Optional:
		return cov.coversNull && cov.coversSome
	default:
		if a.ty.IsEnum(scrutinee) {
			// Without a side-channel enumerating the variant set, a bounded
			// enum requires an irrefutable arm too; dialects that carry
			// variant metadata can refine this via a.ty if needed.
			return cov.hasIrrefutable
		}
		return false
	}
}

func (a *Analyzer) analyzeMatchExpr(n *ast.MatchExpr) types.TypeRef {
	scrutinee := a.analyzeExpr(n.Scrutinee)
	cov := newCoverage()
	var resultType types.TypeRef
	for _, arm := range n.Arms {
		a.applyPattern(cov, arm.Pattern, arm.Body.Loc())
		a.scopes.Push()
		a.bindPattern(arm.Pattern, scrutinee)
		if arm.Guard != nil {
			a.analyzeExpr(arm.Guard)
		}
		bodyT := a.analyzeExpr(arm.Body)
		a.scopes.Pop()
		if resultType == nil {
			resultType = bodyT
		} else if common := a.commonSuperType(resultType, bodyT); common != nil {
			resultType = common
		}
	}
	if !a.isExhaustive(scrutinee, cov) {
		a.emitter.Emit(diag.Error, a.code("1710"), n.Loc(), 5, "non-exhaustive match")
	}
	if resultType == nil {
		resultType = a.ty.TUnknown
	}
	return a.setType(n, resultType)
}

func (a *Analyzer) analyzeMatchStmt(n *ast.MatchStmt) {
	scrutinee := a.analyzeExpr(n.Scrutinee)
	cov := newCoverage()
	for _, arm := range n.Arms {
		a.applyPattern(cov, arm.Pattern, arm.Body.Loc())
		a.scopes.Push()
		a.bindPattern(arm.Pattern, scrutinee)
		if arm.Guard != nil {
			a.analyzeExpr(arm.Guard)
		}
		a.analyzeStmt(arm.Body)
		a.scopes.Pop()
	}
	if !a.isExhaustive(scrutinee, cov) {
		a.emitter.Emit(diag.Error, a.code("1710"), n.Loc(), 5, "non-exhaustive match")
	}
}

// bindPattern defines pattern-bound names in the current scope.
func (a *Analyzer) bindPattern(pat ast.Pattern, scrutinee types.TypeRef) {
	switch pat.Kind {
	case ast.PatBinding:
		a.scopes.Current().Define(pat.Name, &Symbol{Kind: SymVariable, Name: pat.Name, Type: scrutinee})
	case ast.PatConstructor:
		for _, sub := range pat.Sub {
			a.bindPattern(sub, a.ty.TUnknown)
		}
	case ast.PatTuple:
		var elems []types.TypeRef
		if scrutinee.Kind == types.Tuple {
			elems = scrutinee.Elems
		}
		for i, sub := range pat.Sub {
			et := a.ty.TUnknown
			if i < len(elems) {
				et = elems[i]
			}
			a.bindPattern(sub, et)
		}
	}
}
