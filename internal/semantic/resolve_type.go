package semantic

import (
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/types"
)

// resolveType implements spec §4.6 "Type resolution": recursively builds
// a TypeRef from a syntactic TypeNode. Named lookup applies the dialect's
// case policy (foldName) and checks the built-in primitive names first;
// otherwise a qualified name is looked up as a class under its full dotted
// name, and a bare name as a class and through the USING aliases. The
// current namespace prefix and imported modules are not searched.
func (a *Analyzer) resolveType(tn ast.TypeNode) types.TypeRef {
	if tn == nil {
		return a.ty.TUnit
	}
	switch n := tn.(type) {
	case *ast.NamedType:
		return a.resolveNamedType(n)
	case *ast.GenericTypeNode:
		args := make([]types.TypeRef, len(n.Args))
		for i, arg := range n.Args {
			args[i] = a.resolveType(arg)
		}
		return a.ty.Generic(n.Name, args)
	case *ast.OptionalTypeNode:
		return a.ty.Optional(a.resolveType(n.Inner))
	case *ast.FuncTypeNode:
		params := make([]types.TypeRef, len(n.Params))
		for i, p := range n.Params {
			params[i] = a.resolveType(p)
		}
		return a.ty.Func(params, a.resolveType(n.Ret))
	case *ast.TupleTypeNode:
		elems := make([]types.TypeRef, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = a.resolveType(e)
		}
		return a.ty.TupleOf(elems)
	default:
		return a.ty.TUnknown
	}
}

func (a *Analyzer) resolveNamedType(n *ast.NamedType) types.TypeRef {
	switch a.foldName(n.Name) {
	case "integer", "Integer":
		return a.ty.TInteger
	case "number", "Number":
		return a.ty.TNumber
	case "boolean", "Boolean":
		return a.ty.TBoolean
	case "string", "String":
		return a.ty.TString
	case "byte", "Byte":
		return a.ty.TByte
	case "unit", "void", "Unit", "Void":
		return a.ty.TUnit
	}

	qualified := n.Name
	if len(n.Qualifier) > 0 {
		qualified = strings.Join(n.Qualifier, ".") + "." + n.Name
	}

	var candidates []string
	if len(n.Qualifier) > 0 {
		if _, ok := a.classes[a.foldName(qualified)]; ok {
			candidates = append(candidates, qualified)
		}
	} else {
		if _, ok := a.classes[a.foldName(n.Name)]; ok {
			candidates = append(candidates, n.Name)
		}
		for alias, real := range a.usingAliases {
			if a.foldName(alias) == a.foldName(n.Name) {
				candidates = append(candidates, real)
			}
		}
	}

	switch len(candidates) {
	case 1:
		return a.ty.Named(candidates[0])
	case 0:
		a.emitter.Emit(diag.Error, CodeNSUnresolvableType, n.Loc(), uint32(len(n.Name)),
			"undefined name '"+n.Name+"'")
		return a.ty.TUnknown
	default:
		sort.Slice(candidates, func(i, j int) bool { return natural.Less(candidates[i], candidates[j]) })
		a.emitter.Emit(diag.Error, CodeNSAmbiguous, n.Loc(), uint32(len(n.Name)),
			"ambiguous type reference '"+n.Name+"': candidates "+strings.Join(candidates, ", "))
		return a.ty.TUnknown
	}
}

// assignable reports whether a value of type from may be used where a
// value of type to is expected (spec §4.6 "Assignment").
func assignable(from, to types.TypeRef) bool {
	if from == nil || to == nil {
		return false
	}
	if from == to {
		return true
	}
	if to.Kind == types.Unknown || from.Kind == types.Unknown {
		return true
	}
	if to.Kind == types.Number && from.Kind == types.Integer {
		return true
	}
	if to.Kind == types.Optional {
		if from.Kind == types.Optional {
			return assignable(from.Elem, to.Elem)
		}
		return assignable(from, to.Elem)
	}
	return false
}

// commonSuperType returns the type shared by a and b (spec §4.6
// "Ternary/if-expression: branch types must have a common super-type"),
// or nil if none exists.
func (a *Analyzer) commonSuperType(x, y types.TypeRef) types.TypeRef {
	if x == y {
		return x
	}
	if x.IsNumeric() && y.IsNumeric() {
		return a.ty.TNumber
	}
	if assignable(x, y) {
		return y
	}
	if assignable(y, x) {
		return x
	}
	return nil
}
