package semantic

import (
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/source"
	"github.com/splanck/vipc/internal/types"
)

// defineOverload adds fnType as one more overload of name, grounded on the
// teacher's SymbolTable.DefineOverload (supplemented feature, see
// SPEC_FULL.md "Supplemented features").
func (a *Analyzer) defineOverload(name string, fnType types.TypeRef, decl ast.Decl) {
	scope := a.scopes.Global()
	existing, ok := scope.LookupLocal(name)
	if !ok {
		scope.Define(name, &Symbol{Kind: SymFunction, Name: name, Type: fnType, Decl: decl})
		return
	}
	for _, ov := range append([]*Symbol{existing}, existing.Overloads...) {
		if ov.Type == fnType {
			a.emitter.Emitf(diag.Error, a.code("1102"), decl.Loc(), uint32(len(name)),
				"duplicate overload of '%s' with identical signature %s", name, fnType.String())
			return
		}
	}
	existing.Overloads = append(existing.Overloads, &Symbol{Kind: SymFunction, Name: name, Type: fnType, Decl: decl})
}

// resolveOverload picks the unique overload of sym whose parameter types
// accept argTypes. An ambiguity diagnostic names every matching candidate
// in natural sort order (spec §4.6 "E_NS_003-style ambiguity with a
// deterministic, sorted contender list"); the no-match diagnostic names
// no candidates.
func (a *Analyzer) resolveOverload(sym *Symbol, argTypes []types.TypeRef, loc source.Loc) types.TypeRef {
	candidates := append([]*Symbol{sym}, sym.Overloads...)
	var matches []*Symbol
	for _, c := range candidates {
		fn := c.Type
		if fn == nil || fn.Kind != types.Function {
			continue
		}
		if len(fn.Params) != len(argTypes) {
			continue
		}
		ok2 := true
		for i, p := range fn.Params {
			if !assignable(argTypes[i], p) {
				ok2 = false
				break
			}
		}
		if ok2 {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0].Type.Ret
	case 0:
		a.emitter.Emitf(diag.Error, a.code("1110"), loc, 1, "no overload of '%s' matches the given arguments", sym.Name)
		return a.ty.TUnknown
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Type.String()
		}
		sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
		a.emitter.Emitf(diag.Error, CodeNSAmbiguous, loc, 1,
			"ambiguous call to '%s': candidates %s", sym.Name, strings.Join(names, ", "))
		return a.ty.TUnknown
	}
}
