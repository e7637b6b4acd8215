package semantic

import (
	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/types"
)

// SymbolKind discriminates what a Symbol denotes (spec §3).
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymParameter
	SymFunction
	SymMethod
	SymField
	SymType
	SymModule
)

// Symbol is one named entry in a Scope.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	Type     types.TypeRef
	IsFinal  bool
	IsExtern bool
	Decl     ast.Decl // nullable back-reference to the declaring AST node

	// Overloads holds sibling function/method symbols sharing Name when the
	// dialect and declaration both opt into overloading (supplemented
	// feature, grounded on the teacher's DefineOverload/SymbolTable).
	Overloads []*Symbol
}
