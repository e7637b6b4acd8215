package ast

import "github.com/splanck/vipc/internal/source"

// NamedType is a bare or qualified type name, e.g. "Integer" or "Foo.Bar".
type NamedType struct {
	base
	Qualifier []string // namespace/module prefix segments, may be empty
	Name      string
}

func (*NamedType) typeNode()            {}
func (*NamedType) TypeKind() TypeKind   { return TypeNamed }

// GenericTypeNode is a generic instantiation, e.g. "List<T>".
type GenericTypeNode struct {
	base
	Name string
	Args []TypeNode
}

func (*GenericTypeNode) typeNode()          {}
func (*GenericTypeNode) TypeKind() TypeKind { return TypeGeneric }

// OptionalTypeNode is "T?".
type OptionalTypeNode struct {
	base
	Inner TypeNode
}

func (*OptionalTypeNode) typeNode()          {}
func (*OptionalTypeNode) TypeKind() TypeKind { return TypeOptional }

// FuncTypeNode is a function-type annotation: "(T1, T2) -> R".
type FuncTypeNode struct {
	base
	Params []TypeNode
	Ret    TypeNode
}

func (*FuncTypeNode) typeNode()          {}
func (*FuncTypeNode) TypeKind() TypeKind { return TypeFunc }

// TupleTypeNode is "(T1, T2, ...)" used as a type.
type TupleTypeNode struct {
	base
	Elems []TypeNode
}

func (*TupleTypeNode) typeNode()          {}
func (*TupleTypeNode) TypeKind() TypeKind { return TypeTuple }

// NewNamedType is a small constructor helper used by every dialect parser.
func NewNamedType(loc source.Loc, qualifier []string, name string) *NamedType {
	return &NamedType{base: base{At: loc}, Qualifier: qualifier, Name: name}
}
