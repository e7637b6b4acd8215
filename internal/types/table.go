package types

import "strings"

// Table interns Type values so that structurally-equal types share one
// *Type pointer, making equivalence a pointer comparison (spec §3:
// "identity implies equivalence for resolved types").
type Table struct {
	byKey map[string]TypeRef
	enums map[TypeRef]bool // named types registered as enumerations

	// Well-known primitives, always present.
	TInteger, TNumber, TBoolean, TString, TByte, TUnit, TUnknown TypeRef
}

// NewTable returns a Table pre-populated with the built-in primitive
// types of spec §4.6 step 1.
func NewTable() *Table {
	t := &Table{byKey: make(map[string]TypeRef), enums: make(map[TypeRef]bool)}
	t.TInteger = t.intern(&Type{Kind: Integer})
	t.TNumber = t.intern(&Type{Kind: Number})
	t.TBoolean = t.intern(&Type{Kind: Boolean})
	t.TString = t.intern(&Type{Kind: String})
	t.TByte = t.intern(&Type{Kind: Byte})
	t.TUnit = t.intern(&Type{Kind: Unit})
	t.TUnknown = t.intern(&Type{Kind: Unknown})
	return t
}

func (t *Table) intern(ty *Type) TypeRef {
	ty.key = canonicalKey(ty)
	if existing, ok := t.byKey[ty.key]; ok {
		return existing
	}
	t.byKey[ty.key] = ty
	return ty
}

func canonicalKey(ty *Type) string {
	var sb strings.Builder
	writeKey(&sb, ty)
	return sb.String()
}

func writeKey(sb *strings.Builder, ty *Type) {
	switch ty.Kind {
	case Named:
		sb.WriteString("N:")
		sb.WriteString(ty.Name)
	case Generic:
		sb.WriteString("G:")
		sb.WriteString(ty.Name)
		sb.WriteString("<")
		for i, a := range ty.Args {
			if i > 0 {
				sb.WriteString(",")
			}
			writeKey(sb, a)
		}
		sb.WriteString(">")
	case Optional:
		sb.WriteString("O:")
		writeKey(sb, ty.Elem)
	case Function:
		sb.WriteString("F:(")
		for i, p := range ty.Params {
			if i > 0 {
				sb.WriteString(",")
			}
			writeKey(sb, p)
		}
		sb.WriteString(")->")
		writeKey(sb, ty.Ret)
	case List:
		sb.WriteString("L:")
		writeKey(sb, ty.Elem)
	case Set:
		sb.WriteString("St:")
		writeKey(sb, ty.Elem)
	case Map:
		sb.WriteString("M:")
		writeKey(sb, ty.Key)
		sb.WriteString(":")
		writeKey(sb, ty.Val)
	case Tuple:
		sb.WriteString("T:(")
		for i, e := range ty.Elems {
			if i > 0 {
				sb.WriteString(",")
			}
			writeKey(sb, e)
		}
		sb.WriteString(")")
	default:
		sb.WriteString(kindName(ty.Kind))
	}
}

// Optional returns (interning) Optional(elem).
func (t *Table) Optional(elem TypeRef) TypeRef {
	return t.intern(&Type{Kind: Optional, Elem: elem})
}

// Func returns (interning) the function type params -> ret.
func (t *Table) Func(params []TypeRef, ret TypeRef) TypeRef {
	return t.intern(&Type{Kind: Function, Params: params, Ret: ret})
}

// ListOf returns (interning) List(elem).
func (t *Table) ListOf(elem TypeRef) TypeRef {
	return t.intern(&Type{Kind: List, Elem: elem})
}

// SetOf returns (interning) Set(elem).
func (t *Table) SetOf(elem TypeRef) TypeRef {
	return t.intern(&Type{Kind: Set, Elem: elem})
}

// MapOf returns (interning) Map(key, val).
func (t *Table) MapOf(key, val TypeRef) TypeRef {
	return t.intern(&Type{Kind: Map, Key: key, Val: val})
}

// TupleOf returns (interning) Tuple(elems...).
func (t *Table) TupleOf(elems []TypeRef) TypeRef {
	return t.intern(&Type{Kind: Tuple, Elems: elems})
}

// Generic returns (interning) name<args...>.
func (t *Table) Generic(name string, args []TypeRef) TypeRef {
	return t.intern(&Type{Kind: Generic, Name: name, Args: args})
}

// Named registers (or fetches) a named value/entity/interface type by its
// fully-qualified name.
func (t *Table) Named(fqn string) TypeRef {
	return t.intern(&Type{Kind: Named, Name: fqn})
}

// MarkEnum records that named type ty is a bounded integer enumeration, so
// IsOrdinal and exhaustiveness checks treat it accordingly.
func (t *Table) MarkEnum(ty TypeRef) {
	t.enums[ty] = true
}

// IsEnum reports whether ty was registered via MarkEnum.
func (t *Table) IsEnum(ty TypeRef) bool {
	return t.enums[ty]
}

// Equal reports whether a and b denote the same interned type.
func Equal(a, b TypeRef) bool {
	return a == b
}
