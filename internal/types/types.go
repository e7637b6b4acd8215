// Package types implements the interned semantic type system of spec §3
// "Semantic Type (TypeRef)": primitives, named value/entity/interface
// types, generics, optionals, functions, and the container types. Once
// registered, a TypeRef is immutable; identity implies equivalence for
// resolved types.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the variants of a semantic type.
type Kind int

const (
	Invalid Kind = iota
	Unknown
	Integer
	Number
	Boolean
	String
	Byte
	Unit
	Named     // a user value/entity/interface type, identified by FQN
	Generic   // an application of a generic named type to type arguments
	Optional
	Function
	List
	Map
	Set
	Tuple
)

// TypeRef is an interned handle to a resolved semantic type. Two TypeRefs
// compare equal (by the == on *Type, see Table.Intern) iff they denote the
// equivalent type.
type TypeRef = *Type

// Type is the canonical representation backing a TypeRef.
type Type struct {
	Kind Kind

	// Named / Generic
	Name string

	// Generic
	Args []TypeRef

	// Optional
	Elem TypeRef

	// Function
	Params []TypeRef
	Ret    TypeRef

	// List / Set
	// (reuse Elem)

	// Map
	Key TypeRef
	Val TypeRef

	// Tuple
	Elems []TypeRef

	key string // canonicalized interning key, computed once
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Unknown:
		return "Unknown"
	case Integer, Number, Boolean, String, Byte, Unit:
		return kindName(t.Kind)
	case Named:
		return t.Name
	case Generic:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
	case Optional:
		return t.Elem.String() + "?"
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Ret.String())
	case List:
		return "List<" + t.Elem.String() + ">"
	case Set:
		return "Set<" + t.Elem.String() + ">"
	case Map:
		return fmt.Sprintf("Map<%s, %s>", t.Key.String(), t.Val.String())
	case Tuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "<invalid>"
	}
}

func kindName(k Kind) string {
	switch k {
	case Integer:
		return "Integer"
	case Number:
		return "Number"
	case Boolean:
		return "Boolean"
	case String:
		return "String"
	case Byte:
		return "Byte"
	case Unit:
		return "Unit"
	default:
		return "?"
	}
}

// IsNumeric reports whether t is Integer or Number.
func (t *Type) IsNumeric() bool {
	return t != nil && (t.Kind == Integer || t.Kind == Number)
}

// IsOrdinal reports whether t can drive a counted "for" loop: Integer or
// a named enum (enums are registered as Named types with an IsEnum side
// flag tracked by the Table).
func IsOrdinal(t *Type, enumSet map[*Type]bool) bool {
	if t == nil {
		return false
	}
	if t.Kind == Integer {
		return true
	}
	return enumSet[t]
}
