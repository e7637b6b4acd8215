package semantic

import "github.com/splanck/vipc/internal/types"

// FieldInfo describes one field of a ClassInfo.
type FieldInfo struct {
	Type       types.TypeRef
	Visibility int // mirrors ast.Visibility; kept untyped here to avoid an import cycle with ast in hot paths
	IsWeak     bool
	IsFinal    bool
}

// MethodInfo describes one method of a ClassInfo.
type MethodInfo struct {
	Signature  types.TypeRef // a Function TypeRef
	IsVirtual  bool
	IsAbstract bool
	IsOverride bool
}

// PropertyInfo describes one computed property.
type PropertyInfo struct {
	Type   types.TypeRef
	Getter string
	Setter string
}

// ClassInfo captures everything the analyzer needs to know about one
// value/entity type declaration (spec §3).
type ClassInfo struct {
	Name            string
	IsInterface     bool
	IsValueType     bool // copy semantics (a "value" declaration)
	Base            *ClassInfo
	Interfaces      []*ClassInfo
	Fields          map[string]*FieldInfo
	Methods         map[string]*MethodInfo
	Properties      map[string]*PropertyInfo
	HasConstructor  bool
	HasDestructor   bool
	IsAbstract      bool
}

// NewClassInfo returns an empty ClassInfo ready to be populated during the
// member-registration pass (spec §4.6 step 5).
func NewClassInfo(name string) *ClassInfo {
	return &ClassInfo{
		Name:       name,
		Fields:     make(map[string]*FieldInfo),
		Methods:    make(map[string]*MethodInfo),
		Properties: make(map[string]*PropertyInfo),
	}
}

// LookupField walks Base, returning the nearest field named name.
func (c *ClassInfo) LookupField(name string) (*FieldInfo, bool) {
	for cur := c; cur != nil; cur = cur.Base {
		if f, ok := cur.Fields[name]; ok {
			return f, true
		}
	}
	for _, iface := range c.Interfaces {
		if f, ok := iface.LookupField(name); ok {
			return f, true
		}
	}
	return nil, false
}

// LookupMethod walks Base then Interfaces, returning the nearest method
// named name (spec §4.6 "Field access: resolves through the receiver's
// type's members, then through interfaces it implements").
func (c *ClassInfo) LookupMethod(name string) (*MethodInfo, bool) {
	for cur := c; cur != nil; cur = cur.Base {
		if m, ok := cur.Methods[name]; ok {
			return m, true
		}
	}
	for _, iface := range c.Interfaces {
		if m, ok := iface.LookupMethod(name); ok {
			return m, true
		}
	}
	return nil, false
}

// IsSubtypeOf reports whether c is the same class as other, or inherits
// from it (directly or transitively), or implements it as an interface.
func (c *ClassInfo) IsSubtypeOf(other *ClassInfo) bool {
	for cur := c; cur != nil; cur = cur.Base {
		if cur == other {
			return true
		}
		for _, iface := range cur.Interfaces {
			if iface == other || iface.IsSubtypeOf(other) {
				return true
			}
		}
	}
	return false
}
