package semantic

import (
	"strings"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/source"
	"github.com/splanck/vipc/internal/types"
)

// seedBuiltins implements spec §4.6 pass 1: register built-in primitive
// types (already owned by the shared types.Table) and seed the global
// scope with every Runtime Registry extern function and getter (spec
// §4.8). A later user global or function declared under one of these full
// dotted names is diagnosed as CodeBuiltinShadow; reusing only a name's
// last segment is not diagnosed.
func (a *Analyzer) seedBuiltins() {
	if a.registry == nil {
		return
	}
	for _, name := range a.registry.Functions() {
		entry, _ := a.registry.LookupFunction(name)
		params := make([]types.TypeRef, len(entry.Params))
		for i, p := range entry.Params {
			params[i] = a.resolvePrimitiveName(p)
		}
		ret := a.resolvePrimitiveName(entry.Ret)
		fn := a.ty.Func(params, ret)
		a.scopes.Global().Define(name, &Symbol{Kind: SymFunction, Name: name, Type: fn, IsExtern: true})
		a.registerNamespacePrefixes(name)
	}
	for _, name := range a.registry.Getters() {
		a.registerNamespacePrefixes(name)
	}
}

// registerNamespacePrefixes marks every proper dotted prefix of a
// registered extern name as a known namespace (e.g. "Viper.Math.Sqrt"
// registers "Viper" and "Viper.Math"), so namespace-style member access
// that targets a real namespace but a non-existent member reports
// E_NS_002 rather than E_NS_001.
func (a *Analyzer) registerNamespacePrefixes(dotted string) {
	segs := strings.Split(dotted, ".")
	for i := 1; i < len(segs); i++ {
		a.namespaces[strings.Join(segs[:i], ".")] = true
	}
}

func (a *Analyzer) resolvePrimitiveName(name string) types.TypeRef {
	switch name {
	case "Integer":
		return a.ty.TInteger
	case "Number":
		return a.ty.TNumber
	case "Boolean":
		return a.ty.TBoolean
	case "String":
		return a.ty.TString
	case "Byte":
		return a.ty.TByte
	case "Unit":
		return a.ty.TUnit
	default:
		return a.ty.Named(name)
	}
}

// registerTypeDeclSkeleton implements spec §4.6 pass 3: register every
// user type declaration by name, without resolving field/method bodies
// yet, so mutually-referencing types can cross-reference each other.
func (a *Analyzer) registerTypeDeclSkeleton(d ast.Decl) {
	td, ok := d.(*ast.TypeDecl)
	if !ok {
		return
	}
	if td.Name == ReservedRootNamespace {
		a.emitter.Emit(diag.Error, CodeNSReservedNamespace, td.Loc(), uint32(len(td.Name)),
			"cannot declare reserved namespace name '"+ReservedRootNamespace+"'")
		return
	}
	ci := NewClassInfo(td.Name)
	ci.IsInterface = td.Kind == ast.KindInterface
	ci.IsValueType = td.Kind == ast.KindValue
	ci.IsAbstract = td.IsAbstract
	a.classes[a.foldName(td.Name)] = ci
	a.scopes.Global().Define(td.Name, &Symbol{Kind: SymType, Name: td.Name, Type: a.ty.Named(td.Name), Decl: td})
}

// registerGlobalVar implements spec §4.6 pass 4.
func (a *Analyzer) registerGlobalVar(g *ast.GlobalVarDecl) {
	var t types.TypeRef
	if g.Type != nil {
		t = a.resolveType(g.Type)
	} else if g.Init != nil {
		t = a.analyzeExpr(g.Init)
	} else {
		t = a.ty.TUnknown
	}
	if existing, ok := a.scopes.Global().LookupLocal(g.Name); ok && existing.IsExtern {
		a.emitter.Emit(diag.Error, CodeBuiltinShadow, g.Loc(), uint32(len(g.Name)),
			"declaration of '"+g.Name+"' shadows a built-in runtime symbol")
	}
	a.scopes.Global().Define(g.Name, &Symbol{
		Kind: SymVariable, Name: g.Name, Type: t,
		IsFinal: g.IsFinal || g.IsConst, Decl: g,
	})
}

// registerTypeMembers implements spec §4.6 pass 5: fields, methods,
// constructors, and properties are registered before any body is
// analyzed so cross-type member resolution (inheritance, interfaces) is
// available uniformly.
func (a *Analyzer) registerTypeMembers(d ast.Decl) {
	td, ok := d.(*ast.TypeDecl)
	if !ok {
		return
	}
	ci := a.classes[a.foldName(td.Name)]
	if ci == nil {
		return
	}

	if td.Base != nil {
		if base := a.classes[a.foldName(td.Base.Name)]; base != nil {
			if a.wouldCreateInheritanceCycle(ci, base) {
				a.emitter.Emitf(diag.Error, a.code("1301"), td.Loc(), uint32(len(td.Name)),
					"class '%s' cannot inherit from '%s': inheritance cycle", td.Name, base.Name)
			} else {
				ci.Base = base
			}
		} else {
			a.emitter.Emitf(diag.Error, a.code("1300"), td.Base.Loc(), uint32(len(td.Base.Name)),
				"unknown base class '%s'", td.Base.Name)
		}
	}
	for _, ifaceRef := range td.Interfaces {
		iface := a.classes[a.foldName(ifaceRef.Name)]
		if iface == nil {
			a.emitter.Emitf(diag.Error, a.code("1302"), ifaceRef.Loc(), uint32(len(ifaceRef.Name)),
				"unknown interface '%s'", ifaceRef.Name)
			continue
		}
		ci.Interfaces = append(ci.Interfaces, iface)
	}

	for _, f := range td.Fields {
		if f.IsWeak && ci.IsValueType {
			a.emitter.Emit(diag.Error, a.code("1310"), f.Loc(), 1,
				"'weak' cannot be applied to a field of a value type")
		}
		ci.Fields[f.Name] = &FieldInfo{Type: a.resolveType(f.Type), Visibility: int(f.Visibility), IsWeak: f.IsWeak, IsFinal: f.IsFinal}
	}
	for _, p := range td.Properties {
		ci.Properties[p.Name] = &PropertyInfo{Type: a.resolveType(p.Type), Getter: p.Getter, Setter: p.Setter}
	}
	for _, m := range td.Methods {
		params := make([]types.TypeRef, len(m.Params))
		for i, prm := range m.Params {
			params[i] = a.resolveType(prm.Type)
		}
		ret := a.ty.TUnit
		if m.Ret != nil {
			ret = a.resolveType(m.Ret)
		}
		ci.Methods[m.Name] = &MethodInfo{
			Signature:  a.ty.Func(params, ret),
			IsVirtual:  m.IsVirtual,
			IsAbstract: m.IsAbstract,
			IsOverride: m.IsOverride,
		}
		a.validateOverride(td, ci, m)
	}
	if len(td.Constructors) > 0 {
		ci.HasConstructor = true
	}

	if ci.IsInterface {
		return
	}
	a.validateInterfaceImplementations(td, ci)
}

func (a *Analyzer) wouldCreateInheritanceCycle(ci, base *ClassInfo) bool {
	for cur := base; cur != nil; cur = cur.Base {
		if cur == ci {
			return true
		}
	}
	return false
}

// validateOverride enforces spec §4.6 OOP rule: a method declared
// 'override' must override an ancestor's 'virtual' (non-final) method of
// the same name.
func (a *Analyzer) validateOverride(td *ast.TypeDecl, ci *ClassInfo, m *ast.MethodDecl) {
	if !m.IsOverride {
		return
	}
	if ci.Base == nil {
		a.emitter.Emitf(diag.Error, a.code("1320"), m.Loc(), uint32(len(m.Name)),
			"method '%s.%s' is declared override but '%s' has no base class", td.Name, m.Name, td.Name)
		return
	}
	baseMethod, ok := ci.Base.LookupMethod(m.Name)
	if !ok {
		a.emitter.Emitf(diag.Error, a.code("1321"), m.Loc(), uint32(len(m.Name)),
			"method '%s' overrides nothing in base class '%s'", m.Name, ci.Base.Name)
		return
	}
	if !baseMethod.IsVirtual {
		a.emitter.Emitf(diag.Error, a.code("1322"), m.Loc(), uint32(len(m.Name)),
			"method '%s.%s' is marked override but the base method is not virtual; declare base method as 'virtual'", td.Name, m.Name)
	}
}

// validateInterfaceImplementations enforces spec §4.6: a class implementing
// an interface must provide every one of its methods.
func (a *Analyzer) validateInterfaceImplementations(td *ast.TypeDecl, ci *ClassInfo) {
	for _, iface := range ci.Interfaces {
		for name, want := range iface.Methods {
			got, ok := ci.LookupMethod(name)
			if !ok {
				a.emitter.Emitf(diag.Error, a.code("1330"), td.Loc(), uint32(len(td.Name)),
					"class '%s' must implement method '%s' of interface '%s'", td.Name, name, iface.Name)
				continue
			}
			if got.Signature != want.Signature {
				a.emitter.Emitf(diag.Error, a.code("1331"), td.Loc(), uint32(len(td.Name)),
					"class '%s' method '%s' does not match interface '%s' signature", td.Name, name, iface.Name)
			}
		}
	}
}

// registerFunctionSignature makes a free function's signature visible
// before its own body (and callers declared earlier in the file) are
// analyzed.
func (a *Analyzer) registerFunctionSignature(f *ast.FunctionDecl) {
	params := make([]types.TypeRef, len(f.Params))
	for i, p := range f.Params {
		params[i] = a.resolveType(p.Type)
	}
	ret := a.ty.TUnit
	if f.Ret != nil {
		ret = a.resolveType(f.Ret)
	}
	fnType := a.ty.Func(params, ret)

	if f.IsOverload {
		a.defineOverload(f.Name, fnType, f)
		return
	}
	if existing, ok := a.scopes.Global().LookupLocal(f.Name); ok {
		if existing.IsExtern {
			a.emitter.Emit(diag.Error, CodeBuiltinShadow, f.Loc(), uint32(len(f.Name)),
				"declaration of '"+f.Name+"' shadows a built-in runtime symbol")
		} else {
			a.emitter.Emitf(diag.Error, a.code("1101"), f.Loc(), uint32(len(f.Name)),
				"duplicate declaration of procedure '%s'", f.Name)
		}
	}
	a.scopes.Global().Define(f.Name, &Symbol{Kind: SymFunction, Name: f.Name, Type: fnType, Decl: f})
}

// analyzeDeclBody implements spec §4.6 pass 6 for one top-level decl.
func (a *Analyzer) analyzeDeclBody(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FunctionDecl:
		a.analyzeFunctionBody(n)
	case *ast.TypeDecl:
		a.analyzeTypeDeclBodies(n)
	}
}

func (a *Analyzer) analyzeFunctionBody(f *ast.FunctionDecl) {
	if f.Body == nil {
		return
	}
	a.scopes.Push()
	defer a.scopes.Pop()
	for _, p := range f.Params {
		a.scopes.Current().Define(p.Name, &Symbol{Kind: SymParameter, Name: p.Name, Type: a.resolveType(p.Type)})
	}
	prevRet, prevSet := a.currentRetType, a.currentRetSet
	a.currentRetType = a.ty.TUnit
	if f.Ret != nil {
		a.currentRetType = a.resolveType(f.Ret)
	}
	a.currentRetSet = true
	a.analyzeBlockStmt(f.Body)
	a.currentRetType, a.currentRetSet = prevRet, prevSet
}

func (a *Analyzer) analyzeTypeDeclBodies(td *ast.TypeDecl) {
	ci := a.classes[a.foldName(td.Name)]
	if ci != nil && ci.IsAbstract {
		// Abstract classes are still analyzed; instantiation is rejected at
		// each `new` call site (spec §4.6).
	}
	a.scopes.Push()
	defer a.scopes.Pop()
	a.scopes.Current().Define("self", &Symbol{Kind: SymVariable, Name: "self", Type: a.ty.Named(td.Name), IsFinal: true})

	for _, c := range td.Constructors {
		a.scopes.Push()
		for _, p := range c.Params {
			a.scopes.Current().Define(p.Name, &Symbol{Kind: SymParameter, Name: p.Name, Type: a.resolveType(p.Type)})
		}
		if c.Body != nil {
			a.analyzeBlockStmt(c.Body)
		}
		a.scopes.Pop()
	}
	for _, m := range td.Methods {
		if m.Body == nil {
			continue
		}
		a.scopes.Push()
		for _, p := range m.Params {
			a.scopes.Current().Define(p.Name, &Symbol{Kind: SymParameter, Name: p.Name, Type: a.resolveType(p.Type)})
		}
		prevRet, prevSet := a.currentRetType, a.currentRetSet
		a.currentRetType = a.ty.TUnit
		if m.Ret != nil {
			a.currentRetType = a.resolveType(m.Ret)
		}
		a.currentRetSet = true
		a.analyzeBlockStmt(m.Body)
		a.currentRetType, a.currentRetSet = prevRet, prevSet
		a.scopes.Pop()
	}
}

// invalidLoc is used where a diagnostic has no specific source position
// of its own (e.g. synthetic checks); it prints without a snippet.
var invalidLoc = source.Invalid
