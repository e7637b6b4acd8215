package semantic

import (
	"strings"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/runtimereg"
	"github.com/splanck/vipc/internal/source"
)

// flattenDecls implements spec §4.6 "Namespaces": it walks module-level
// declarations in source order, validating USING/BIND/IMPORT placement and
// registering namespace paths and aliases, and returns the declarations
// that carry their own skeleton (types, functions, global vars), with
// namespace bodies inlined into the same top-level sequence so every later
// pass can keep iterating a flat list.
func (a *Analyzer) flattenDecls(decls []ast.Decl) []ast.Decl {
	var out []ast.Decl
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.ImportDecl:
			a.processImport(n)
		case *ast.NamespaceDecl:
			a.registerNamespaceDecl(n)
			a.declSeen = true
			out = append(out, a.flattenDecls(n.Decls)...)
		default:
			a.declSeen = true
			out = append(out, d)
		}
	}
	return out
}

// processImport implements the USING/BIND/IMPORT rules of spec §4.6: must
// precede any declaration, may not target the reserved root namespace, and
// its alias (if any) must not collide with an existing alias or namespace.
func (a *Analyzer) processImport(n *ast.ImportDecl) {
	if a.declSeen {
		a.emitter.Emit(diag.Error, CodeNSUsingAfterDecl, n.Loc(), uint32(len(n.Path)),
			"USING must appear before any declaration")
	}
	if rootOf(n.Path) == ReservedRootNamespace {
		a.emitter.Emit(diag.Error, CodeNSReservedNamespace, n.Loc(), uint32(len(n.Path)),
			"cannot import reserved namespace '"+ReservedRootNamespace+"'")
		return
	}
	a.namespaces[n.Path] = true
	if n.Alias == "" {
		return
	}
	if existing, ok := a.usingAliases[n.Alias]; ok && existing != n.Path {
		a.emitter.Emit(diag.Error, CodeNSDuplicateAlias, n.Loc(), uint32(len(n.Alias)),
			"duplicate alias '"+n.Alias+"'")
		return
	}
	if a.namespaces[n.Alias] {
		a.emitter.Emit(diag.Error, CodeNSAliasConflict, n.Loc(), uint32(len(n.Alias)),
			"alias '"+n.Alias+"' conflicts with a namespace of the same name")
		return
	}
	a.usingAliases[n.Alias] = n.Path
}

func (a *Analyzer) registerNamespaceDecl(n *ast.NamespaceDecl) {
	if len(n.Path) == 0 {
		return
	}
	if n.Path[0] == ReservedRootNamespace {
		a.emitter.Emit(diag.Error, CodeNSReservedNamespace, n.Loc(), uint32(len(n.Path[0])),
			"cannot declare reserved namespace '"+ReservedRootNamespace+"'")
		return
	}
	for i := range n.Path {
		a.namespaces[strings.Join(n.Path[:i+1], ".")] = true
	}
}

func rootOf(dotted string) string {
	if i := strings.IndexByte(dotted, '.'); i >= 0 {
		return dotted[:i]
	}
	return dotted
}

// resolveNamespacedAccess reports whether dotted names a namespace-style
// access (its root is the reserved namespace or a registered import/
// namespace) that the Runtime Registry could not resolve, emitting
// E_NS_002 when the namespace itself is known but the member is not, or
// E_NS_001 when the root is not a known namespace at all. It returns false
// when dotted doesn't look like namespace access, leaving ordinary name
// resolution to report its own diagnostic.
func (a *Analyzer) resolveNamespacedAccess(dotted string, loc source.Loc) bool {
	root := rootOf(dotted)
	if root != ReservedRootNamespace && !a.namespaces[root] {
		return false
	}
	ns := runtimereg.NamespaceOf(dotted)
	if ns == ReservedRootNamespace || a.namespaces[ns] {
		member := runtimereg.MemberOf(dotted)
		a.emitter.Emit(diag.Error, CodeNSUnknownMember, loc, uint32(len(member)),
			"unknown member '"+member+"' in namespace '"+ns+"'")
		return true
	}
	a.emitter.Emit(diag.Error, CodeNSUnknownNamespace, loc, uint32(len(root)), "unknown namespace '"+root+"'")
	return true
}
