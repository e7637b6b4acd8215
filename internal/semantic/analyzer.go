// Package semantic implements the SemanticAnalyzer of spec §4.6: name
// resolution, type checking, scope management, capture analysis, and
// pattern-exhaustiveness checking, shared by every dialect's AST.
package semantic

import (
	"strings"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/runtimereg"
	"github.com/splanck/vipc/internal/types"
)

// Analyzer runs the multi-pass analysis of spec §4.6 over one module.
type Analyzer struct {
	Dialect  Dialect
	policy   Policy
	emitter  *diag.Emitter
	scopes   *Stack
	ty       *types.Table
	registry *runtimereg.Registry

	classes map[string]*ClassInfo

	// Side-tables keyed by AST node identity (spec §3 "kept in side-tables
	// keyed by node identity, not mutated into the AST"; see the package
	// doc comment in internal/ast/node.go for why pointer identity, not a
	// hand-rolled NodeId arena, is the idiomatic Go analogue here).
	exprTypes           map[ast.Expr]types.TypeRef
	runtimeCallees      map[ast.Expr]string
	runtimeFieldGetters map[ast.Expr]string

	// Namespace/using bookkeeping (BASIC, Zia).
	namespaces    map[string]bool // registered qualified namespace paths
	usingAliases  map[string]string
	declSeen      bool // true once any top-level declaration has been processed

	// Zia per-module exports, keyed by import alias then exported name.
	moduleExports map[string]map[string]*Symbol

	loopDepth      int
	currentRetType types.TypeRef
	currentRetSet  bool
}

// New creates an Analyzer for dialect d, reporting through em and interning
// types in ty (typically shared across an entire compilation so cross-
// module type identity holds).
func New(d Dialect, em *diag.Emitter, ty *types.Table, reg *runtimereg.Registry) *Analyzer {
	if reg == nil {
		reg = runtimereg.Load()
	}
	policy := PolicyFor(d)
	a := &Analyzer{
		Dialect:             d,
		policy:              policy,
		emitter:             em,
		scopes:              NewStack(policy.CaseFold),
		ty:                  ty,
		registry:            reg,
		classes:             make(map[string]*ClassInfo),
		exprTypes:           make(map[ast.Expr]types.TypeRef),
		runtimeCallees:      make(map[ast.Expr]string),
		runtimeFieldGetters: make(map[ast.Expr]string),
		namespaces:          make(map[string]bool),
		usingAliases:        make(map[string]string),
		moduleExports:       make(map[string]map[string]*Symbol),
	}
	a.seedBuiltins()
	return a
}

// Analyze runs the analysis passes of spec §4.6 over module (pass 1 runs
// in New). It returns nothing: diagnostics are reported through the
// Emitter, and the engine's error count is what gates downstream stages
// per spec §7.
func (a *Analyzer) Analyze(module *ast.ModuleDecl) {
	// Pass 1 done in New() (seedBuiltins).
	// Pass 2: imports are merged into module.Decls by the ImportResolver
	// before Analyze is called (spec §4.5); USING/BIND placement and
	// namespace registration happen here as the module's own decls are
	// flattened.
	decls := a.flattenDecls(module.Decls)
	// Pass 3: register all user type declarations.
	for _, d := range decls {
		a.registerTypeDeclSkeleton(d)
	}
	// Pass 4: register global variables.
	for _, d := range decls {
		if g, ok := d.(*ast.GlobalVarDecl); ok {
			a.registerGlobalVar(g)
		}
	}
	// Pass 5: register type members for cross-type resolution.
	for _, d := range decls {
		a.registerTypeMembers(d)
	}
	// Also register free function signatures before any body is analyzed,
	// so forward references between functions resolve.
	for _, d := range decls {
		if f, ok := d.(*ast.FunctionDecl); ok {
			a.registerFunctionSignature(f)
		}
	}
	// Pass 6: analyze bodies.
	for _, d := range decls {
		a.analyzeDeclBody(d)
	}
}

// ExprType returns the resolved type of expr, if analysis reached it.
func (a *Analyzer) ExprType(e ast.Expr) (types.TypeRef, bool) {
	t, ok := a.exprTypes[e]
	return t, ok
}

// RuntimeCallee returns the dotted registry name a call node resolved to,
// if any.
func (a *Analyzer) RuntimeCallee(e ast.Expr) (string, bool) {
	n, ok := a.runtimeCallees[e]
	return n, ok
}

// RuntimeFieldGetter returns the dotted registry getter name a field
// access node resolved to, if any.
func (a *Analyzer) RuntimeFieldGetter(e ast.Expr) (string, bool) {
	n, ok := a.runtimeFieldGetters[e]
	return n, ok
}

// setType records expr's resolved type in the side-table.
func (a *Analyzer) setType(e ast.Expr, t types.TypeRef) types.TypeRef {
	a.exprTypes[e] = t
	return t
}

func (a *Analyzer) foldName(name string) string {
	if a.policy.CaseFold {
		return strings.ToLower(name)
	}
	return name
}

func (a *Analyzer) code(suffix string) string {
	return a.policy.ErrorCodePrefix + suffix
}
