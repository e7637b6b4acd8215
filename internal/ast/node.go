// Package ast defines the four AST node families of spec §3: TypeNode,
// Expr, Stmt, Decl. Each family is a Go interface ("tagged sum type" per
// Design Notes §9); concrete node structs are its variants and carry a
// Kind discriminant for fast dispatch plus a source.Loc.
//
// Node identity. The original implementation keys side-tables (resolved
// expression types, capture info, runtime callee resolutions) by AST node
// identity and uses raw back-pointers for scope/symbol parents. Design
// Notes §9 suggests an arena of NodeId indices to remove that lifetime
// entanglement — appropriate in a systems language without a garbage
// collector. Go already removes the unsafe-aliasing problem that note is
// guarding against, so this package uses ordinary pointers for tree edges
// and the pointer value itself (wrapped in the Expr/Stmt/Decl/TypeNode
// interface) as the stable map key for side-tables, exactly as go/types
// keys its Info.Types/Info.Defs maps by ast.Expr/ast.Ident identity. See
// DESIGN.md for the full rationale.
package ast

import "github.com/splanck/vipc/internal/source"

// Node is implemented by every concrete node in all four families.
type Node interface {
	Loc() source.Loc
}

// base carries the one field every node has and is embedded by every
// concrete node struct.
type base struct {
	At source.Loc
}

func (b base) Loc() source.Loc { return b.At }

// TypeKind discriminates TypeNode variants.
type TypeKind int

const (
	TypeNamed TypeKind = iota
	TypeGeneric
	TypeOptional
	TypeFunc
	TypeTuple
)

// TypeNode is the AST representation of a syntactic type annotation,
// resolved later by the semantic analyzer into a types.TypeRef.
type TypeNode interface {
	Node
	TypeKind() TypeKind
	typeNode()
}

// ExprKind discriminates Expr variants.
type ExprKind int

const (
	ExprIntLit ExprKind = iota
	ExprNumberLit
	ExprStringLit
	ExprBoolLit
	ExprNullLit
	ExprUnitLit
	ExprIdent
	ExprSelf
	ExprSuper
	ExprBinary
	ExprUnary
	ExprTernary
	ExprCall
	ExprIndex
	ExprField
	ExprOptionalChain
	ExprCoalesce
	ExprIs
	ExprAs
	ExprRange
	ExprTry
	ExprNew
	ExprLambda
	ExprListLit
	ExprMapLit
	ExprSetLit
	ExprTuple
	ExprTupleIndex
	ExprIf
	ExprMatch
	ExprBlock
	ExprInterpString
)

// Expr is any AST node that produces a value.
type Expr interface {
	Node
	ExprKind() ExprKind
	exprNode()
}

// StmtKind discriminates Stmt variants.
type StmtKind int

const (
	StmtBlock StmtKind = iota
	StmtExpr
	StmtVar
	StmtIf
	StmtWhile
	StmtFor
	StmtForIn
	StmtReturn
	StmtBreak
	StmtContinue
	StmtGuard
	StmtMatch
	StmtAssign
)

// Stmt is any AST node that performs an action without producing a value.
type Stmt interface {
	Node
	StmtKind() StmtKind
	stmtNode()
}

// DeclKind discriminates Decl variants.
type DeclKind int

const (
	DeclModule DeclKind = iota
	DeclImport
	DeclValue
	DeclEntity
	DeclInterface
	DeclFunction
	DeclField
	DeclMethod
	DeclConstructor
	DeclGlobalVar
	DeclNamespace
)

// Decl is any top-level or member declaration.
type Decl interface {
	Node
	DeclKind() DeclKind
	declNode()
}
