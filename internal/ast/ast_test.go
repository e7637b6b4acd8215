package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splanck/vipc/internal/source"
)

func TestNodeLocRoundTrips(t *testing.T) {
	loc := source.Loc{File: source.FileID(3), Line: 5, Column: 9}
	id := NewIdent(loc, "x")
	assert.Equal(t, loc, id.Loc())
}

func TestExprKindDiscriminants(t *testing.T) {
	loc := source.Invalid
	assert.Equal(t, ExprIntLit, NewIntLit(loc, 1, "1").ExprKind())
	assert.Equal(t, ExprNumberLit, NewNumberLit(loc, 1.5, "1.5").ExprKind())
	assert.Equal(t, ExprStringLit, NewStringLit(loc, "hi").ExprKind())
	assert.Equal(t, ExprBoolLit, NewBoolLit(loc, true).ExprKind())
	assert.Equal(t, ExprIdent, NewIdent(loc, "x").ExprKind())
	assert.Equal(t, ExprBinary, NewBinaryExpr(loc, OpAdd, NewIntLit(loc, 1, "1"), NewIntLit(loc, 2, "2")).ExprKind())
	assert.Equal(t, ExprCall, NewCallExpr(loc, NewIdent(loc, "f"), nil).ExprKind())
}

func TestStmtKindDiscriminants(t *testing.T) {
	loc := source.Invalid
	assert.Equal(t, StmtIf, NewIfStmt(loc, NewBoolLit(loc, true), NewBlockStmt(loc, nil), nil).StmtKind())
	assert.Equal(t, StmtWhile, NewWhileStmt(loc, NewBoolLit(loc, true), NewBlockStmt(loc, nil)).StmtKind())
	assert.Equal(t, StmtFor, NewForStmt(loc, "i", NewIntLit(loc, 1, "1"), NewIntLit(loc, 10, "10"), nil, false, NewBlockStmt(loc, nil)).StmtKind())
	assert.Equal(t, StmtReturn, NewReturnStmt(loc, nil).StmtKind())
	assert.Equal(t, StmtBreak, NewBreakStmt(loc).StmtKind())
	assert.Equal(t, StmtAssign, NewAssignStmt(loc, NewIdent(loc, "x"), NewIntLit(loc, 1, "1")).StmtKind())
}

func TestDeclKindDiscriminants(t *testing.T) {
	loc := source.Invalid
	fn := NewFunctionDecl(loc, "f", nil, nil, NewBlockStmt(loc, nil))
	assert.Equal(t, DeclFunction, fn.DeclKind())

	mod := NewModuleDecl(loc, "m", []Decl{fn})
	assert.Equal(t, DeclModule, mod.DeclKind())
	assert.Len(t, mod.Decls, 1)
	assert.Same(t, fn, mod.Decls[0])

	imp := NewImportDecl(loc, "lib.vip", "lib")
	assert.Equal(t, DeclImport, imp.DeclKind())
	assert.Equal(t, "lib.vip", imp.Path)
}

func TestGlobalVarDeclCarriesConstAndFinalFlags(t *testing.T) {
	loc := source.Invalid
	v := NewGlobalVarDecl(loc, "Pi", nil, NewNumberLit(loc, 3.14, "3.14"), true, true)
	assert.True(t, v.IsConst)
	assert.True(t, v.IsFinal)
	assert.Equal(t, "Pi", v.Name)
}

func TestForStmtDirectionFlag(t *testing.T) {
	loc := source.Invalid
	up := NewForStmt(loc, "i", NewIntLit(loc, 1, "1"), NewIntLit(loc, 10, "10"), nil, false, NewBlockStmt(loc, nil))
	down := NewForStmt(loc, "i", NewIntLit(loc, 10, "10"), NewIntLit(loc, 1, "1"), nil, true, NewBlockStmt(loc, nil))
	assert.False(t, up.Down)
	assert.True(t, down.Down)
}
