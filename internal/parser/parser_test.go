package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/lexer"
	"github.com/splanck/vipc/internal/source"
)

func newBasicParser(src string) (*BasicParser, *diag.Engine) {
	engine := diag.NewEngine()
	em := diag.NewEmitter(engine, source.New())
	lx := lexer.New(lexer.BasicConfig(), source.FileID(1), src, em)
	return NewBasic(lx, em), engine
}

func newPascalParser(src string) (*PascalParser, *diag.Engine) {
	engine := diag.NewEngine()
	em := diag.NewEmitter(engine, source.New())
	lx := lexer.New(lexer.PascalConfig(), source.FileID(1), src, em)
	return NewPascal(lx, em), engine
}

func newViperParser(src string) (*ViperParser, *diag.Engine) {
	engine := diag.NewEngine()
	em := diag.NewEmitter(engine, source.New())
	lx := lexer.New(lexer.ViperConfig(), source.FileID(1), src, em)
	return NewViper(lx, em), engine
}

func newZiaParser(src string) (*ZiaParser, *diag.Engine) {
	engine := diag.NewEngine()
	em := diag.NewEmitter(engine, source.New())
	lx := lexer.New(lexer.ZiaConfig(), source.FileID(1), src, em)
	return NewZia(lx, em), engine
}

func TestBasicParseModuleWrapsTopLevelStatementsInMain(t *testing.T) {
	p, engine := newBasicParser("DIM x AS Integer = 1\nx = x + 1\n")
	mod := p.ParseModule()
	require.Equal(t, 0, engine.ErrorCount())
	require.Len(t, mod.Decls, 2)
	fn, ok := mod.Decls[1].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name)
	assert.NotEmpty(t, fn.Body.Stmts)
}

func TestBasicDuplicateNumericLabelIsDiagnosed(t *testing.T) {
	p, engine := newBasicParser("10 DIM x AS Integer\n10 DIM y AS Integer\n")
	p.ParseModule()
	assert.Equal(t, 1, engine.ErrorCount())
	assert.Equal(t, "B2200", engine.All()[0].Code)
}

func TestBasicSubDeclaration(t *testing.T) {
	p, engine := newBasicParser("SUB Greet()\nEND SUB\n")
	mod := p.ParseModule()
	require.Equal(t, 0, engine.ErrorCount())
	require.Len(t, mod.Decls, 2)
	fn, ok := mod.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "Greet", fn.Name)
}

func TestPascalParseModuleWrapsBodyInMain(t *testing.T) {
	src := `program Demo;
var
  x: Integer;
begin
  x := 1;
end.
`
	p, engine := newPascalParser(src)
	mod := p.ParseModule()
	require.Equal(t, 0, engine.ErrorCount())
	assert.Equal(t, "Demo", mod.Name)

	var main *ast.FunctionDecl
	for _, d := range mod.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Name == "main" {
			main = fn
		}
	}
	require.NotNil(t, main)
	assert.NotEmpty(t, main.Body.Stmts)
}

func TestPascalMissingFinalDotIsDiagnosed(t *testing.T) {
	src := `program Demo;
begin
end
`
	p, engine := newPascalParser(src)
	p.ParseModule()
	assert.Greater(t, engine.ErrorCount(), 0, "a program body not closed with '.' must report an error")
}

func TestViperFuncDeclWithReturnType(t *testing.T) {
	src := `func add(a: Integer, b: Integer) -> Integer {
  return a + b;
}
`
	p, engine := newViperParser(src)
	mod := p.ParseModule()
	require.Equal(t, 0, engine.ErrorCount())
	require.Len(t, mod.Decls, 1)
	fn, ok := mod.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
}

func TestViperClassIsEntitySynonym(t *testing.T) {
	src := `class Widget {
  name: String;
}
`
	p, engine := newViperParser(src)
	mod := p.ParseModule()
	require.Equal(t, 0, engine.ErrorCount())
	require.Len(t, mod.Decls, 1)
	td, ok := mod.Decls[0].(*ast.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, ast.KindEntity, td.Kind, "'class' is accepted as a synonym for 'entity'")
}

func TestViperPrecedenceClimbsMultiplicationOverAddition(t *testing.T) {
	p, engine := newViperParser("1 + 2 * 3")
	expr := p.parseExpr()
	require.Equal(t, 0, engine.ErrorCount())
	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, rhs.Op, "2 * 3 must bind tighter than the top-level +, producing 1 + (2 * 3)")
}

func TestViperImportCycleIsParserNeutral(t *testing.T) {
	p, engine := newViperParser(`import "other.vip";`)
	decl := p.parseTopDecl()
	require.Equal(t, 0, engine.ErrorCount())
	imp, ok := decl.(*ast.ImportDecl)
	require.True(t, ok)
	assert.Equal(t, "other.vip", imp.Path)
}

func TestZiaSpeculativePatternFallsBackToBinding(t *testing.T) {
	src := `match x {
  y => 1,
}
`
	p, engine := newZiaParser(src)
	stmt := p.parseStmt()
	require.Equal(t, 0, engine.ErrorCount())
	ms, ok := stmt.(*ast.MatchStmt)
	require.True(t, ok)
	require.Len(t, ms.Arms, 1)
	assert.Equal(t, ast.PatBinding, ms.Arms[0].Pattern.Kind)
	assert.Equal(t, "y", ms.Arms[0].Pattern.Name)
}

func TestClimbBinaryRespectsFloor(t *testing.T) {
	p, _ := newViperParser("1 + 2")
	expr := climbBinary(&p.Base, 100, viperAddOps, p.parseUnary)
	_, isBinary := expr.(*ast.BinaryExpr)
	assert.False(t, isBinary, "a floor above every table entry's level must stop climbing immediately")
}
