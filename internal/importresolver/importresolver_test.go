package importresolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/source"
)

// fakeModules maps a normalized path to the ModuleDecl that path's source
// would parse into, standing in for a real dialect parser in these tests.
type fakeModules map[string]*ast.ModuleDecl

func (f fakeModules) parseFunc() ParseFunc {
	return func(file source.FileID, path string, src string) (*ast.ModuleDecl, error) {
		if m, ok := f[path]; ok {
			return m, nil
		}
		return ast.NewModuleDecl(source.Invalid, path, nil), nil
	}
}

func moduleWithImport(name, importPath string, own ...ast.Decl) *ast.ModuleDecl {
	decls := append([]ast.Decl{ast.NewImportDecl(source.Invalid, importPath, "")}, own...)
	return ast.NewModuleDecl(source.Invalid, name, decls)
}

func TestResolveMergesImportedDeclsBeforeOwn(t *testing.T) {
	sm := source.New()
	reader := source.NewMemReader()
	reader.Files["lib.vip"] = []byte("// lib")
	reader.Files["main.vip"] = []byte("// main")

	libFn := ast.NewFunctionDecl(source.Invalid, "helper", nil, nil, ast.NewBlockStmt(source.Invalid, nil))
	mainFn := ast.NewFunctionDecl(source.Invalid, "main", nil, nil, ast.NewBlockStmt(source.Invalid, nil))

	mods := fakeModules{
		"lib.vip":  ast.NewModuleDecl(source.Invalid, "lib", []ast.Decl{libFn}),
		"main.vip": moduleWithImport("main", "lib.vip", mainFn),
	}

	resolver := New(DialectViper, reader, sm, ".vip", mods.parseFunc())
	resolved, err := resolver.Resolve(context.Background(), "main.vip", mods["main.vip"])
	require.NoError(t, err)
	require.Len(t, resolved.Decls, 2)
	assert.Same(t, libFn, resolved.Decls[0], "imported decls are prepended ahead of the importer's own")
	assert.Same(t, mainFn, resolved.Decls[1])
}

func TestZiaToleratesImportCycles(t *testing.T) {
	sm := source.New()
	reader := source.NewMemReader()
	reader.Files["a.zia"] = []byte("// a")
	reader.Files["b.zia"] = []byte("// b")

	mods := fakeModules{}
	mods["a.zia"] = moduleWithImport("a", "b.zia")
	mods["b.zia"] = moduleWithImport("b", "a.zia")

	resolver := New(DialectZia, reader, sm, ".zia", mods.parseFunc())
	_, err := resolver.Resolve(context.Background(), "a.zia", mods["a.zia"])
	assert.NoError(t, err, "Zia re-entry into an in-progress import is skipped, not a hard error")
}

func TestViperTreatsImportCyclesAsFatal(t *testing.T) {
	sm := source.New()
	reader := source.NewMemReader()
	reader.Files["a.vip"] = []byte("// a")
	reader.Files["b.vip"] = []byte("// b")

	mods := fakeModules{}
	mods["a.vip"] = moduleWithImport("a", "b.vip")
	mods["b.vip"] = moduleWithImport("b", "a.vip")

	resolver := New(DialectViper, reader, sm, ".vip", mods.parseFunc())
	_, err := resolver.Resolve(context.Background(), "a.vip", mods["a.vip"])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import cycle detected")
}

func TestImportDepthLimitExceeded(t *testing.T) {
	sm := source.New()
	reader := source.NewMemReader()
	mods := fakeModules{}

	const chainLen = 60
	for i := 0; i < chainLen; i++ {
		name := depthChainPath(i)
		next := depthChainPath(i + 1)
		reader.Files[name] = []byte("// chain")
		mods[name] = moduleWithImport(name, next)
	}
	last := depthChainPath(chainLen)
	reader.Files[last] = []byte("// chain end")
	mods[last] = ast.NewModuleDecl(source.Invalid, last, nil)

	resolver := New(DialectViper, reader, sm, ".vip", mods.parseFunc())
	_, err := resolver.Resolve(context.Background(), depthChainPath(0), mods[depthChainPath(0)])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depth limit")
}

func depthChainPath(i int) string {
	return fmt.Sprintf("chain%02d.vip", i)
}
