package iltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/source"
)

func newTestEmitter() (*diag.Emitter, *diag.Engine, *source.Manager) {
	sm := source.New()
	engine := diag.NewEngine()
	return diag.NewEmitter(engine, sm), engine, sm
}

// TestDuplicateBlockDiagnostic is §8 scenario 1: two blocks named "entry" in
// the same function surface IL0009 without aborting the parse.
func TestDuplicateBlockDiagnostic(t *testing.T) {
	src := `il 1.0
func @main() -> Void {
entry:
  ret
entry:
  ret
}
`
	em, engine, sm := newTestEmitter()
	file := sm.Register("dup.il", src)
	mod, err := Parse(file, src, em)
	require.NoError(t, err)
	require.NotNil(t, mod)
	require.Len(t, mod.Functions, 1)
	assert.Len(t, mod.Functions[0].Blocks, 1, "the second 'entry' is reported, not merged or appended")

	found := false
	for _, d := range engine.All() {
		if d.Code == CodeDuplicateBlock {
			found = true
			assert.Contains(t, d.Message, "entry")
		}
	}
	assert.True(t, found, "expected a %s diagnostic", CodeDuplicateBlock)
	assert.Equal(t, 1, engine.ErrorCount())
}

func TestWellFormedModuleParsesCleanly(t *testing.T) {
	src := `il 1.0.0
target x86_64-unknown-linux
extern @puts(String %s) -> Int32

func @main() -> Int32 {
entry:
  %0 = call @puts("hi")
  ret %0
}
`
	em, engine, sm := newTestEmitter()
	file := sm.Register("ok.il", src)
	mod, err := Parse(file, src, em)
	require.NoError(t, err)
	assert.Equal(t, 0, engine.ErrorCount())
	assert.Equal(t, "1.0.0", mod.Version)
	assert.Equal(t, "x86_64-unknown-linux", mod.TargetTriple)
	require.Len(t, mod.Externs, 1)
	assert.Equal(t, "puts", mod.Externs[0].Name)
	require.Len(t, mod.Functions, 1)
	require.Len(t, mod.Functions[0].Blocks, 1)
	assert.Equal(t, "ret", mod.Functions[0].Blocks[0].Terminator.Opcode)
}

func TestUnknownBranchTargetDiagnostic(t *testing.T) {
	src := `il 1.0
func @f() -> Void {
entry:
  br nosuchblock
}
`
	em, engine, sm := newTestEmitter()
	file := sm.Register("bad-branch.il", src)
	_, err := Parse(file, src, em)
	require.NoError(t, err)
	assertHasCode(t, engine, CodeUnknownBlockTarget)
}

func TestMalformedVersionDirectiveIsWarningNotError(t *testing.T) {
	src := "il notasemver\nfunc @f() -> Void {\nentry:\n  ret\n}\n"
	em, engine, sm := newTestEmitter()
	file := sm.Register("loose-version.il", src)
	_, err := Parse(file, src, em)
	require.NoError(t, err)
	assert.Equal(t, 0, engine.ErrorCount())
	assert.Equal(t, 1, engine.WarningCount())
}

func TestEmptyVersionDirectiveIsAnError(t *testing.T) {
	src := "il \nfunc @f() -> Void {\nentry:\n  ret\n}\n"
	em, engine, sm := newTestEmitter()
	file := sm.Register("empty-version.il", src)
	_, err := Parse(file, src, em)
	require.NoError(t, err)
	assertHasCode(t, engine, CodeMalformedHeader)
}

func assertHasCode(t *testing.T, engine *diag.Engine, code string) {
	t.Helper()
	for _, d := range engine.All() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected a diagnostic with code %s, got %+v", code, engine.All())
}
