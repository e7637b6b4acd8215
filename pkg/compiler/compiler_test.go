package compiler

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/vipc/internal/source"
)

func TestCompileBasicSmoke(t *testing.T) {
	src := `DIM x AS Integer = 1
DIM y AS Integer = 2
IF x < y THEN
  x = y
END IF
FOR i = 1 TO 3
  x = x + i
NEXT
`
	sm := source.New()
	res := Compile(context.Background(), DialectBasic, sm, source.NewMemReader(), "main.bas", src)
	require.True(t, res.Succeeded(), "diagnostics: %+v", res.Engine.All())
	assert.NotEmpty(t, res.RunID)
	assert.NotEmpty(t, res.Module.Decls)
}

// TestCompilePascalNonBooleanIfCondition is §8 scenario 2.
func TestCompilePascalNonBooleanIfCondition(t *testing.T) {
	src := `program Demo;
var
  x: Integer;
begin
  if 1 then
    x := 2;
end.
`
	sm := source.New()
	res := Compile(context.Background(), DialectPascal, sm, source.NewMemReader(), "demo.pas", src)
	assert.False(t, res.Succeeded())
	assertHasCode(t, res, "P1620")
}

// TestCompilePascalForLoopVariableMutation is §8 scenario 3: a for-loop
// variable is read-only inside its own body.
func TestCompilePascalForLoopVariableMutation(t *testing.T) {
	src := `program Demo;
var
  i: Integer;
begin
  for i := 1 to 10 do
    i := i + 1;
end.
`
	sm := source.New()
	res := Compile(context.Background(), DialectPascal, sm, source.NewMemReader(), "demo.pas", src)
	assert.False(t, res.Succeeded())
	assertHasCode(t, res, "P1672")
}

func TestCompileViperSmoke(t *testing.T) {
	src := `func add(a: Integer, b: Integer) -> Integer {
  return a + b;
}

func main() -> Integer {
  var x: Integer = add(1, 2);
  return x;
}
`
	sm := source.New()
	res := Compile(context.Background(), DialectViper, sm, source.NewMemReader(), "main.vip", src)
	require.True(t, res.Succeeded(), "diagnostics: %+v", res.Engine.All())
}

// TestCompileZiaImportCycleTolerated threads a real import cycle through
// the full pipeline (not just internal/importresolver in isolation),
// confirming Dialect wiring passes the right cycle policy end to end.
func TestCompileZiaImportCycleTolerated(t *testing.T) {
	reader := source.NewMemReader()
	reader.Files["b.zia"] = []byte(`func b() -> Integer { return 1; }`)
	reader.Files["a.zia"] = []byte(`import "b.zia"
func a() -> Integer { return b(); }
`)
	reader.Files["b.zia"] = []byte(`import "a.zia"
func b() -> Integer { return 1; }
`)

	sm := source.New()
	res := Compile(context.Background(), DialectZia, sm, reader, "a.zia", string(reader.Files["a.zia"]))
	require.NotNil(t, res.Module)
	assert.True(t, res.Succeeded(), "diagnostics: %+v", res.Engine.All())
}

func TestCompileILDuplicateBlockScenario(t *testing.T) {
	src := `il 1.0
func @main() -> Void {
entry:
  ret
entry:
  ret
}
`
	sm := source.New()
	res := Compile(context.Background(), DialectIL, sm, source.NewMemReader(), "dup.il", src)
	assert.False(t, res.Succeeded())
	require.NotNil(t, res.IL)
	assert.Len(t, res.IL.Functions[0].Blocks, 1)
}

func TestDialectStringRoundTrips(t *testing.T) {
	for _, d := range []Dialect{DialectBasic, DialectPascal, DialectViper, DialectZia, DialectIL} {
		assert.NotEqual(t, "unknown", d.String())
	}
	assert.Equal(t, "unknown", Dialect(99).String())
}

// TestRunIDsAreUnique guards against a regression where Compile forgets to
// mint a fresh uuid per call.
func TestRunIDsAreUnique(t *testing.T) {
	sm := source.New()
	src := "DIM x AS Integer = 1\n"
	res1 := Compile(context.Background(), DialectBasic, sm, source.NewMemReader(), "a.bas", src)
	res2 := Compile(context.Background(), DialectBasic, sm, source.NewMemReader(), "b.bas", src)
	if diff := cmp.Diff(res1.RunID, res2.RunID); diff == "" {
		t.Fatalf("expected distinct RunIDs, both were %q", res1.RunID)
	}
}

func assertHasCode(t *testing.T, res *CompilerResult, code string) {
	t.Helper()
	for _, d := range res.Engine.All() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected a diagnostic with code %s, got %+v", code, res.Engine.All())
}
