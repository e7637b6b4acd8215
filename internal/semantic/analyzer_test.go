package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/lexer"
	"github.com/splanck/vipc/internal/parser"
	"github.com/splanck/vipc/internal/runtimereg"
	"github.com/splanck/vipc/internal/source"
	"github.com/splanck/vipc/internal/types"
)

func analyzeBasic(t *testing.T, src string) *diag.Engine {
	t.Helper()
	engine := diag.NewEngine()
	em := diag.NewEmitter(engine, source.New())
	lx := lexer.New(lexer.BasicConfig(), source.FileID(1), src, em)
	module := parser.NewBasic(lx, em).ParseModule()
	New(DialectBasic, em, types.NewTable(), runtimereg.Load()).Analyze(module)
	return engine
}

func analyzePascal(t *testing.T, src string) *diag.Engine {
	t.Helper()
	engine := diag.NewEngine()
	em := diag.NewEmitter(engine, source.New())
	lx := lexer.New(lexer.PascalConfig(), source.FileID(1), src, em)
	module := parser.NewPascal(lx, em).ParseModule()
	New(DialectPascal, em, types.NewTable(), runtimereg.Load()).Analyze(module)
	return engine
}

func analyzeViper(t *testing.T, src string) *diag.Engine {
	t.Helper()
	engine := diag.NewEngine()
	em := diag.NewEmitter(engine, source.New())
	lx := lexer.New(lexer.ViperConfig(), source.FileID(1), src, em)
	module := parser.NewViper(lx, em).ParseModule()
	New(DialectViper, em, types.NewTable(), runtimereg.Load()).Analyze(module)
	return engine
}

func TestAnalyzeWellTypedBasicProgram(t *testing.T) {
	engine := analyzeBasic(t, "DIM x AS Integer = 1\nDIM y AS Integer = 2\nIF x < y THEN\n  x = y\nEND IF\n")
	assert.Equal(t, 0, engine.ErrorCount(), "diagnostics: %+v", engine.All())
}

func TestAnalyzeUndefinedNameIsAnError(t *testing.T) {
	engine := analyzeBasic(t, "DIM x AS Integer = y\n")
	assert.Greater(t, engine.ErrorCount(), 0)
}

// TestAnalyzePascalNonBooleanIfCondition is §8 scenario 2.
func TestAnalyzePascalNonBooleanIfCondition(t *testing.T) {
	src := `program Demo;
var
  x: Integer;
begin
  if 1 then
    x := 2;
end.
`
	engine := analyzePascal(t, src)
	require.Greater(t, engine.ErrorCount(), 0)
	assertHasCode(t, engine, "P1620")
}

// TestAnalyzePascalForLoopVariableIsReadOnly is §8 scenario 3.
func TestAnalyzePascalForLoopVariableIsReadOnly(t *testing.T) {
	src := `program Demo;
var
  i: Integer;
begin
  for i := 1 to 10 do
    i := i + 1;
end.
`
	engine := analyzePascal(t, src)
	require.Greater(t, engine.ErrorCount(), 0)
	assertHasCode(t, engine, "P1672")
}

func TestAnalyzeViperEntityConstruction(t *testing.T) {
	src := `entity Widget {
  name: String;
}

func main() -> Void {
  var w: Widget = new Widget();
}
`
	engine := analyzeViper(t, src)
	assert.Equal(t, 0, engine.ErrorCount(), "diagnostics: %+v", engine.All())
}

func TestPolicyForDistinguishesDialectPrefixes(t *testing.T) {
	assert.Equal(t, "B", PolicyFor(DialectBasic).ErrorCodePrefix)
	assert.Equal(t, "P", PolicyFor(DialectPascal).ErrorCodePrefix)
	assert.Equal(t, "V", PolicyFor(DialectViper).ErrorCodePrefix)
	assert.Equal(t, "Z", PolicyFor(DialectZia).ErrorCodePrefix)
}

func TestPolicyCaseFoldMatchesDialectCaseSensitivity(t *testing.T) {
	assert.True(t, PolicyFor(DialectBasic).CaseFold)
	assert.True(t, PolicyFor(DialectPascal).CaseFold)
	assert.False(t, PolicyFor(DialectViper).CaseFold)
	assert.False(t, PolicyFor(DialectZia).CaseFold)
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
