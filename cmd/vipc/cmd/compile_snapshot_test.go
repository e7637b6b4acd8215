package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/splanck/vipc/internal/source"
	"github.com/splanck/vipc/pkg/compiler"
)

// TestDisassembleModuleSnapshot locks the textual rendering produced by
// --disassemble for a well-formed IL module, so a change to the rendering
// format is caught even though nothing else in the pipeline asserts its
// exact shape.
func TestDisassembleModuleSnapshot(t *testing.T) {
	src := `il 1.0.0
target x86_64-unknown-linux
extern @puts(String %s) -> Int32

func @main() -> Int32 {
entry:
  %0 = call @puts("hi")
  ret %0
}
`
	sm := source.New()
	res := compiler.Compile(context.Background(), compiler.DialectIL, sm, source.NewMemReader(), "snap.il", src)
	require.True(t, res.Succeeded())
	require.NotNil(t, res.IL)

	snaps.MatchSnapshot(t, "disassembled_il", disassembleModule(res.IL))
}

// TestDiagnosticRenderSnapshot locks the rendered diagnostic text (path,
// line, column, severity, code, caret) for the §8 scenario 2 Pascal case.
func TestDiagnosticRenderSnapshot(t *testing.T) {
	src := `program Demo;
var
  x: Integer;
begin
  if 1 then
    x := 2;
end.
`
	sm := source.New()
	res := compiler.Compile(context.Background(), compiler.DialectPascal, sm, source.NewMemReader(), "demo.pas", src)
	require.False(t, res.Succeeded())

	var buf bytes.Buffer
	res.Engine.PrintAll(&buf, sm, false)
	snaps.MatchSnapshot(t, "pascal_non_boolean_if_diagnostic", buf.String())
}
