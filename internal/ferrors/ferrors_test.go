package ferrors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splanck/vipc/internal/source"
)

func TestNewErrorWithoutLocOmitsPosition(t *testing.T) {
	e := New(source.Invalid, "import depth limit exceeded")
	assert.Equal(t, "fatal: import depth limit exceeded\n", e.Error())
}

func TestNewfFormatsMessage(t *testing.T) {
	e := Newf(source.Invalid, "import cycle through %q", "a.vip")
	assert.Equal(t, `fatal: import cycle through "a.vip"`+"\n", e.Error())
}

func TestWithChainAppendsTraceEntries(t *testing.T) {
	e := New(source.Invalid, "import cycle detected").WithChain([]string{"a.vip", "b.vip", "a.vip"})
	out := e.Error()
	assert.Contains(t, out, "[0] a.vip")
	assert.Contains(t, out, "[1] b.vip")
	assert.Contains(t, out, "[2] a.vip")
}

func TestWithChainDoesNotMutateOriginal(t *testing.T) {
	orig := New(source.Invalid, "boom")
	chained := orig.WithChain([]string{"x"})
	assert.Empty(t, orig.Chain)
	assert.Len(t, chained.Chain, 1)
}

func TestFormatIncludesSourceLineWhenLocValid(t *testing.T) {
	sm := source.New()
	id := sm.Register("a.vip", "import \"missing.vip\";\n")
	e := New(source.Loc{File: id, Line: 1, Column: 1}, "module not found")
	out := e.Format(sm)
	assert.Contains(t, out, "a.vip:1:1: module not found")
	assert.Contains(t, out, `import "missing.vip";`)
}

func TestFormatWithNilManagerFallsBackToBareMessage(t *testing.T) {
	e := New(source.Loc{File: source.FileID(1), Line: 1, Column: 1}, "module not found")
	out := e.Format(nil)
	assert.Equal(t, "fatal: module not found\n", out)
}
