package il

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionBlockFindsByLabel(t *testing.T) {
	entry := &Block{Label: "entry"}
	loop := &Block{Label: "loop"}
	fn := &Function{Name: "main", Blocks: []*Block{entry, loop}}

	assert.Same(t, loop, fn.Block("loop"))
	assert.Nil(t, fn.Block("missing"))
}

func TestIsTerminatorRecognizesAllFourForms(t *testing.T) {
	for _, op := range []string{"br", "brcond", "switch", "ret"} {
		assert.True(t, IsTerminator(op), "%s must be a terminator", op)
	}
}

func TestIsTerminatorRejectsOrdinaryOpcodes(t *testing.T) {
	for _, op := range []string{"call", "add", "load", "store"} {
		assert.False(t, IsTerminator(op), "%s must not be a terminator", op)
	}
}
