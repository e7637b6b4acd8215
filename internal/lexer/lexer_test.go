package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/source"
)

func newTestLexer(cfg Config, src string) (*Lexer, *diag.Engine) {
	engine := diag.NewEngine()
	em := diag.NewEmitter(engine, source.New())
	return New(cfg, source.FileID(1), src, em), engine
}

func collectKinds(t *testing.T, lx *Lexer) []Kind {
	t.Helper()
	var kinds []Kind
	for {
		tok := lx.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == EOF {
			return kinds
		}
	}
}

func TestBasicNumericBases(t *testing.T) {
	lx, engine := newTestLexer(BasicConfig(), `10 $FF 0xFF 0b1010`)

	var lits []int64
	for {
		tok := lx.Next()
		if tok.Kind == EOF {
			break
		}
		require.Equal(t, IntLit, tok.Kind)
		lits = append(lits, tok.IntValue)
	}
	assert.Equal(t, []int64{10, 255, 255, 10}, lits)
	assert.Equal(t, 0, engine.ErrorCount())
}

func TestBasicLineAndBlockComments(t *testing.T) {
	lx, engine := newTestLexer(BasicConfig(), "dim x // trailing comment\n/* skip this */dim y")
	kinds := collectKinds(t, lx)
	assert.Equal(t, []Kind{Keyword, Ident, Newline, Keyword, Ident, EOF}, kinds)
	assert.Equal(t, 0, engine.ErrorCount())
}

func TestBasicCaseFoldsKeywords(t *testing.T) {
	lx, _ := newTestLexer(BasicConfig(), "DIM")
	tok := lx.Next()
	assert.Equal(t, Keyword, tok.Kind)
	assert.Equal(t, "dim", tok.Canonical)
}

func TestViperIsCaseSensitive(t *testing.T) {
	lx, _ := newTestLexer(ViperConfig(), "Func")
	tok := lx.Next()
	assert.Equal(t, Ident, tok.Kind, "Viper keywords are lowercase only; 'Func' must not fold to the 'func' keyword")
}

func TestViperStringInterpolation(t *testing.T) {
	lx, engine := newTestLexer(ViperConfig(), `"hello ${name}!"`)

	start := lx.Next()
	require.Equal(t, StringStart, start.Kind)
	assert.Equal(t, "hello ", start.StrValue)

	ident := lx.Next()
	require.Equal(t, Ident, ident.Kind)
	assert.Equal(t, "name", ident.Text)

	end := lx.Next()
	require.Equal(t, StringEnd, end.Kind)
	assert.Equal(t, "!", end.StrValue)

	assert.Equal(t, 0, engine.ErrorCount())
}

func TestViperUnterminatedStringIsAnError(t *testing.T) {
	lx, engine := newTestLexer(ViperConfig(), `"unterminated`)
	tok := lx.Next()
	assert.True(t, tok.Malformed)
	assert.Equal(t, 1, engine.ErrorCount())
}

func TestPascalNestedBlockCommentsAreNotNested(t *testing.T) {
	// Pascal's { } comments don't nest; the first close ends the comment.
	lx, engine := newTestLexer(PascalConfig(), "{ outer { inner } after }")
	kinds := collectKinds(t, lx)
	// "after" and the trailing "}" are ordinary tokens once the first "}" closes the comment.
	assert.Contains(t, kinds, Ident)
	assert.Equal(t, 0, engine.ErrorCount())
}

func TestZiaSharesViperLexicalConfigButOwnCodePrefix(t *testing.T) {
	cfg := ZiaConfig()
	assert.Equal(t, "Z", cfg.CodePrefix)
	assert.True(t, cfg.Interpolation)
	assert.False(t, cfg.CaseFold)
}
