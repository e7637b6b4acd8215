package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotentForIdenticalContent(t *testing.T) {
	sm := New()
	id1 := sm.Register("a.bas", "DIM x AS Integer\n")
	id2 := sm.Register("a.bas", "DIM x AS Integer\n")
	assert.Equal(t, id1, id2, "re-registering identical content must return the same FileID")
}

func TestRegisterAssignsNewIDOnChangedContent(t *testing.T) {
	sm := New()
	id1 := sm.Register("a.bas", "DIM x AS Integer\n")
	id2 := sm.Register("a.bas", "DIM y AS Integer\n")
	assert.NotEqual(t, id1, id2, "registering changed content for the same path must not discard the new buffer")
}

func TestPathAndTextRoundTrip(t *testing.T) {
	sm := New()
	id := sm.Register("main.vip", "func main() {}\n")
	assert.Equal(t, "main.vip", sm.Path(id))
	assert.Equal(t, "func main() {}\n", sm.Text(id))
}

func TestUnknownFileIDYieldsEmptyStrings(t *testing.T) {
	sm := New()
	assert.Equal(t, "", sm.Path(FileID(999)))
	assert.Equal(t, "", sm.Text(FileID(999)))
	assert.Equal(t, "", sm.Line(FileID(999), 1))
}

func TestLineReturnsTrimmedLines(t *testing.T) {
	sm := New()
	id := sm.Register("multi.bas", "DIM x\nDIM y\r\nDIM z")
	assert.Equal(t, "DIM x", sm.Line(id, 1))
	assert.Equal(t, "DIM y", sm.Line(id, 2), "trailing \\r must be trimmed")
	assert.Equal(t, "DIM z", sm.Line(id, 3))
	assert.Equal(t, "", sm.Line(id, 4), "out-of-range line numbers yield empty, not a panic")
	assert.Equal(t, "", sm.Line(id, 0))
}

func TestLoadRegistersThroughReader(t *testing.T) {
	sm := New()
	reader := NewMemReader()
	reader.Files["lib.vip"] = []byte("func helper() {}\n")

	id, err := sm.Load(context.Background(), reader, "lib.vip")
	require.NoError(t, err)
	assert.Equal(t, "func helper() {}\n", sm.Text(id))
}

func TestLoadMissingFileReturnsNotFoundError(t *testing.T) {
	sm := New()
	reader := NewMemReader()

	_, err := sm.Load(context.Background(), reader, "missing.vip")
	require.Error(t, err)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestInvalidLocIsNotValid(t *testing.T) {
	assert.False(t, Invalid.IsValid())
	assert.Equal(t, "<invalid>", Invalid.String())
}

func TestValidLocStringsTheTriple(t *testing.T) {
	l := Loc{File: FileID(3), Line: 10, Column: 4}
	assert.True(t, l.IsValid())
	assert.Equal(t, "3:10:4", l.String())
}
