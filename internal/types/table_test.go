package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterningIdentityForListOf(t *testing.T) {
	tbl := NewTable()
	a := tbl.ListOf(tbl.TInteger)
	b := tbl.ListOf(tbl.TInteger)
	assert.Same(t, a, b, "two requests for List<Integer> must return the same pointer")
	assert.True(t, Equal(a, b))
}

func TestInterningDistinguishesDistinctElemTypes(t *testing.T) {
	tbl := NewTable()
	ints := tbl.ListOf(tbl.TInteger)
	strs := tbl.ListOf(tbl.TString)
	assert.NotSame(t, ints, strs)
	assert.False(t, Equal(ints, strs))
}

func TestNamedTypeInterningByFQN(t *testing.T) {
	tbl := NewTable()
	a := tbl.Named("Acme.Widget")
	b := tbl.Named("Acme.Widget")
	assert.Same(t, a, b)
}

func TestOptionalAndFuncInterning(t *testing.T) {
	tbl := NewTable()
	optA := tbl.Optional(tbl.TString)
	optB := tbl.Optional(tbl.TString)
	assert.Same(t, optA, optB)

	fnA := tbl.Func([]TypeRef{tbl.TInteger, tbl.TInteger}, tbl.TBoolean)
	fnB := tbl.Func([]TypeRef{tbl.TInteger, tbl.TInteger}, tbl.TBoolean)
	assert.Same(t, fnA, fnB)
}

func TestMapAndTupleInterning(t *testing.T) {
	tbl := NewTable()
	m1 := tbl.MapOf(tbl.TString, tbl.TInteger)
	m2 := tbl.MapOf(tbl.TString, tbl.TInteger)
	assert.Same(t, m1, m2)

	tup1 := tbl.TupleOf([]TypeRef{tbl.TInteger, tbl.TString})
	tup2 := tbl.TupleOf([]TypeRef{tbl.TInteger, tbl.TString})
	assert.Same(t, tup1, tup2)
}

func TestGenericInterningByNameAndArgs(t *testing.T) {
	tbl := NewTable()
	g1 := tbl.Generic("Box", []TypeRef{tbl.TInteger})
	g2 := tbl.Generic("Box", []TypeRef{tbl.TInteger})
	assert.Same(t, g1, g2)

	g3 := tbl.Generic("Box", []TypeRef{tbl.TString})
	assert.NotSame(t, g1, g3)
}

func TestIsNumeric(t *testing.T) {
	tbl := NewTable()
	assert.True(t, tbl.TInteger.IsNumeric())
	assert.True(t, tbl.TNumber.IsNumeric())
	assert.False(t, tbl.TString.IsNumeric())
	assert.False(t, tbl.TBoolean.IsNumeric())
}

func TestMarkEnumAndIsOrdinal(t *testing.T) {
	tbl := NewTable()
	color := tbl.Named("Color")
	assert.False(t, tbl.IsEnum(color))

	tbl.MarkEnum(color)
	assert.True(t, tbl.IsEnum(color))

	enumSet := map[*Type]bool{color: true}
	assert.True(t, IsOrdinal(color, enumSet))
	assert.True(t, IsOrdinal(tbl.TInteger, enumSet))
	assert.False(t, IsOrdinal(tbl.TString, enumSet))
}

func TestTypeStringRendersEachKind(t *testing.T) {
	tbl := NewTable()
	assert.Equal(t, "Integer", tbl.TInteger.String())
	assert.Equal(t, "String?", tbl.Optional(tbl.TString).String())
	assert.Equal(t, "List<Integer>", tbl.ListOf(tbl.TInteger).String())
	assert.Equal(t, "Map<String, Integer>", tbl.MapOf(tbl.TString, tbl.TInteger).String())
	assert.Equal(t, "(Integer) -> Boolean", tbl.Func([]TypeRef{tbl.TInteger}, tbl.TBoolean).String())
}
