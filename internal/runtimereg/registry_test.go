package runtimereg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesEmbeddedRegistry(t *testing.T) {
	reg := Load()
	require.NotNil(t, reg)
	assert.NotEmpty(t, reg.Functions())
}

func TestLookupFunctionKnownEntry(t *testing.T) {
	reg := Load()
	fn, ok := reg.LookupFunction("Viper.Console.PrintStr")
	require.True(t, ok)
	assert.Equal(t, "Viper.Console.PrintStr", fn.Name)
}

func TestLookupFunctionUnknownEntry(t *testing.T) {
	reg := Load()
	_, ok := reg.LookupFunction("Viper.Console.Print")
	assert.False(t, ok, "bare 'Print' is not a registered entry; only the namespaced PrintI64/PrintF64/PrintStr are")
}

func TestLookupGetterKnownEntry(t *testing.T) {
	reg := Load()
	g, ok := reg.LookupGetter("Viper.Math.Pi")
	require.True(t, ok)
	assert.Equal(t, "Viper.Math.Pi", g.Name)
}

func TestFunctionsPreservesDeclarationOrder(t *testing.T) {
	reg := Load()
	names := reg.Functions()
	require.NotEmpty(t, names)
	assert.Equal(t, "Viper.Terminal.Say", names[0])
}

func TestNamespaceOfAndMemberOf(t *testing.T) {
	assert.Equal(t, "Viper.Math", NamespaceOf("Viper.Math.Sqrt"))
	assert.Equal(t, "Sqrt", MemberOf("Viper.Math.Sqrt"))
	assert.Equal(t, "", NamespaceOf("Sqrt"))
	assert.Equal(t, "Sqrt", MemberOf("Sqrt"))
}
