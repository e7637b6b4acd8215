package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splanck/vipc/pkg/compiler"
)

func TestDialectValueSetAcceptsKnownDialects(t *testing.T) {
	v := &dialectValue{}
	require.NoError(t, v.Set("viper"))
	assert.Equal(t, compiler.DialectViper, v.d)
	assert.Equal(t, "viper", v.String())
}

func TestDialectValueSetRejectsUnknownDialect(t *testing.T) {
	v := &dialectValue{}
	err := v.Set("cobol")
	assert.Error(t, err)
	assert.False(t, v.set)
}

func TestDialectValueUnsetStringIsEmpty(t *testing.T) {
	v := &dialectValue{}
	assert.Equal(t, "", v.String())
}

func TestDialectValueSatisfiesPflagValue(t *testing.T) {
	var _ pflag.Value = &dialectValue{}
}

func TestDialectFlagParsesThroughFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := &dialectValue{}
	fs.Var(v, "dialect", "dialect override")

	require.NoError(t, fs.Parse([]string{"--dialect", "zia"}))
	assert.Equal(t, compiler.DialectZia, v.d)
}

func TestDialectFlagParseErrorOnUnknownValue(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := &dialectValue{}
	fs.Var(v, "dialect", "dialect override")

	assert.Error(t, fs.Parse([]string{"--dialect", "nope"}))
}
