package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qirc/report"
)

func TestIsBitcode(t *testing.T) {
	assert.True(t, IsBitcode([]byte{'B', 'C', 0xc0, 0xde, 0x00}))
	assert.False(t, IsBitcode([]byte("; ModuleID = 'test'")))
	assert.False(t, IsBitcode(nil))
	assert.False(t, IsBitcode([]byte{'B', 'C'}))
}

func TestLoadText(t *testing.T) {
	const src = `
define void @f() {
entry:
  ret void
}
`
	mod, diags := Load("test.ll", []byte(src))
	require.Nil(t, diags)
	require.Len(t, mod.Funcs, 1)
	assert.Equal(t, "f", mod.Funcs[0].Name())
}

func TestLoadBadText(t *testing.T) {
	mod, diags := Load("bad.ll", []byte("definitely not IR"))
	assert.Nil(t, mod)
	require.Len(t, diags, 1)
	assert.Equal(t, report.BitcodeParseError, diags[0].Kind)
}

func TestEmitTextRoundTrip(t *testing.T) {
	const src = `
define void @f() {
entry:
  ret void
}
`
	mod, diags := Load("test.ll", []byte(src))
	require.Nil(t, diags)

	text := EmitText(mod)
	assert.True(t, strings.Contains(text, "define void @f()"))

	// Loading the emitted text again produces the same text: the loader
	// and emitter are inverses modulo printer normalization.
	mod2, diags := Load("test2.ll", []byte(text))
	require.Nil(t, diags)
	assert.Equal(t, text, EmitText(mod2))
}
