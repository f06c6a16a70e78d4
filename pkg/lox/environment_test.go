package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(name string) Token {
	return Token{Type: IDENTIFIER, Lexeme: name, Line: 1}
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)

	v, err := env.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEnvironmentRedefineOverwrites(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)
	env.Define("a", 2.0)

	v, err := env.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestEnvironmentGetUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get(tok("missing"))
	require.Error(t, err)
	var rtErr *RuntimeError
	require.ErrorAs(t, err, &rtErr)
}

func TestEnvironmentShadowingWalksUpward(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", "outer")
	inner := NewEnvironment(outer)

	v, err := inner.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "outer", v)

	inner.Define("a", "inner")
	v, err = inner.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "inner", v)

	// outer frame is untouched by the shadowing define
	v, err = outer.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "outer", v)
}

func TestEnvironmentAssignWalksUpToDefiningFrame(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", 1.0)
	inner := NewEnvironment(outer)

	require.NoError(t, inner.Assign(tok("a"), 2.0))

	v, err := outer.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestEnvironmentAssignUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign(tok("missing"), 1.0)
	require.Error(t, err)
}

func TestEnvironmentGetAtAssignAtBypassShadowing(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", "global")
	middle := NewEnvironment(global)
	middle.Define("a", "middle")
	inner := NewEnvironment(middle)

	assert.Equal(t, "middle", inner.GetAt(1, "a"))
	assert.Equal(t, "global", inner.GetAt(2, "a"))

	inner.AssignAt(2, tok("a"), "patched")
	v, err := global.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "patched", v)

	// middle frame untouched
	v, err = middle.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "middle", v)
}
