package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golox/internal/lox/token"
)

func nameToken(name string) token.Token {
	return token.Token{Kind: token.Identifier, Lexeme: name, Line: 1}
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)

	value, err := env.Get(nameToken("a"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, value)
}

func TestEnvironmentGetUndefinedIsError(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get(nameToken("missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'missing'.")
}

func TestEnvironmentGetWalksEnclosingChain(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", "outer value")
	inner := NewEnvironment(outer)

	value, err := inner.Get(nameToken("a"))
	require.NoError(t, err)
	assert.Equal(t, "outer value", value)
}

func TestEnvironmentShadowing(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", "outer")
	inner := NewEnvironment(outer)
	inner.Define("a", "inner")

	value, err := inner.Get(nameToken("a"))
	require.NoError(t, err)
	assert.Equal(t, "inner", value)

	outerValue, err := outer.Get(nameToken("a"))
	require.NoError(t, err)
	assert.Equal(t, "outer", outerValue)
}

func TestEnvironmentAssignRequiresExistingBinding(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign(nameToken("a"), 1.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'a'.")
}

func TestEnvironmentAssignWalksEnclosingChain(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", 1.0)
	inner := NewEnvironment(outer)

	require.NoError(t, inner.Assign(nameToken("a"), 2.0))

	value, err := outer.Get(nameToken("a"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, value)
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	grandparent := NewEnvironment(nil)
	grandparent.Define("a", 1.0)
	parent := NewEnvironment(grandparent)
	child := NewEnvironment(parent)

	assert.Equal(t, 1.0, child.GetAt(2, "a"))

	child.AssignAt(2, nameToken("a"), 42.0)
	assert.Equal(t, 42.0, grandparent.values["a"])
}
