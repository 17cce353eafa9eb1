package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golox/internal/lox/loxerr"
	"golox/internal/lox/token"
)

func TestScanEmptyInput(t *testing.T) {
	tokens, err := Scan("")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.EOF, tokens[0].Kind)
	assert.Equal(t, 1, tokens[0].Line)
}

func TestScanSingleCharacterTokens(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"(", token.LeftParen},
		{")", token.RightParen},
		{"{", token.LeftBrace},
		{"}", token.RightBrace},
		{",", token.Comma},
		{".", token.Dot},
		{"-", token.Minus},
		{"+", token.Plus},
		{";", token.Semicolon},
		{"*", token.Star},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Scan(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.kind, tokens[0].Kind)
			assert.Equal(t, tt.input, tokens[0].Lexeme)
		})
	}
}

func TestScanTwoCharacterTokens(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"!=", token.BangEqual},
		{"==", token.EqualEqual},
		{">=", token.GreaterEqual},
		{"<=", token.LessEqual},
	}
	for _, tt := range tests {
		tokens, err := Scan(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, tokens[0].Kind)
	}
}

func TestScanMaximalMunch(t *testing.T) {
	tokens, err := Scan("!")
	require.NoError(t, err)
	assert.Equal(t, token.Bang, tokens[0].Kind)
}

func TestScanLineComment(t *testing.T) {
	tokens, err := Scan("// a whole line\n1")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.Number, tokens[0].Kind)
	assert.Equal(t, 2, tokens[0].Line)
}

func TestScanStringLiteral(t *testing.T) {
	tokens, err := Scan(`"hello"`)
	require.NoError(t, err)
	assert.Equal(t, token.String, tokens[0].Kind)
	assert.Equal(t, "hello", tokens[0].Literal)
}

func TestScanMultilineString(t *testing.T) {
	tokens, err := Scan("\"a\nb\"")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", tokens[0].Literal)
	assert.Equal(t, 2, tokens[0].Line)
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := Scan(`"unterminated`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string.")
}

func TestScanNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		literal float64
	}{
		{"123", 123},
		{"123.456", 123.456},
		{"0", 0},
	}
	for _, tt := range tests {
		tokens, err := Scan(tt.input)
		require.NoError(t, err)
		assert.Equal(t, token.Number, tokens[0].Kind)
		assert.Equal(t, tt.literal, tokens[0].Literal)
	}
}

func TestScanNumberDoesNotConsumeTrailingDotWithoutDigits(t *testing.T) {
	tokens, err := Scan("123.")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, token.Number, tokens[0].Kind)
	assert.Equal(t, token.Dot, tokens[1].Kind)
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	tokens, err := Scan("foo and bar")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, token.Identifier, tokens[0].Kind)
	assert.Equal(t, token.And, tokens[1].Kind)
	assert.Equal(t, token.Identifier, tokens[2].Kind)
}

func TestScanIdentifiersAreASCIIOnly(t *testing.T) {
	// A leading non-ASCII rune is not a valid identifier start and produces
	// an "Unexpected character" error rather than being folded into a name.
	_, err := Scan("é")
	require.Error(t, err)
}

func TestScanAccumulatesMultipleErrors(t *testing.T) {
	_, err := Scan("@ # ^")
	require.Error(t, err)
	list, ok := err.(*loxerr.List)
	require.True(t, ok)
	assert.Len(t, list.Errors(), 3)
}
