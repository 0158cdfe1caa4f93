package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/caseprose/lexer"
	"github.com/sqlc-dev/caseprose/token"
)

func TestTokenize(t *testing.T) {
	items := lexer.Tokenize(strings.NewReader("CASE WHEN a.b >= 1.5 THEN 'it''s' ELSE \"Col\" END -- done"))

	want := []struct {
		tok token.Token
		val string
	}{
		{token.CASE, "CASE"},
		{token.WHEN, "WHEN"},
		{token.IDENT, "a"},
		{token.DOT, "."},
		{token.IDENT, "b"},
		{token.GTE, ">="},
		{token.NUMBER, "1.5"},
		{token.THEN, "THEN"},
		{token.STRING, "it's"},
		{token.ELSE, "ELSE"},
		{token.IDENT, "Col"},
		{token.END, "END"},
		{token.COMMENT, "-- done"},
		{token.EOF, ""},
	}

	require.Len(t, items, len(want))
	for i, w := range want {
		assert.Equal(t, w.tok, items[i].Token, "token %d", i)
		assert.Equal(t, w.val, items[i].Value, "value %d", i)
	}
	assert.True(t, items[10].Quoted)
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		tok   token.Token
	}{
		{"<>", token.NEQ},
		{"!=", token.NEQ},
		{"<=>", token.NULL_SAFE_EQ},
		{"<=", token.LTE},
		{"==", token.EQ},
		{"||", token.CONCAT},
		{"::", token.COLONCOLON},
		{"%", token.PERCENT},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			items := lexer.Tokenize(strings.NewReader(tc.input))
			require.Len(t, items, 2)
			assert.Equal(t, tc.tok, items[0].Token)
			assert.Equal(t, tc.input, items[0].Value)
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		tok   token.Token
		val   string
	}{
		{"42", token.NUMBER, "42"},
		{"1_000", token.NUMBER, "1000"},
		{"0xFF", token.NUMBER, "0xFF"},
		{".5", token.NUMBER, ".5"},
		{"1e10", token.NUMBER, "1e10"},
		{"02422_data", token.IDENT, "02422_data"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			items := lexer.Tokenize(strings.NewReader(tc.input))
			assert.Equal(t, tc.tok, items[0].Token)
			assert.Equal(t, tc.val, items[0].Value)
		})
	}
}

func TestStringEscapes(t *testing.T) {
	items := lexer.Tokenize(strings.NewReader(`'a\'b\\c\%d'`))
	require.Equal(t, token.STRING, items[0].Token)
	assert.Equal(t, `a'b\c\%d`, items[0].Value)
}

func TestNestedBlockComment(t *testing.T) {
	items := lexer.Tokenize(strings.NewReader("/* outer /* inner */ still */ x"))
	require.Len(t, items, 3)
	assert.Equal(t, token.COMMENT, items[0].Token)
	assert.Equal(t, token.IDENT, items[1].Token)
	assert.Equal(t, "x", items[1].Value)
}

func TestPositions(t *testing.T) {
	items := lexer.Tokenize(strings.NewReader("a\n  bc"))
	require.Len(t, items, 3)
	assert.Equal(t, token.Position{Offset: 0, Line: 1, Column: 1}, items[0].Pos)
	assert.Equal(t, token.Position{Offset: 4, Line: 2, Column: 3}, items[1].Pos)
}
