package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForCacheKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "CASE  WHEN\ta > 1\n THEN 1 END", "CASE WHEN a > 1 THEN 1 END"},
		{"trailing semicolon", "CASE WHEN a THEN 1 END ;\n", "CASE WHEN a THEN 1 END"},
		{"line comment", "CASE WHEN a -- why\nTHEN 1 END", "CASE WHEN a THEN 1 END"},
		{"block comment separates tokens", "a/* x */b", "a b"},
		{"nested block comment", "a /* x /* y */ z */ b", "a b"},
		{"comma spacing", "x IN (1,  2, 3)", "x IN (1,2,3)"},
		{"backslash quote", `x = 'it\'s'`, `x = 'it''s'`},
		{"string whitespace kept", "x = 'a  b'", "x = 'a  b'"},
		{"comment marker in string", "x = '--not a comment'", "x = '--not a comment'"},
		{"comma in string", "x IN ('a, b', 'c')", "x IN ('a, b','c')"},
		{"quoted identifier kept", `"Order  Total" > 1`, `"Order  Total" > 1`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ForCacheKey(tc.in))
		})
	}
}

func TestForCacheKeyKeepsSignificantText(t *testing.T) {
	assert.NotEqual(t, ForCacheKey("CASE WHEN a THEN 1 END"), ForCacheKey("CASE WHEN A THEN 1 END"))
	assert.NotEqual(t, ForCacheKey("x = 'a'"), ForCacheKey("x = 'A'"))
	assert.NotEqual(t, ForCacheKey("x = 1"), ForCacheKey("x = 01"))
}

func TestWhitespaceUnterminatedString(t *testing.T) {
	assert.Equal(t, "x = 'open  ended", Whitespace("  x  =  'open  ended"))
}

func TestEscapesInStringsLeavesOtherEscapes(t *testing.T) {
	assert.Equal(t, `'a\\b'`, EscapesInStrings(`'a\\b'`))
	assert.Equal(t, `'a\%b'`, EscapesInStrings(`'a\%b'`))
}
