package explain_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/caseprose/internal/explain"
	"github.com/sqlc-dev/caseprose/parser"
)

func TestExpression(t *testing.T) {
	expr, err := parser.ParseExpression(context.Background(), strings.NewReader("CASE WHEN a = 1 THEN 'one' END AS x"))
	require.NoError(t, err)

	want := strings.Join([]string{
		"Function multiIf (alias x) (children 1)",
		" ExpressionList (children 3)",
		"  Function equals (children 1)",
		"   ExpressionList (children 2)",
		"    Identifier a",
		"    Literal UInt64_1",
		"  Literal 'one'",
		"  Literal NULL",
		"",
	}, "\n")
	assert.Equal(t, want, explain.Expression(expr))
}

func TestSimpleCase(t *testing.T) {
	expr, err := parser.ParseExpression(context.Background(), strings.NewReader("CASE s WHEN 'A' THEN 1 ELSE 0 END"))
	require.NoError(t, err)

	out := explain.Expression(expr)
	assert.True(t, strings.HasPrefix(out, "Function caseWithExpression (children 1)\n ExpressionList (children 4)\n"), out)
}

func TestStatement(t *testing.T) {
	stmts, err := parser.Parse(context.Background(), strings.NewReader("SELECT CASE WHEN a THEN 1 END AS flag FROM t"))
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	out := explain.Explain(stmts[0])
	assert.True(t, strings.HasPrefix(out, "SelectWithUnionQuery (children 1)\n"), out)
	assert.Contains(t, out, "Function multiIf (alias flag)")
	assert.Contains(t, out, "Identifier t")
}
