package parser_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/parser"
)

func parseExpr(t *testing.T, sql string) ast.Expression {
	t.Helper()
	expr, err := parser.ParseExpression(context.Background(), strings.NewReader(sql))
	require.NoError(t, err)
	return expr
}

func TestParseExpressionAlias(t *testing.T) {
	expr := parseExpr(t, "CASE WHEN age >= 18 THEN 'adult' ELSE 'minor' END AS category")

	aliased, ok := expr.(*ast.AliasedExpr)
	require.True(t, ok, "expected *ast.AliasedExpr, got %T", expr)
	assert.Equal(t, "category", aliased.Alias)

	c, ok := aliased.Expr.(*ast.CaseExpr)
	require.True(t, ok, "expected *ast.CaseExpr, got %T", aliased.Expr)
	require.Len(t, c.Whens, 1)
	assert.NotNil(t, c.Else)

	cond, ok := c.Whens[0].Condition.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ">=", cond.Op)
}

func TestParseExpressionImplicitAlias(t *testing.T) {
	expr := parseExpr(t, "CASE WHEN a THEN 1 END flag;")
	aliased, ok := expr.(*ast.AliasedExpr)
	require.True(t, ok, "expected *ast.AliasedExpr, got %T", expr)
	assert.Equal(t, "flag", aliased.Alias)
}

func TestParseSimpleCase(t *testing.T) {
	expr := parseExpr(t, "CASE status WHEN 'A' THEN 'active' WHEN 'I' THEN 'inactive' END")
	c, ok := expr.(*ast.CaseExpr)
	require.True(t, ok)
	require.NotNil(t, c.Operand)
	assert.Equal(t, "status", c.Operand.(*ast.Identifier).Name())
	assert.Len(t, c.Whens, 2)
	assert.Nil(t, c.Else)
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"a = 1 AND b = 2 OR c = 3", "a = 1 AND b = 2 OR c = 3"},
		{"a = 1 AND (b = 2 OR c = 3)", "a = 1 AND (b = 2 OR c = 3)"},
		{"NOT name LIKE '%smith%'", "NOT name LIKE '%smith%'"},
		{"x NOT IN (1, 2)", "x NOT IN (1, 2)"},
		{"x IS NOT NULL", "x IS NOT NULL"},
		{"price BETWEEN 1 AND 10 AND qty > 0", "price BETWEEN 1 AND 10 AND qty > 0"},
		{"a + b * c", "a + b * c"},
		{"amount::numeric(10, 2)", "amount::numeric(10, 2)"},
		{"TRIM(TRAILING FROM name)", "trimRight(name)"},
		{"\"Order Total\" > 1.50", "\"Order Total\" > 1.50"},
		{"x <> 0x1F", "x <> 0x1F"},
	}

	for _, tc := range tests {
		t.Run(tc.sql, func(t *testing.T) {
			expr := parseExpr(t, tc.sql)
			assert.Equal(t, tc.want, parser.FormatExpression(expr))
		})
	}
}

func TestParseAndIsLeftDeep(t *testing.T) {
	expr := parseExpr(t, "a = 1 AND b = 2 AND c = 3")
	top, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "AND", top.Op)
	left, ok := top.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "AND", left.Op)
	assert.False(t, left.Parenthesized)
}

func TestParseNotWrapsComparison(t *testing.T) {
	expr := parseExpr(t, "NOT a = 1 AND b = 2")
	top, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok, "expected AND at the top, got %T", expr)
	assert.Equal(t, "AND", top.Op)
	not, ok := top.Left.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, "NOT", not.Op)
	assert.IsType(t, &ast.BinaryExpr{}, not.Operand)
}

func TestParseInSubquery(t *testing.T) {
	expr := parseExpr(t, "id IN (SELECT user_id FROM bans)")
	in, ok := expr.(*ast.InExpr)
	require.True(t, ok)
	assert.NotNil(t, in.Query)
	assert.Empty(t, in.List)
}

func TestParseWindowFunction(t *testing.T) {
	expr := parseExpr(t, "rank() OVER (PARTITION BY dept ORDER BY salary DESC ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)")
	fn, ok := expr.(*ast.FunctionCall)
	require.True(t, ok)
	require.NotNil(t, fn.Over)
	assert.Len(t, fn.Over.PartitionBy, 1)
	require.Len(t, fn.Over.OrderBy, 1)
	assert.True(t, fn.Over.OrderBy[0].Descending)
	assert.Equal(t, "ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW", fn.Over.Frame)
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"missing END", "CASE WHEN a THEN 1"},
		{"missing THEN", "CASE WHEN a 1 END"},
		{"no WHEN", "CASE ELSE 1 END"},
		{"trailing tokens", "a = 1 )"},
		{"dangling operator", "a ="},
		{"empty", ""},
		{"bad IS", "a IS 3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.ParseExpression(context.Background(), strings.NewReader(tc.sql))
			require.Error(t, err)
			var perr *parser.ParseError
			assert.True(t, errors.As(err, &perr), "expected *parser.ParseError, got %T", err)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.ParseExpression(context.Background(), strings.NewReader("CASE WHEN a\nTHEN 1 ELSE END"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseMaxDepth(t *testing.T) {
	deep := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)

	_, err := parser.ParseExpression(context.Background(), strings.NewReader(deep))
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrTooDeep))

	_, err = parser.ParseExpression(context.Background(), strings.NewReader(deep), parser.WithMaxDepth(1000))
	assert.NoError(t, err)
}

func TestParseSource(t *testing.T) {
	ctx := context.Background()

	nodes, err := parser.ParseSource(ctx, strings.NewReader("SELECT CASE WHEN a THEN 1 END AS x FROM t"))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.IsType(t, &ast.SelectWithUnionQuery{}, nodes[0])

	nodes, err = parser.ParseSource(ctx, strings.NewReader("CASE WHEN a THEN 1 END AS x, CASE WHEN b THEN 2 END AS y"))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.IsType(t, &ast.AliasedExpr{}, nodes[0])

	_, err = parser.ParseSource(ctx, strings.NewReader("   "))
	assert.Error(t, err)
}
