package ast_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/parser"
)

func TestInspectOrder(t *testing.T) {
	stmts, err := parser.Parse(context.Background(), strings.NewReader(
		"WITH s AS (SELECT a FROM t) SELECT CASE WHEN b > 1 THEN c END AS x FROM s WHERE d IN (1, 2)"))
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	var idents []string
	ast.Inspect(stmts[0], func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok {
			idents = append(idents, id.Name())
		}
		return true
	})
	assert.Equal(t, []string{"a", "t", "b", "c", "s", "d"}, idents)
}

func TestInspectSkipsChildren(t *testing.T) {
	expr, err := parser.ParseExpression(context.Background(), strings.NewReader(
		"CASE WHEN a THEN CASE WHEN b THEN 1 END END"))
	require.NoError(t, err)

	var cases int
	ast.Inspect(expr, func(n ast.Node) bool {
		if _, ok := n.(*ast.CaseExpr); ok {
			cases++
			return false
		}
		return true
	})
	assert.Equal(t, 1, cases)
}

func TestInspectNil(t *testing.T) {
	called := false
	ast.Inspect(nil, func(ast.Node) bool { called = true; return true })
	assert.False(t, called)

	var q *ast.SelectQuery
	ast.Inspect(q, func(ast.Node) bool { called = true; return true })
	assert.False(t, called)
}

func TestInspectVisitsEveryNodeType(t *testing.T) {
	expr, err := parser.ParseExpression(context.Background(), strings.NewReader(
		"CASE WHEN x BETWEEN 1 AND 2 AND y LIKE 'a%' AND z IS NULL AND NOT w THEN CAST(v AS int) + arr[1] END"))
	require.NoError(t, err)

	seen := map[string]bool{}
	ast.Inspect(expr, func(n ast.Node) bool {
		seen[fmt.Sprintf("%T", n)] = true
		return true
	})
	for _, typ := range []string{"*ast.CaseExpr", "*ast.WhenClause", "*ast.BetweenExpr", "*ast.LikeExpr",
		"*ast.IsNullExpr", "*ast.UnaryExpr", "*ast.CastExpr", "*ast.ArrayAccess", "*ast.Literal"} {
		assert.True(t, seen[typ], "expected to visit %s", typ)
	}
}

func TestInspectTypedNil(t *testing.T) {
	var (
		nilBinary *ast.BinaryExpr
		nilCase   *ast.CaseExpr
	)
	q := &ast.SelectQuery{
		With:    []*ast.WithElement{nil},
		Columns: []ast.Expression{nilBinary, &ast.Identifier{Parts: []string{"a"}}},
		From:    []*ast.TableExpression{nil},
		Where:   nilCase,
		OrderBy: []*ast.OrderByElement{nil},
	}

	var visited []string
	ast.Inspect(q, func(n ast.Node) bool {
		visited = append(visited, fmt.Sprintf("%T", n))
		return true
	})
	assert.Equal(t, []string{"*ast.SelectQuery", "*ast.Identifier"}, visited)

	assert.True(t, ast.IsNil(nil))
	assert.True(t, ast.IsNil((*ast.WhenClause)(nil)))
	assert.False(t, ast.IsNil(&ast.WhenClause{}))
}
