package format_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/internal/format"
	"github.com/sqlc-dev/caseprose/parser"
)

func TestString(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"CASE WHEN a=1 THEN 'x' ELSE 'y' END", "CASE WHEN a = 1 THEN 'x' ELSE 'y' END"},
		{"case s when 1 then 2 end", "CASE s WHEN 1 THEN 2 END"},
		{"x not in (1,2)", "x NOT IN (1, 2)"},
		{"name not ilike '%a%'", "name NOT ILIKE '%a%'"},
		{"cast(x as int)", "CAST(x AS int)"},
		{"count(distinct id) over (partition by g order by ts desc)", "count(DISTINCT id) OVER (PARTITION BY g ORDER BY ts DESC)"},
		{"'it''s'", "'it''s'"},
		{"not (a or b)", "NOT (a OR b)"},
	}

	for _, tc := range tests {
		t.Run(tc.sql, func(t *testing.T) {
			expr, err := parser.ParseExpression(context.Background(), strings.NewReader(tc.sql))
			require.NoError(t, err)
			assert.Equal(t, tc.want, format.String(expr))
		})
	}
}

func TestStringNil(t *testing.T) {
	assert.Equal(t, "", format.String(nil))
}

func TestQuote(t *testing.T) {
	var sb strings.Builder
	format.Quote(&sb, "O'Brien")
	assert.Equal(t, "'O''Brien'", sb.String())
}

func TestFormatStatements(t *testing.T) {
	stmts, err := parser.Parse(context.Background(), strings.NewReader(
		"select a from t; create view v as select case when b then 1 end as c from t"))
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT a FROM t;\nCREATE VIEW v AS SELECT CASE WHEN b THEN 1 END AS c FROM t;",
		format.Format(stmts))
}

func TestFormatIdentifier(t *testing.T) {
	id := &ast.Identifier{Parts: []string{"My Table", `we"ird`}, Quoted: true}
	assert.Equal(t, `"My Table"."we""ird"`, format.String(id))
}
