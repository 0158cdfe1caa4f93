// Package format re-prints AST nodes as SQL text.
package format

import (
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
)

// Format returns the SQL string representation of the statements.
func Format(stmts []ast.Statement) string {
	var sb strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			sb.WriteString("\n")
		}
		Statement(&sb, stmt)
		sb.WriteString(";")
	}
	return sb.String()
}

// String returns the SQL text of a single expression.
func String(expr ast.Expression) string {
	var sb strings.Builder
	Expression(&sb, expr)
	return sb.String()
}

// Statement formats a single statement.
func Statement(sb *strings.Builder, stmt ast.Statement) {
	if stmt == nil {
		return
	}

	switch s := stmt.(type) {
	case *ast.SelectWithUnionQuery:
		formatSelectWithUnionQuery(sb, s)
	case *ast.SelectQuery:
		formatSelectQuery(sb, s)
	case *ast.CreateViewQuery:
		formatCreateViewQuery(sb, s)
	}
}

func formatSelectWithUnionQuery(sb *strings.Builder, q *ast.SelectWithUnionQuery) {
	for i, sel := range q.Selects {
		if i > 0 {
			if q.UnionAll {
				sb.WriteString(" UNION ALL ")
			} else {
				sb.WriteString(" UNION ")
			}
		}
		formatSelectQuery(sb, sel)
	}
}

func formatSelectQuery(sb *strings.Builder, q *ast.SelectQuery) {
	if len(q.With) > 0 {
		sb.WriteString("WITH ")
		for i, w := range q.With {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(w.Name)
			sb.WriteString(" AS (")
			formatSelectWithUnionQuery(sb, w.Query)
			sb.WriteString(")")
		}
		sb.WriteString(" ")
	}

	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	expressionList(sb, q.Columns)

	if len(q.From) > 0 {
		sb.WriteString(" FROM ")
		for i, t := range q.From {
			if i > 0 {
				formatJoin(sb, t.Join)
			}
			formatTableExpression(sb, t)
			if i > 0 && t.Join != nil {
				formatJoinConstraint(sb, t.Join)
			}
		}
	}

	if q.Where != nil {
		sb.WriteString(" WHERE ")
		Expression(sb, q.Where)
	}

	if len(q.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		expressionList(sb, q.GroupBy)
	}

	if q.Having != nil {
		sb.WriteString(" HAVING ")
		Expression(sb, q.Having)
	}

	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		orderByList(sb, q.OrderBy)
	}

	if q.Limit != nil {
		sb.WriteString(" LIMIT ")
		Expression(sb, q.Limit)
	}

	if q.Offset != nil {
		sb.WriteString(" OFFSET ")
		Expression(sb, q.Offset)
	}
}

func formatJoin(sb *strings.Builder, j *ast.TableJoin) {
	if j == nil || j.Type == ast.JoinComma {
		sb.WriteString(", ")
		return
	}
	sb.WriteString(" ")
	sb.WriteString(string(j.Type))
	sb.WriteString(" JOIN ")
}

func formatJoinConstraint(sb *strings.Builder, j *ast.TableJoin) {
	if j.On != nil {
		sb.WriteString(" ON ")
		Expression(sb, j.On)
	} else if len(j.Using) > 0 {
		sb.WriteString(" USING (")
		expressionList(sb, j.Using)
		sb.WriteString(")")
	}
}

func formatTableExpression(sb *strings.Builder, t *ast.TableExpression) {
	Expression(sb, t.Table)
	if t.Alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(t.Alias)
	}
}

func formatCreateViewQuery(sb *strings.Builder, c *ast.CreateViewQuery) {
	sb.WriteString("CREATE ")
	if c.OrReplace {
		sb.WriteString("OR REPLACE ")
	}
	if c.Materialized {
		sb.WriteString("MATERIALIZED ")
	}
	sb.WriteString("VIEW ")
	if c.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(c.Name)
	sb.WriteString(" AS ")
	if c.Select != nil {
		formatSelectWithUnionQuery(sb, c.Select)
	}
}

func expressionList(sb *strings.Builder, exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		Expression(sb, e)
	}
}

func orderByList(sb *strings.Builder, elems []*ast.OrderByElement) {
	for i, o := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		Expression(sb, o.Expression)
		if o.Descending {
			sb.WriteString(" DESC")
		}
		if o.NullsFirst != nil {
			if *o.NullsFirst {
				sb.WriteString(" NULLS FIRST")
			} else {
				sb.WriteString(" NULLS LAST")
			}
		}
	}
}
