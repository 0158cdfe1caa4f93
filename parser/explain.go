package parser

import (
	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/internal/explain"
)

// Explain returns the EXPLAIN AST style tree for a statement.
func Explain(stmt ast.Statement) string {
	return explain.Explain(stmt)
}

// ExplainExpression returns the EXPLAIN AST style tree for an expression.
func ExplainExpression(expr ast.Expression) string {
	return explain.Expression(expr)
}
