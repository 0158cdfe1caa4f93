package parser

import (
	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/internal/format"
)

// Format returns the SQL string representation of the statements.
func Format(stmts []ast.Statement) string {
	return format.Format(stmts)
}

// FormatExpression returns the SQL string representation of an expression.
func FormatExpression(expr ast.Expression) string {
	return format.String(expr)
}
