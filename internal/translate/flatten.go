package translate

import (
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
)

// Flatten collapses a chain of op ("AND" or "OR") into its operands in
// left-to-right source order. Only children joined by the same operator are
// unwrapped, so an OR nested inside an AND stays a single operand.
func Flatten(expr ast.Expression, op string) []ast.Expression {
	bin, ok := unalias(expr).(*ast.BinaryExpr)
	if !ok || !strings.EqualFold(bin.Op, op) {
		return []ast.Expression{expr}
	}
	return append(Flatten(bin.Left, op), Flatten(bin.Right, op)...)
}
