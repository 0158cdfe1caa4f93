package translate

import (
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
)

// Kind is the semantic category of an expression node.
type Kind int

const (
	KindOpaque Kind = iota
	KindLiteral
	KindColumn
	KindArithmetic
	KindComparison
	KindNullCheck
	KindMembership
	KindPatternMatch
	KindAnd
	KindOr
	KindNot
	KindFunction
	KindConditional
	KindCast
	KindRange
)

var kindNames = [...]string{
	KindOpaque:       "opaque",
	KindLiteral:      "literal",
	KindColumn:       "column",
	KindArithmetic:   "arithmetic",
	KindComparison:   "comparison",
	KindNullCheck:    "null-check",
	KindMembership:   "membership",
	KindPatternMatch: "pattern-match",
	KindAnd:          "and",
	KindOr:           "or",
	KindNot:          "not",
	KindFunction:     "function",
	KindConditional:  "conditional",
	KindCast:         "cast",
	KindRange:        "range",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Classify returns the semantic kind of expr. Alias wrappers classify as the
// expression they wrap; nil and unrecognized nodes are KindOpaque.
func Classify(expr ast.Expression) Kind {
	switch e := unalias(expr).(type) {
	case *ast.Literal:
		return KindLiteral
	case *ast.Identifier, *ast.Asterisk:
		return KindColumn
	case *ast.BinaryExpr:
		return classifyOperator(e.Op)
	case *ast.UnaryExpr:
		switch strings.ToUpper(e.Op) {
		case "NOT":
			return KindNot
		case "-", "+":
			return KindArithmetic
		}
	case *ast.IsNullExpr:
		return KindNullCheck
	case *ast.InExpr:
		return KindMembership
	case *ast.LikeExpr:
		return KindPatternMatch
	case *ast.BetweenExpr:
		return KindRange
	case *ast.FunctionCall:
		return KindFunction
	case *ast.CaseExpr:
		return KindConditional
	case *ast.CastExpr:
		return KindCast
	}
	return KindOpaque
}

func classifyOperator(op string) Kind {
	switch strings.ToUpper(op) {
	case "+", "-", "*", "/", "%", "DIV", "MOD", "||":
		return KindArithmetic
	case "=", "==", "!=", "<>", "<", "<=", ">", ">=", "<=>":
		return KindComparison
	case "AND":
		return KindAnd
	case "OR":
		return KindOr
	}
	return KindOpaque
}

// unalias strips any number of alias wrappers.
func unalias(expr ast.Expression) ast.Expression {
	for {
		a, ok := expr.(*ast.AliasedExpr)
		if !ok || a == nil {
			return expr
		}
		expr = a.Expr
	}
}
