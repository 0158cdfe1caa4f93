// Package explain dumps AST nodes as an indented tree in the style of
// ClickHouse's EXPLAIN AST.
package explain

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
)

// Explain returns the tree dump for a statement.
func Explain(stmt ast.Statement) string {
	var sb strings.Builder
	Node(&sb, stmt, 0)
	return sb.String()
}

// Expression returns the tree dump for a bare expression.
func Expression(expr ast.Expression) string {
	var sb strings.Builder
	Node(&sb, expr, 0)
	return sb.String()
}

// Node writes the tree dump for an AST node.
func Node(sb *strings.Builder, node ast.Node, depth int) {
	if node == nil {
		return
	}

	indent := strings.Repeat(" ", depth)

	switch n := node.(type) {
	// Statements
	case *ast.SelectWithUnionQuery:
		explainSelectWithUnionQuery(sb, n, indent, depth)
	case *ast.SelectQuery:
		explainSelectQuery(sb, n, indent, depth)
	case *ast.CreateViewQuery:
		explainCreateViewQuery(sb, n, indent, depth)
	case *ast.WithElement:
		fmt.Fprintf(sb, "%sWithElement (alias %s) (children %d)\n", indent, n.Name, 1)
		Node(sb, n.Query, depth+1)
	case *ast.TableExpression:
		explainTableExpression(sb, n, indent, depth)
	case *ast.OrderByElement:
		explainOrderByElement(sb, n, indent, depth)

	// Expressions
	case *ast.Identifier:
		fmt.Fprintf(sb, "%sIdentifier %s\n", indent, n.Name())
	case *ast.Literal:
		explainLiteral(sb, n, indent, depth)
	case *ast.Asterisk:
		if n.Table != "" {
			fmt.Fprintf(sb, "%sQualifiedAsterisk %s\n", indent, n.Table)
		} else {
			fmt.Fprintf(sb, "%sAsterisk\n", indent)
		}
	case *ast.AliasedExpr:
		explainAliasedExpr(sb, n, indent, depth)
	case *ast.BinaryExpr:
		explainFunction(sb, OperatorToFunction(n.Op), indent, depth, n.Left, n.Right)
	case *ast.UnaryExpr:
		explainFunction(sb, UnaryOperatorToFunction(n.Op), indent, depth, n.Operand)
	case *ast.FunctionCall:
		explainFunctionCall(sb, n, indent, depth)
	case *ast.Subquery:
		fmt.Fprintf(sb, "%sSubquery (children %d)\n", indent, 1)
		Node(sb, n.Query, depth+1)
	case *ast.CaseExpr:
		explainCaseExpr(sb, n, indent, depth)
	case *ast.CastExpr:
		fmt.Fprintf(sb, "%sFunction CAST (children %d)\n", indent, 1)
		fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, 2)
		Node(sb, n.Expr, depth+2)
		fmt.Fprintf(sb, "%s  DataType %s\n", indent, dataTypeName(n.Type))
	case *ast.DataType:
		fmt.Fprintf(sb, "%sDataType %s\n", indent, dataTypeName(n))
	case *ast.IntervalExpr:
		explainFunction(sb, "toInterval"+titleCase(n.Unit), indent, depth, n.Value)
	case *ast.ArrayAccess:
		explainFunction(sb, "arrayElement", indent, depth, n.Array, n.Index)
	case *ast.BetweenExpr:
		explainBetweenExpr(sb, n, indent, depth)
	case *ast.InExpr:
		explainInExpr(sb, n, indent, depth)
	case *ast.IsNullExpr:
		name := "isNull"
		if n.Not {
			name = "isNotNull"
		}
		explainFunction(sb, name, indent, depth, n.Expr)
	case *ast.LikeExpr:
		explainFunction(sb, likeFunction(n), indent, depth, n.Expr, n.Pattern)
	case *ast.ExistsExpr:
		fmt.Fprintf(sb, "%sFunction exists (children %d)\n", indent, 1)
		fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, 1)
		fmt.Fprintf(sb, "%s  Subquery (children %d)\n", indent, 1)
		Node(sb, n.Query, depth+3)
	default:
		// Unknown node type
		fmt.Fprintf(sb, "%s%T\n", indent, n)
	}
}

func explainSelectWithUnionQuery(sb *strings.Builder, n *ast.SelectWithUnionQuery, indent string, depth int) {
	fmt.Fprintf(sb, "%sSelectWithUnionQuery (children %d)\n", indent, 1)
	fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, len(n.Selects))
	for _, sel := range n.Selects {
		Node(sb, sel, depth+2)
	}
}

func explainSelectQuery(sb *strings.Builder, n *ast.SelectQuery, indent string, depth int) {
	children := 1
	for _, present := range []bool{
		len(n.With) > 0, len(n.From) > 0, n.Where != nil, len(n.GroupBy) > 0,
		n.Having != nil, len(n.OrderBy) > 0, n.Limit != nil, n.Offset != nil,
	} {
		if present {
			children++
		}
	}
	fmt.Fprintf(sb, "%sSelectQuery (children %d)\n", indent, children)

	if len(n.With) > 0 {
		fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, len(n.With))
		for _, w := range n.With {
			Node(sb, w, depth+2)
		}
	}

	expressionList(sb, n.Columns, indent, depth)

	if len(n.From) > 0 {
		fmt.Fprintf(sb, "%s TablesInSelectQuery (children %d)\n", indent, len(n.From))
		for _, t := range n.From {
			Node(sb, t, depth+2)
		}
	}
	if n.Where != nil {
		Node(sb, n.Where, depth+1)
	}
	if len(n.GroupBy) > 0 {
		expressionList(sb, n.GroupBy, indent, depth)
	}
	if n.Having != nil {
		Node(sb, n.Having, depth+1)
	}
	if len(n.OrderBy) > 0 {
		fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, len(n.OrderBy))
		for _, o := range n.OrderBy {
			Node(sb, o, depth+2)
		}
	}
	if n.Limit != nil {
		Node(sb, n.Limit, depth+1)
	}
	if n.Offset != nil {
		Node(sb, n.Offset, depth+1)
	}
}

func explainCreateViewQuery(sb *strings.Builder, n *ast.CreateViewQuery, indent string, depth int) {
	fmt.Fprintf(sb, "%sCreateQuery %s (children %d)\n", indent, n.Name, 2)
	fmt.Fprintf(sb, "%s Identifier %s\n", indent, n.Name)
	Node(sb, n.Select, depth+1)
}

func explainTableExpression(sb *strings.Builder, n *ast.TableExpression, indent string, depth int) {
	children := 1
	if n.Join != nil {
		children++
	}
	fmt.Fprintf(sb, "%sTablesInSelectQueryElement (children %d)\n", indent, children)
	if id, ok := n.Table.(*ast.Identifier); ok {
		if n.Alias != "" {
			fmt.Fprintf(sb, "%s TableIdentifier %s (alias %s)\n", indent, id.Name(), n.Alias)
		} else {
			fmt.Fprintf(sb, "%s TableIdentifier %s\n", indent, id.Name())
		}
	} else {
		Node(sb, n.Table, depth+1)
	}
	if n.Join != nil {
		joinChildren := 0
		if n.Join.On != nil {
			joinChildren = 1
		} else if len(n.Join.Using) > 0 {
			joinChildren = 1
		}
		fmt.Fprintf(sb, "%s TableJoin %s (children %d)\n", indent, n.Join.Type, joinChildren)
		if n.Join.On != nil {
			Node(sb, n.Join.On, depth+2)
		} else if len(n.Join.Using) > 0 {
			expressionList(sb, n.Join.Using, indent+" ", depth+1)
		}
	}
}

func explainOrderByElement(sb *strings.Builder, n *ast.OrderByElement, indent string, depth int) {
	direction := "ASC"
	if n.Descending {
		direction = "DESC"
	}
	fmt.Fprintf(sb, "%sOrderByElement %s (children %d)\n", indent, direction, 1)
	Node(sb, n.Expression, depth+1)
}

func expressionList(sb *strings.Builder, exprs []ast.Expression, indent string, depth int) {
	fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, len(exprs))
	for _, e := range exprs {
		Node(sb, e, depth+2)
	}
}
