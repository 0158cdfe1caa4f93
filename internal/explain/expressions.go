package explain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
)

func explainLiteral(sb *strings.Builder, n *ast.Literal, indent string, depth int) {
	switch n.Type {
	case ast.LiteralArray, ast.LiteralTuple:
		elems, _ := n.Value.([]ast.Expression)
		name := "array"
		if n.Type == ast.LiteralTuple {
			name = "tuple"
		}
		explainFunction(sb, name, indent, depth, elems...)
	default:
		fmt.Fprintf(sb, "%sLiteral %s\n", indent, FormatLiteral(n))
	}
}

// FormatLiteral renders a scalar literal with its ClickHouse type prefix.
func FormatLiteral(n *ast.Literal) string {
	switch n.Type {
	case ast.LiteralString:
		s, _ := n.Value.(string)
		return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
	case ast.LiteralInteger:
		switch v := n.Value.(type) {
		case int64:
			if v < 0 {
				return "Int64_" + strconv.FormatInt(v, 10)
			}
			return "UInt64_" + strconv.FormatInt(v, 10)
		case uint64:
			return "UInt64_" + strconv.FormatUint(v, 10)
		}
	case ast.LiteralFloat:
		if v, ok := n.Value.(float64); ok {
			return "Float64_" + strconv.FormatFloat(v, 'g', -1, 64)
		}
	case ast.LiteralBoolean:
		if v, _ := n.Value.(bool); v {
			return "Bool_1"
		}
		return "Bool_0"
	case ast.LiteralNull:
		return "NULL"
	}
	return fmt.Sprintf("%v", n.Value)
}

// explainAliasedExpr dumps the inner expression and tags its first line
// with the alias.
func explainAliasedExpr(sb *strings.Builder, n *ast.AliasedExpr, indent string, depth int) {
	var inner strings.Builder
	Node(&inner, n.Expr, depth)
	out := inner.String()

	first, rest, _ := strings.Cut(out, "\n")
	tag := " (alias " + n.Alias + ")"
	if i := strings.Index(first, " (children "); i >= 0 {
		first = first[:i] + tag + first[i:]
	} else {
		first += tag
	}
	sb.WriteString(first)
	sb.WriteString("\n")
	sb.WriteString(rest)
}

func explainFunction(sb *strings.Builder, name string, indent string, depth int, args ...ast.Expression) {
	fmt.Fprintf(sb, "%sFunction %s (children %d)\n", indent, name, 1)
	if len(args) == 0 {
		fmt.Fprintf(sb, "%s ExpressionList\n", indent)
		return
	}
	fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, len(args))
	for _, arg := range args {
		Node(sb, arg, depth+2)
	}
}

func explainFunctionCall(sb *strings.Builder, n *ast.FunctionCall, indent string, depth int) {
	name := n.Name
	if n.Distinct {
		name += "Distinct"
	}
	if n.Over == nil {
		explainFunction(sb, name, indent, depth, n.Arguments...)
		return
	}

	fmt.Fprintf(sb, "%sFunction %s (children %d)\n", indent, name, 2)
	if len(n.Arguments) == 0 {
		fmt.Fprintf(sb, "%s ExpressionList\n", indent)
	} else {
		fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, len(n.Arguments))
		for _, arg := range n.Arguments {
			Node(sb, arg, depth+2)
		}
	}
	explainWindowSpec(sb, n.Over, indent+" ", depth+1)
}

func explainWindowSpec(sb *strings.Builder, w *ast.WindowSpec, indent string, depth int) {
	if w.Name != "" {
		fmt.Fprintf(sb, "%sWindowDefinition %s\n", indent, w.Name)
		return
	}
	children := 0
	if len(w.PartitionBy) > 0 {
		children++
	}
	if len(w.OrderBy) > 0 {
		children++
	}
	if children == 0 {
		fmt.Fprintf(sb, "%sWindowDefinition\n", indent)
		return
	}
	fmt.Fprintf(sb, "%sWindowDefinition (children %d)\n", indent, children)
	if len(w.PartitionBy) > 0 {
		expressionList(sb, w.PartitionBy, indent, depth)
	}
	if len(w.OrderBy) > 0 {
		fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, len(w.OrderBy))
		for _, o := range w.OrderBy {
			Node(sb, o, depth+2)
		}
	}
}

// explainCaseExpr dumps a searched CASE as multiIf and a simple CASE as
// caseWithExpression, the way ClickHouse rewrites them.
func explainCaseExpr(sb *strings.Builder, n *ast.CaseExpr, indent string, depth int) {
	var args []ast.Expression
	name := "multiIf"
	if n.Operand != nil {
		name = "caseWithExpression"
		args = append(args, n.Operand)
	}
	for _, w := range n.Whens {
		args = append(args, w.Condition, w.Result)
	}
	if n.Else != nil {
		args = append(args, n.Else)
	} else {
		args = append(args, &ast.Literal{Type: ast.LiteralNull})
	}
	explainFunction(sb, name, indent, depth, args...)
}

func explainBetweenExpr(sb *strings.Builder, n *ast.BetweenExpr, indent string, depth int) {
	if n.Not {
		fmt.Fprintf(sb, "%sFunction or (children %d)\n", indent, 1)
		fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, 2)
		explainFunction(sb, "less", indent+"  ", depth+2, n.Expr, n.Low)
		explainFunction(sb, "greater", indent+"  ", depth+2, n.Expr, n.High)
		return
	}
	fmt.Fprintf(sb, "%sFunction and (children %d)\n", indent, 1)
	fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, 2)
	explainFunction(sb, "greaterOrEquals", indent+"  ", depth+2, n.Expr, n.Low)
	explainFunction(sb, "lessOrEquals", indent+"  ", depth+2, n.Expr, n.High)
}

func explainInExpr(sb *strings.Builder, n *ast.InExpr, indent string, depth int) {
	name := "in"
	if n.Not {
		name = "notIn"
	}
	fmt.Fprintf(sb, "%sFunction %s (children %d)\n", indent, name, 1)
	fmt.Fprintf(sb, "%s ExpressionList (children %d)\n", indent, 2)
	Node(sb, n.Expr, depth+2)
	switch {
	case n.Query != nil:
		fmt.Fprintf(sb, "%s  Subquery (children %d)\n", indent, 1)
		Node(sb, n.Query, depth+3)
	case len(n.List) == 1:
		Node(sb, n.List[0], depth+2)
	default:
		explainFunction(sb, "tuple", indent+"  ", depth+2, n.List...)
	}
}

func likeFunction(n *ast.LikeExpr) string {
	name := "like"
	if n.CaseInsensitive {
		name = "ilike"
	}
	if n.Not {
		name = "not" + strings.ToUpper(name[:1]) + name[1:]
	}
	return name
}

func dataTypeName(dt *ast.DataType) string {
	if dt == nil {
		return ""
	}
	if len(dt.Parameters) == 0 {
		return dt.Name
	}
	params := make([]string, len(dt.Parameters))
	for i, p := range dt.Parameters {
		if lit, ok := p.(*ast.Literal); ok && lit.Source != "" {
			params[i] = lit.Source
		} else if lit, ok := p.(*ast.Literal); ok {
			params[i] = FormatLiteral(lit)
		} else {
			params[i] = fmt.Sprintf("%T", p)
		}
	}
	return dt.Name + "(" + strings.Join(params, ", ") + ")"
}
