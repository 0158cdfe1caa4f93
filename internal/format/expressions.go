package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
)

// Expression formats an expression.
func Expression(sb *strings.Builder, expr ast.Expression) {
	if expr == nil {
		return
	}

	switch e := expr.(type) {
	case *ast.Literal:
		formatLiteral(sb, e)
	case *ast.Identifier:
		formatIdentifier(sb, e)
	case *ast.FunctionCall:
		formatFunctionCall(sb, e)
	case *ast.BinaryExpr:
		formatBinaryExpr(sb, e)
	case *ast.UnaryExpr:
		formatUnaryExpr(sb, e)
	case *ast.Asterisk:
		if e.Table != "" {
			sb.WriteString(e.Table)
			sb.WriteString(".")
		}
		sb.WriteString("*")
	case *ast.AliasedExpr:
		Expression(sb, e.Expr)
		sb.WriteString(" AS ")
		sb.WriteString(e.Alias)
	case *ast.Subquery:
		sb.WriteString("(")
		formatSelectWithUnionQuery(sb, e.Query)
		sb.WriteString(")")
	case *ast.CaseExpr:
		formatCaseExpr(sb, e)
	case *ast.DataType:
		formatDataType(sb, e)
	case *ast.CastExpr:
		formatCastExpr(sb, e)
	case *ast.IntervalExpr:
		sb.WriteString("INTERVAL ")
		Expression(sb, e.Value)
		if e.Unit != "" {
			sb.WriteString(" ")
			sb.WriteString(e.Unit)
		}
	case *ast.ArrayAccess:
		Expression(sb, e.Array)
		sb.WriteString("[")
		Expression(sb, e.Index)
		sb.WriteString("]")
	case *ast.BetweenExpr:
		Expression(sb, e.Expr)
		if e.Not {
			sb.WriteString(" NOT")
		}
		sb.WriteString(" BETWEEN ")
		Expression(sb, e.Low)
		sb.WriteString(" AND ")
		Expression(sb, e.High)
	case *ast.InExpr:
		formatInExpr(sb, e)
	case *ast.IsNullExpr:
		Expression(sb, e.Expr)
		if e.Not {
			sb.WriteString(" IS NOT NULL")
		} else {
			sb.WriteString(" IS NULL")
		}
	case *ast.LikeExpr:
		Expression(sb, e.Expr)
		if e.Not {
			sb.WriteString(" NOT")
		}
		if e.CaseInsensitive {
			sb.WriteString(" ILIKE ")
		} else {
			sb.WriteString(" LIKE ")
		}
		Expression(sb, e.Pattern)
	case *ast.ExistsExpr:
		sb.WriteString("EXISTS (")
		formatSelectWithUnionQuery(sb, e.Query)
		sb.WriteString(")")
	default:
		// Fallback for unhandled expressions
		fmt.Fprintf(sb, "%v", expr)
	}
}

// formatLiteral formats a literal value.
func formatLiteral(sb *strings.Builder, lit *ast.Literal) {
	switch lit.Type {
	case ast.LiteralString:
		s, _ := lit.Value.(string)
		Quote(sb, s)
	case ast.LiteralInteger, ast.LiteralFloat:
		if lit.Source != "" {
			sb.WriteString(lit.Source)
			return
		}
		switch v := lit.Value.(type) {
		case int64:
			sb.WriteString(strconv.FormatInt(v, 10))
		case uint64:
			sb.WriteString(strconv.FormatUint(v, 10))
		case float64:
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		default:
			fmt.Fprintf(sb, "%v", lit.Value)
		}
	case ast.LiteralBoolean:
		if v, _ := lit.Value.(bool); v {
			sb.WriteString("TRUE")
		} else {
			sb.WriteString("FALSE")
		}
	case ast.LiteralNull:
		sb.WriteString("NULL")
	case ast.LiteralArray:
		sb.WriteString("[")
		elems, _ := lit.Value.([]ast.Expression)
		expressionList(sb, elems)
		sb.WriteString("]")
	case ast.LiteralTuple:
		sb.WriteString("(")
		elems, _ := lit.Value.([]ast.Expression)
		expressionList(sb, elems)
		sb.WriteString(")")
	default:
		fmt.Fprintf(sb, "%v", lit.Value)
	}
}

// Quote writes s as a single-quoted SQL string literal.
func Quote(sb *strings.Builder, s string) {
	sb.WriteString("'")
	sb.WriteString(strings.ReplaceAll(s, "'", "''"))
	sb.WriteString("'")
}

// formatIdentifier formats an identifier, re-quoting it when the source did.
func formatIdentifier(sb *strings.Builder, id *ast.Identifier) {
	if !id.Quoted {
		sb.WriteString(id.Name())
		return
	}
	for i, part := range id.Parts {
		if i > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(`"`)
		sb.WriteString(strings.ReplaceAll(part, `"`, `""`))
		sb.WriteString(`"`)
	}
}

// formatFunctionCall formats a function call.
func formatFunctionCall(sb *strings.Builder, fn *ast.FunctionCall) {
	sb.WriteString(fn.Name)
	sb.WriteString("(")
	if fn.Distinct {
		sb.WriteString("DISTINCT ")
	}
	expressionList(sb, fn.Arguments)
	sb.WriteString(")")

	if fn.Over != nil {
		sb.WriteString(" OVER ")
		formatWindowSpec(sb, fn.Over)
	}
}

func formatWindowSpec(sb *strings.Builder, w *ast.WindowSpec) {
	if w.Name != "" {
		sb.WriteString(w.Name)
		return
	}
	var parts []string
	if len(w.PartitionBy) > 0 {
		var p strings.Builder
		p.WriteString("PARTITION BY ")
		expressionList(&p, w.PartitionBy)
		parts = append(parts, p.String())
	}
	if len(w.OrderBy) > 0 {
		var o strings.Builder
		o.WriteString("ORDER BY ")
		orderByList(&o, w.OrderBy)
		parts = append(parts, o.String())
	}
	if w.Frame != "" {
		parts = append(parts, w.Frame)
	}
	sb.WriteString("(")
	sb.WriteString(strings.Join(parts, " "))
	sb.WriteString(")")
}

// formatBinaryExpr formats a binary expression.
func formatBinaryExpr(sb *strings.Builder, expr *ast.BinaryExpr) {
	if expr.Parenthesized {
		sb.WriteString("(")
	}
	Expression(sb, expr.Left)
	sb.WriteString(" ")
	sb.WriteString(expr.Op)
	sb.WriteString(" ")
	Expression(sb, expr.Right)
	if expr.Parenthesized {
		sb.WriteString(")")
	}
}

// formatUnaryExpr formats a unary expression.
func formatUnaryExpr(sb *strings.Builder, expr *ast.UnaryExpr) {
	sb.WriteString(expr.Op)
	if expr.Op == "NOT" {
		sb.WriteString(" ")
	}
	Expression(sb, expr.Operand)
}

func formatCaseExpr(sb *strings.Builder, c *ast.CaseExpr) {
	sb.WriteString("CASE")
	if c.Operand != nil {
		sb.WriteString(" ")
		Expression(sb, c.Operand)
	}
	for _, w := range c.Whens {
		sb.WriteString(" WHEN ")
		Expression(sb, w.Condition)
		sb.WriteString(" THEN ")
		Expression(sb, w.Result)
	}
	if c.Else != nil {
		sb.WriteString(" ELSE ")
		Expression(sb, c.Else)
	}
	sb.WriteString(" END")
}

func formatDataType(sb *strings.Builder, dt *ast.DataType) {
	sb.WriteString(dt.Name)
	if len(dt.Parameters) > 0 {
		sb.WriteString("(")
		expressionList(sb, dt.Parameters)
		sb.WriteString(")")
	}
}

func formatCastExpr(sb *strings.Builder, c *ast.CastExpr) {
	if c.OperatorSyntax {
		Expression(sb, c.Expr)
		sb.WriteString("::")
		formatDataType(sb, c.Type)
		return
	}
	sb.WriteString("CAST(")
	Expression(sb, c.Expr)
	sb.WriteString(" AS ")
	formatDataType(sb, c.Type)
	sb.WriteString(")")
}

func formatInExpr(sb *strings.Builder, in *ast.InExpr) {
	Expression(sb, in.Expr)
	if in.Not {
		sb.WriteString(" NOT")
	}
	sb.WriteString(" IN (")
	if in.Query != nil {
		formatSelectWithUnionQuery(sb, in.Query)
	} else {
		expressionList(sb, in.List)
	}
	sb.WriteString(")")
}
