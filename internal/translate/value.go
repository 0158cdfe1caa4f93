package translate

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/internal/format"
)

// conditionalPlaceholder stands in for a CASE used inside a larger value.
const conditionalPlaceholder = "a conditional value (CASE expression)"

var arithmeticPhrases = map[string]string{
	"+":   "plus",
	"-":   "minus",
	"*":   "multiplied by",
	"/":   "divided by",
	"%":   "modulo",
	"MOD": "modulo",
	"DIV": "integer-divided by",
	"||":  "concatenated with",
}

// aggregatePhrases maps functions rendered as "the <phrase> value among (...)".
var aggregatePhrases = map[string]string{
	"sum":      "sum",
	"greatest": "greatest",
	"least":    "least",
	"avg":      "average",
	"min":      "minimum",
	"max":      "maximum",
}

var trimPhrases = map[string]string{
	"trim":      "leading and trailing",
	"btrim":     "leading and trailing",
	"trimboth":  "leading and trailing",
	"trimleft":  "leading",
	"ltrim":     "leading",
	"trimright": "trailing",
	"rtrim":     "trailing",
}

// value renders a non-boolean expression as an English noun phrase. It never
// fails: anything without a template is printed as SQL.
func (t *translator) value(expr ast.Expression, depth int) string {
	if !t.enter(depth) {
		return ""
	}
	expr = unalias(expr)

	switch kind := Classify(expr); kind {
	case KindLiteral, KindColumn:
		return format.String(expr)
	case KindArithmetic:
		return t.arithmetic(expr, depth)
	case KindFunction:
		return t.function(expr.(*ast.FunctionCall), depth)
	case KindCast:
		c := expr.(*ast.CastExpr)
		return t.operand(c.Expr, depth) + " cast to " + format.String(c.Type)
	case KindConditional:
		return conditionalPlaceholder
	case KindOpaque:
		t.unsupported(kind, expr)
		return format.String(expr)
	default:
		// Boolean expressions in value position read best as written.
		return format.String(expr)
	}
}

// operand renders a child value, keeping source grouping visible.
func (t *translator) operand(expr ast.Expression, depth int) string {
	s := t.value(expr, depth+1)
	if bin, ok := unalias(expr).(*ast.BinaryExpr); ok && bin.Parenthesized {
		return "(" + s + ")"
	}
	return s
}

func (t *translator) arithmetic(expr ast.Expression, depth int) string {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		phrase := arithmeticPhrases[strings.ToUpper(e.Op)]
		return t.operand(e.Left, depth) + " " + phrase + " " + t.operand(e.Right, depth)
	case *ast.UnaryExpr:
		if _, ok := e.Operand.(*ast.Literal); ok {
			return format.String(e)
		}
		if e.Op == "+" {
			return t.operand(e.Operand, depth)
		}
		return "the negation of " + t.operand(e.Operand, depth)
	}
	return format.String(expr)
}

func (t *translator) function(fn *ast.FunctionCall, depth int) string {
	if fn.Over != nil {
		return t.window(fn, depth)
	}

	name := strings.ToLower(fn.Name)
	args := fn.Arguments

	if side, ok := trimPhrases[name]; ok && (len(args) == 1 || len(args) == 2) {
		what := "whitespace"
		if len(args) == 2 {
			what = t.value(args[1], depth+1)
		}
		return fmt.Sprintf("%s with %s %s removed", t.operand(args[0], depth), side, what)
	}

	if phrase, ok := aggregatePhrases[name]; ok && len(args) > 0 {
		return fmt.Sprintf("the %s value among (%s)", phrase, t.list(args, depth))
	}

	switch name {
	case "upper", "ucase":
		if len(args) == 1 {
			return "the upper case of " + t.operand(args[0], depth)
		}
	case "lower", "lcase":
		if len(args) == 1 {
			return "the lower case of " + t.operand(args[0], depth)
		}
	case "coalesce", "ifnull", "nvl":
		if len(args) > 0 {
			return fmt.Sprintf("the first non-null value among (%s)", t.list(args, depth))
		}
	case "round":
		switch len(args) {
		case 1:
			return t.operand(args[0], depth) + " rounded"
		case 2:
			return fmt.Sprintf("%s rounded to %s decimal places", t.operand(args[0], depth), format.String(args[1]))
		}
	case "count":
		switch {
		case len(args) == 1 && isAsterisk(args[0]):
			return "the number of rows"
		case len(args) == 1 && fn.Distinct:
			return "the number of distinct values of " + t.operand(args[0], depth)
		case len(args) == 1:
			return "the count of " + t.operand(args[0], depth)
		}
	}

	t.unsupported(KindFunction, fn)
	return format.String(fn)
}

// window renders "<name> of <args> (partitioned by ..., ordered by ...)".
func (t *translator) window(fn *ast.FunctionCall, depth int) string {
	var sb strings.Builder
	sb.WriteString(fn.Name)
	if len(fn.Arguments) > 0 {
		sb.WriteString(" of ")
		sb.WriteString(t.list(fn.Arguments, depth))
	}

	var clauses []string
	if len(fn.Over.PartitionBy) > 0 {
		clauses = append(clauses, "partitioned by "+t.list(fn.Over.PartitionBy, depth))
	}
	if len(fn.Over.OrderBy) > 0 {
		keys := make([]string, len(fn.Over.OrderBy))
		for i, o := range fn.Over.OrderBy {
			keys[i] = t.operand(o.Expression, depth)
			if o.Descending {
				keys[i] += " descending"
			}
		}
		clauses = append(clauses, "ordered by "+strings.Join(keys, ", "))
	}
	if fn.Over.Name != "" {
		clauses = append(clauses, "over window "+fn.Over.Name)
	}
	if len(clauses) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(clauses, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func (t *translator) list(exprs []ast.Expression, depth int) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = t.operand(e, depth)
	}
	return strings.Join(parts, ", ")
}

func isAsterisk(expr ast.Expression) bool {
	_, ok := expr.(*ast.Asterisk)
	return ok
}
