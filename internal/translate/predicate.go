package translate

import (
	"strconv"
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/internal/format"
)

const (
	allHeader = "All of the following must be true:"
	anyHeader = "At least one of the following must be true:"
)

// Path identifies a clause by its position in the condition tree.
type Path []int

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Child returns a new path with n appended. The receiver is never modified.
func (p Path) Child(n int) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, n)
}

// Clause is one numbered line of a condition explanation.
type Clause struct {
	Label string `json:"label"`
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type phrasePair struct {
	affirm, negate string
}

var comparisonPhrases = map[string]phrasePair{
	"=":   {"equals", "is not equal to"},
	"==":  {"equals", "is not equal to"},
	"!=":  {"is not equal to", "equals"},
	"<>":  {"is not equal to", "equals"},
	"<":   {"is less than", "is not less than"},
	"<=":  {"is less than or equal to", "is not less than or equal to"},
	">":   {"is greater than", "is not greater than"},
	">=":  {"is greater than or equal to", "is not greater than or equal to"},
	"<=>": {"is not distinct from", "is distinct from"},
}

// predicate explains a boolean expression as numbered clauses. AND and OR
// chains are flattened into one child per operand.
func (t *translator) predicate(expr ast.Expression, level int, path Path, depth int) []Clause {
	if !t.enter(depth) {
		return nil
	}
	expr = unalias(expr)
	label := path.String()

	switch Classify(expr) {
	case KindAnd, KindOr:
		bin := expr.(*ast.BinaryExpr)
		header := allHeader
		if strings.EqualFold(bin.Op, "OR") {
			header = anyHeader
		}
		clauses := []Clause{{Label: label, Level: level, Text: header}}
		for i, child := range Flatten(bin, bin.Op) {
			clauses = append(clauses, t.predicate(child, level+1, path.Child(i+1), depth+1)...)
		}
		return clauses
	case KindNot:
		inner := unalias(expr.(*ast.UnaryExpr).Operand)
		if Classify(inner) == KindNot {
			return t.predicate(inner.(*ast.UnaryExpr).Operand, level, path, depth+1)
		}
		if text, ok := t.condition(inner, true, depth+1); ok {
			return []Clause{{Label: label, Level: level, Text: text}}
		}
		return []Clause{{Label: label, Level: level, Text: "NOT " + format.String(inner)}}
	}

	if text, ok := t.condition(expr, false, depth); ok {
		return []Clause{{Label: label, Level: level, Text: text}}
	}
	return []Clause{{Label: label, Level: level, Text: t.value(expr, depth+1)}}
}

// condition renders a single test, negated when negate is set. It reports
// false for expressions that are not tests.
func (t *translator) condition(expr ast.Expression, negate bool, depth int) (string, bool) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		phrases, ok := comparisonPhrases[e.Op]
		if !ok {
			return "", false
		}
		verb := phrases.affirm
		if negate {
			verb = phrases.negate
		}
		return t.operand(e.Left, depth) + " " + verb + " " + t.operand(e.Right, depth), true

	case *ast.IsNullExpr:
		if e.Not != negate {
			return t.operand(e.Expr, depth) + " is not null", true
		}
		return t.operand(e.Expr, depth) + " is null", true

	case *ast.InExpr:
		verb := "is one of"
		if e.Not != negate {
			verb = "is not one of"
		}
		lhs := t.operand(e.Expr, depth)
		if e.Query != nil {
			return lhs + " " + verb + " the values returned by a subquery", true
		}
		values := make([]string, len(e.List))
		for i, v := range e.List {
			values[i] = format.String(v)
		}
		return lhs + " " + verb + " (" + strings.Join(values, ", ") + ")", true

	case *ast.LikeExpr:
		text := t.like(e, e.Not != negate, depth)
		if e.CaseInsensitive {
			text += " (ignoring case)"
		}
		return text, true

	case *ast.BetweenExpr:
		verb := "is between"
		if e.Not != negate {
			verb = "is not between"
		}
		return t.operand(e.Expr, depth) + " " + verb + " " + t.operand(e.Low, depth) + " and " + t.operand(e.High, depth), true
	}
	return "", false
}

func (t *translator) like(e *ast.LikeExpr, not bool, depth int) string {
	lhs := t.operand(e.Expr, depth)

	lit, ok := e.Pattern.(*ast.Literal)
	pattern, isString := "", false
	if ok && lit.Type == ast.LiteralString {
		pattern, isString = lit.Value.(string)
	}
	if !isString {
		if not {
			return lhs + " does not match the pattern " + t.value(e.Pattern, depth+1)
		}
		return lhs + " matches the pattern " + t.value(e.Pattern, depth+1)
	}

	if text, ok := substring(pattern); ok {
		if not {
			return lhs + " does not contain " + quoted(text) + " as a substring"
		}
		return lhs + " contains " + quoted(text) + " as a substring"
	}
	if not {
		return lhs + " does not match the pattern " + quoted(pattern)
	}
	return lhs + " matches the pattern " + quoted(pattern)
}

// quoted renders s as a SQL string literal, the way literals print elsewhere.
func quoted(s string) string {
	var sb strings.Builder
	format.Quote(&sb, s)
	return sb.String()
}

// substring reports whether pattern has the exact shape %text% with no other
// wildcard, and returns text.
func substring(pattern string) (string, bool) {
	if len(pattern) < 3 || pattern[0] != '%' || pattern[len(pattern)-1] != '%' {
		return "", false
	}
	text := pattern[1 : len(pattern)-1]
	if strings.ContainsAny(text, "%_\\") {
		return "", false
	}
	return text, true
}
