// Package translate explains SQL conditional expressions in English.
//
// A CASE expression becomes a numbered outline: each WHEN branch is a
// "Condition i: IF" block whose boolean condition is broken into labelled
// clauses, followed by the value it returns. Labels are dot-joined paths that
// depend only on the structural position of a clause.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/internal/format"
	"github.com/sqlc-dev/caseprose/parser"
)

var (
	// ErrNoConditionalExpression is returned when the input has no CASE.
	ErrNoConditionalExpression = errors.New("no conditional expression found")

	// ErrTooDeep is returned when the input nests beyond Options.MaxDepth.
	// It is the same value as parser.ErrTooDeep.
	ErrTooDeep = parser.ErrTooDeep
)

const nestedResult = "the result of the following conditional:"

// Options configures a translation. The zero value is ready to use.
type Options struct {
	// MaxDepth bounds recursion. Defaults to parser.MaxDepth.
	MaxDepth int
	// Indent is written once per nesting level. Defaults to a tab.
	Indent string
	// Logger receives debug records for constructs rendered verbatim.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return parser.MaxDepth
}

type translator struct {
	maxDepth int
	indent   string
	logger   *slog.Logger
	err      error
}

func newTranslator(opts Options) *translator {
	t := &translator{
		maxDepth: opts.maxDepth(),
		indent:   opts.Indent,
		logger:   opts.Logger,
	}
	if t.indent == "" {
		t.indent = "\t"
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// enter reports whether recursion may continue at depth. Once the limit is
// hit the error sticks and every later call returns false.
func (t *translator) enter(depth int) bool {
	if t.err != nil {
		return false
	}
	if depth > t.maxDepth {
		t.err = fmt.Errorf("%w (limit %d)", ErrTooDeep, t.maxDepth)
		return false
	}
	return true
}

func (t *translator) unsupported(kind Kind, expr ast.Expression) {
	if !t.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	t.logger.Debug("unsupported construct",
		"kind", kind.String(),
		"node", fmt.Sprintf("%T", expr),
		"sql", format.String(expr))
}

// Result is what a branch or default returns: either a rendered value or a
// nested conditional.
type Result struct {
	Text   string `json:"text,omitempty"`
	Nested *Block `json:"nested,omitempty"`
}

// Branch is one WHEN ... THEN ... arm.
type Branch struct {
	Label   string   `json:"label"`
	Level   int      `json:"level"`
	Clauses []Clause `json:"clauses"`
	Result  Result   `json:"result"`
}

// Block is an explained CASE expression.
type Block struct {
	Level    int      `json:"level"`
	Branches []Branch `json:"branches"`
	Else     *Result  `json:"else,omitempty"`
}

// Report is the explanation of one top-level CASE expression.
type Report struct {
	Alias  string `json:"alias,omitempty"`
	Header string `json:"header"`
	Block

	indent string
}

// Line is one line of a report before indentation.
type Line struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Lines returns the report as a flat list of lines. Top-level branches are
// separated by blank lines.
func (r *Report) Lines() []Line {
	out := []Line{{Text: r.Header}, {}}
	return r.Block.lines(out, true)
}

// String renders the report as indented plain text.
func (r *Report) String() string {
	indent := r.indent
	if indent == "" {
		indent = "\t"
	}
	lines := r.Lines()
	parts := make([]string, len(lines))
	for i, l := range lines {
		if l.Text == "" {
			continue
		}
		parts[i] = strings.Repeat(indent, l.Level) + l.Text
	}
	return strings.Join(parts, "\n")
}

func (b *Block) lines(out []Line, top bool) []Line {
	for _, br := range b.Branches {
		out = append(out, Line{Level: br.Level, Text: "Condition " + br.Label + ": IF"})
		for _, c := range br.Clauses {
			out = append(out, Line{Level: c.Level, Text: "Condition " + c.Label + ": " + c.Text})
		}
		out = br.Result.lines(out, "THEN", br.Level+1)
		if top {
			out = append(out, Line{})
		}
	}
	if b.Else != nil {
		out = b.Else.lines(out, "ELSE", b.Level)
	}
	return out
}

func (r *Result) lines(out []Line, keyword string, level int) []Line {
	if r.Nested == nil {
		return append(out, Line{Level: level, Text: keyword + " return " + r.Text})
	}
	out = append(out, Line{Level: level, Text: keyword + " return " + nestedResult})
	return r.Nested.lines(out, false)
}

func header(alias string) string {
	if alias == "" {
		return "Computed column is derived as:"
	}
	return "Column '" + alias + "' is computed as:"
}

// Compose explains c. An empty alias selects the generic header.
func Compose(c *ast.CaseExpr, alias string, opts Options) (*Report, error) {
	if c == nil {
		return nil, ErrNoConditionalExpression
	}
	t := newTranslator(opts)
	block := t.block(c, 0, nil, 0)
	if t.err != nil {
		return nil, t.err
	}
	return &Report{
		Alias:  alias,
		Header: header(alias),
		Block:  *block,
		indent: t.indent,
	}, nil
}

func (t *translator) block(c *ast.CaseExpr, level int, base Path, depth int) *Block {
	b := &Block{Level: level}
	if !t.enter(depth) {
		return b
	}
	for i, w := range c.Whens {
		if w == nil {
			continue
		}
		path := base.Child(i + 1)
		cond := w.Condition
		if c.Operand != nil {
			cond = &ast.BinaryExpr{Position: w.Position, Left: c.Operand, Op: "=", Right: w.Condition}
		}
		b.Branches = append(b.Branches, Branch{
			Label:   path.String(),
			Level:   level,
			Clauses: t.predicate(cond, level+1, path.Child(1), depth+1),
			Result:  t.result(w.Result, level+1, path.Child(2), depth+1),
		})
	}
	if c.Else != nil {
		res := t.result(c.Else, level, base.Child(len(c.Whens)+1), depth+1)
		b.Else = &res
	}
	return b
}

// result renders a THEN or ELSE slot printed at level. A CASE in the slot is
// expanded one level deeper under path.
func (t *translator) result(expr ast.Expression, level int, path Path, depth int) Result {
	if c, ok := unalias(expr).(*ast.CaseExpr); ok {
		return Result{Nested: t.block(c, level+1, path, depth+1)}
	}
	return Result{Text: t.value(expr, depth)}
}

type target struct {
	expr  *ast.CaseExpr
	alias string
}

// targets returns the top-level CASE expressions under node in depth-first
// source order. A CASE nested inside another is part of its parent. When
// first is set the walk stops after one match.
func targets(nodes []ast.Node, first bool) []target {
	var out []target
	for _, node := range nodes {
		ast.Inspect(node, func(n ast.Node) bool {
			if first && len(out) > 0 {
				return false
			}
			switch n := n.(type) {
			case *ast.AliasedExpr:
				if c, ok := unalias(n.Expr).(*ast.CaseExpr); ok {
					out = append(out, target{expr: c, alias: n.Alias})
					return false
				}
			case *ast.CaseExpr:
				out = append(out, target{expr: n})
				return false
			}
			return true
		})
		if first && len(out) > 0 {
			break
		}
	}
	return out
}

// Translate explains the first CASE expression found under node.
func Translate(node ast.Node, opts Options) (*Report, error) {
	return first(targets([]ast.Node{node}, true), opts)
}

// TranslateAll explains every top-level CASE expression under node.
func TranslateAll(node ast.Node, opts Options) ([]*Report, error) {
	return all(targets([]ast.Node{node}, false), opts)
}

// TranslateSQL parses sql, which may be a statement or a bare expression,
// and explains its first CASE expression.
func TranslateSQL(ctx context.Context, sql string, opts Options) (*Report, error) {
	nodes, err := parser.ParseSource(ctx, strings.NewReader(sql), parser.WithMaxDepth(opts.maxDepth()))
	if err != nil {
		return nil, err
	}
	return first(targets(nodes, true), opts)
}

// TranslateAllSQL parses sql and explains every top-level CASE expression.
func TranslateAllSQL(ctx context.Context, sql string, opts Options) ([]*Report, error) {
	nodes, err := parser.ParseSource(ctx, strings.NewReader(sql), parser.WithMaxDepth(opts.maxDepth()))
	if err != nil {
		return nil, err
	}
	return all(targets(nodes, false), opts)
}

func first(found []target, opts Options) (*Report, error) {
	if len(found) == 0 {
		return nil, ErrNoConditionalExpression
	}
	return Compose(found[0].expr, found[0].alias, opts)
}

func all(found []target, opts Options) ([]*Report, error) {
	if len(found) == 0 {
		return nil, ErrNoConditionalExpression
	}
	reports := make([]*Report, 0, len(found))
	for _, f := range found {
		r, err := Compose(f.expr, f.alias, opts)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", f.alias, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
