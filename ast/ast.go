// Package ast defines the abstract syntax tree for SQL statements and the
// expressions nested inside them.
package ast

import (
	"strings"

	"github.com/sqlc-dev/caseprose/token"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Statement is the interface implemented by all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Expression is the interface implemented by all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// -----------------------------------------------------------------------------
// Statements

// SelectWithUnionQuery represents a SELECT query possibly with UNION.
type SelectWithUnionQuery struct {
	Position token.Position `json:"-"`
	Selects  []*SelectQuery `json:"selects"`
	UnionAll bool           `json:"union_all,omitempty"`
}

func (s *SelectWithUnionQuery) Pos() token.Position { return s.Position }
func (s *SelectWithUnionQuery) End() token.Position { return s.Position }
func (s *SelectWithUnionQuery) statementNode()      {}

// SelectQuery represents a SELECT statement.
type SelectQuery struct {
	Position token.Position    `json:"-"`
	With     []*WithElement    `json:"with,omitempty"`
	Distinct bool              `json:"distinct,omitempty"`
	Columns  []Expression      `json:"columns"`
	From     []*TableExpression `json:"from,omitempty"`
	Where    Expression        `json:"where,omitempty"`
	GroupBy  []Expression      `json:"group_by,omitempty"`
	Having   Expression        `json:"having,omitempty"`
	OrderBy  []*OrderByElement `json:"order_by,omitempty"`
	Limit    Expression        `json:"limit,omitempty"`
	Offset   Expression        `json:"offset,omitempty"`
}

func (s *SelectQuery) Pos() token.Position { return s.Position }
func (s *SelectQuery) End() token.Position { return s.Position }
func (s *SelectQuery) statementNode()      {}

// CreateViewQuery represents CREATE [OR REPLACE] [MATERIALIZED] VIEW name AS SELECT.
type CreateViewQuery struct {
	Position     token.Position        `json:"-"`
	OrReplace    bool                  `json:"or_replace,omitempty"`
	Materialized bool                  `json:"materialized,omitempty"`
	IfNotExists  bool                  `json:"if_not_exists,omitempty"`
	Name         string                `json:"name"`
	Select       *SelectWithUnionQuery `json:"select"`
}

func (c *CreateViewQuery) Pos() token.Position { return c.Position }
func (c *CreateViewQuery) End() token.Position { return c.Position }
func (c *CreateViewQuery) statementNode()      {}

// WithElement represents a common table expression.
type WithElement struct {
	Position token.Position        `json:"-"`
	Name     string                `json:"name"`
	Query    *SelectWithUnionQuery `json:"query"`
}

func (w *WithElement) Pos() token.Position { return w.Position }
func (w *WithElement) End() token.Position { return w.Position }

// TableExpression represents one table reference in a FROM clause, together
// with the join that attaches it to the tables before it.
type TableExpression struct {
	Position token.Position `json:"-"`
	Table    Expression     `json:"table"` // Identifier, Subquery, or FunctionCall
	Alias    string         `json:"alias,omitempty"`
	Join     *TableJoin     `json:"join,omitempty"`
}

func (t *TableExpression) Pos() token.Position { return t.Position }
func (t *TableExpression) End() token.Position { return t.Position }

// TableJoin represents a JOIN clause.
type TableJoin struct {
	Position token.Position `json:"-"`
	Type     JoinType       `json:"type"`
	On       Expression     `json:"on,omitempty"`
	Using    []Expression   `json:"using,omitempty"`
}

func (t *TableJoin) Pos() token.Position { return t.Position }
func (t *TableJoin) End() token.Position { return t.Position }

// JoinType represents the type of join.
type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
	JoinComma JoinType = "COMMA"
)

// OrderByElement represents an ORDER BY element.
type OrderByElement struct {
	Position   token.Position `json:"-"`
	Expression Expression     `json:"expression"`
	Descending bool           `json:"descending,omitempty"`
	NullsFirst *bool          `json:"nulls_first,omitempty"`
}

func (o *OrderByElement) Pos() token.Position { return o.Position }
func (o *OrderByElement) End() token.Position { return o.Position }

// -----------------------------------------------------------------------------
// Expressions

// Identifier represents a (possibly qualified) column reference.
type Identifier struct {
	Position token.Position `json:"-"`
	Parts    []string       `json:"parts"` // e.g., ["db", "table", "column"] for db.table.column
	Quoted   bool           `json:"quoted,omitempty"`
}

func (i *Identifier) Pos() token.Position { return i.Position }
func (i *Identifier) End() token.Position { return i.Position }
func (i *Identifier) expressionNode()     {}

// Name returns the full identifier name.
func (i *Identifier) Name() string {
	return strings.Join(i.Parts, ".")
}

// Literal represents a literal value.
type Literal struct {
	Position token.Position `json:"-"`
	Type     LiteralType    `json:"type"`
	Value    interface{}    `json:"value"`
	// Source is the literal as written, for numbers whose parsed value
	// would print differently (1.50, 1e3, 0x1F).
	Source string `json:"source,omitempty"`
}

func (l *Literal) Pos() token.Position { return l.Position }
func (l *Literal) End() token.Position { return l.Position }
func (l *Literal) expressionNode()     {}

// LiteralType represents the type of a literal.
type LiteralType string

const (
	LiteralString  LiteralType = "String"
	LiteralInteger LiteralType = "Integer"
	LiteralFloat   LiteralType = "Float"
	LiteralBoolean LiteralType = "Boolean"
	LiteralNull    LiteralType = "Null"
	LiteralArray   LiteralType = "Array"
	LiteralTuple   LiteralType = "Tuple"
)

// Asterisk represents a * or table.*.
type Asterisk struct {
	Position token.Position `json:"-"`
	Table    string         `json:"table,omitempty"`
}

func (a *Asterisk) Pos() token.Position { return a.Position }
func (a *Asterisk) End() token.Position { return a.Position }
func (a *Asterisk) expressionNode()     {}

// FunctionCall represents a function call.
type FunctionCall struct {
	Position  token.Position `json:"-"`
	Name      string         `json:"name"`
	Arguments []Expression   `json:"arguments,omitempty"`
	Distinct  bool           `json:"distinct,omitempty"`
	Over      *WindowSpec    `json:"over,omitempty"`
}

func (f *FunctionCall) Pos() token.Position { return f.Position }
func (f *FunctionCall) End() token.Position { return f.Position }
func (f *FunctionCall) expressionNode()     {}

// WindowSpec represents a window specification.
type WindowSpec struct {
	Position    token.Position    `json:"-"`
	Name        string            `json:"name,omitempty"`
	PartitionBy []Expression      `json:"partition_by,omitempty"`
	OrderBy     []*OrderByElement `json:"order_by,omitempty"`
	Frame       string            `json:"frame,omitempty"` // frame clause as written, e.g. "ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW"
}

func (w *WindowSpec) Pos() token.Position { return w.Position }
func (w *WindowSpec) End() token.Position { return w.Position }

// BinaryExpr represents a binary expression. Op holds the operator as written
// for symbols and upper-cased for keywords (AND, OR, DIV, MOD).
type BinaryExpr struct {
	Position token.Position `json:"-"`
	Left     Expression     `json:"left"`
	Op       string         `json:"op"`
	Right    Expression     `json:"right"`
	// Parenthesized records that the source wrapped the expression in ( ).
	Parenthesized bool `json:"parenthesized,omitempty"`
}

func (b *BinaryExpr) Pos() token.Position { return b.Position }
func (b *BinaryExpr) End() token.Position { return b.Position }
func (b *BinaryExpr) expressionNode()     {}

// UnaryExpr represents a unary expression (-x, +x, NOT x).
type UnaryExpr struct {
	Position token.Position `json:"-"`
	Op       string         `json:"op"`
	Operand  Expression     `json:"operand"`
}

func (u *UnaryExpr) Pos() token.Position { return u.Position }
func (u *UnaryExpr) End() token.Position { return u.Position }
func (u *UnaryExpr) expressionNode()     {}

// Subquery represents a parenthesized SELECT used as an expression or table.
type Subquery struct {
	Position token.Position        `json:"-"`
	Query    *SelectWithUnionQuery `json:"query"`
}

func (s *Subquery) Pos() token.Position { return s.Position }
func (s *Subquery) End() token.Position { return s.Position }
func (s *Subquery) expressionNode()     {}

// CaseExpr represents a CASE expression.
type CaseExpr struct {
	Position token.Position `json:"-"`
	Operand  Expression     `json:"operand,omitempty"` // for CASE x WHEN ...
	Whens    []*WhenClause  `json:"whens"`
	Else     Expression     `json:"else,omitempty"`
}

func (c *CaseExpr) Pos() token.Position { return c.Position }
func (c *CaseExpr) End() token.Position { return c.Position }
func (c *CaseExpr) expressionNode()     {}

// WhenClause represents a WHEN clause in a CASE expression.
type WhenClause struct {
	Position  token.Position `json:"-"`
	Condition Expression     `json:"condition"`
	Result    Expression     `json:"result"`
}

func (w *WhenClause) Pos() token.Position { return w.Position }
func (w *WhenClause) End() token.Position { return w.Position }

// DataType represents a data type.
type DataType struct {
	Position   token.Position `json:"-"`
	Name       string         `json:"name"`
	Parameters []Expression   `json:"parameters,omitempty"`
}

func (d *DataType) Pos() token.Position { return d.Position }
func (d *DataType) End() token.Position { return d.Position }
func (d *DataType) expressionNode()     {}

// CastExpr represents a CAST expression.
type CastExpr struct {
	Position       token.Position `json:"-"`
	Expr           Expression     `json:"expr"`
	Type           *DataType      `json:"type"`
	OperatorSyntax bool           `json:"operator_syntax,omitempty"` // true if using :: syntax
}

func (c *CastExpr) Pos() token.Position { return c.Position }
func (c *CastExpr) End() token.Position { return c.Position }
func (c *CastExpr) expressionNode()     {}

// IntervalExpr represents an INTERVAL expression.
type IntervalExpr struct {
	Position token.Position `json:"-"`
	Value    Expression     `json:"value"`
	Unit     string         `json:"unit"` // YEAR, MONTH, DAY, HOUR, MINUTE, SECOND, etc.
}

func (i *IntervalExpr) Pos() token.Position { return i.Position }
func (i *IntervalExpr) End() token.Position { return i.Position }
func (i *IntervalExpr) expressionNode()     {}

// ArrayAccess represents array element access.
type ArrayAccess struct {
	Position token.Position `json:"-"`
	Array    Expression     `json:"array"`
	Index    Expression     `json:"index"`
}

func (a *ArrayAccess) Pos() token.Position { return a.Position }
func (a *ArrayAccess) End() token.Position { return a.Position }
func (a *ArrayAccess) expressionNode()     {}

// AliasedExpr represents an expression with an alias.
type AliasedExpr struct {
	Position token.Position `json:"-"`
	Expr     Expression     `json:"expr"`
	Alias    string         `json:"alias"`
}

func (a *AliasedExpr) Pos() token.Position { return a.Position }
func (a *AliasedExpr) End() token.Position { return a.Position }
func (a *AliasedExpr) expressionNode()     {}

// BetweenExpr represents a BETWEEN expression.
type BetweenExpr struct {
	Position token.Position `json:"-"`
	Expr     Expression     `json:"expr"`
	Not      bool           `json:"not,omitempty"`
	Low      Expression     `json:"low"`
	High     Expression     `json:"high"`
}

func (b *BetweenExpr) Pos() token.Position { return b.Position }
func (b *BetweenExpr) End() token.Position { return b.Position }
func (b *BetweenExpr) expressionNode()     {}

// InExpr represents an IN expression.
type InExpr struct {
	Position token.Position        `json:"-"`
	Expr     Expression            `json:"expr"`
	Not      bool                  `json:"not,omitempty"`
	List     []Expression          `json:"list,omitempty"`
	Query    *SelectWithUnionQuery `json:"query,omitempty"`
}

func (i *InExpr) Pos() token.Position { return i.Position }
func (i *InExpr) End() token.Position { return i.Position }
func (i *InExpr) expressionNode()     {}

// IsNullExpr represents an IS NULL or IS NOT NULL expression.
type IsNullExpr struct {
	Position token.Position `json:"-"`
	Expr     Expression     `json:"expr"`
	Not      bool           `json:"not,omitempty"`
}

func (i *IsNullExpr) Pos() token.Position { return i.Position }
func (i *IsNullExpr) End() token.Position { return i.Position }
func (i *IsNullExpr) expressionNode()     {}

// LikeExpr represents a LIKE or ILIKE expression.
type LikeExpr struct {
	Position        token.Position `json:"-"`
	Expr            Expression     `json:"expr"`
	Not             bool           `json:"not,omitempty"`
	CaseInsensitive bool           `json:"case_insensitive,omitempty"` // true for ILIKE
	Pattern         Expression     `json:"pattern"`
}

func (l *LikeExpr) Pos() token.Position { return l.Position }
func (l *LikeExpr) End() token.Position { return l.Position }
func (l *LikeExpr) expressionNode()     {}

// ExistsExpr represents an EXISTS expression.
type ExistsExpr struct {
	Position token.Position        `json:"-"`
	Query    *SelectWithUnionQuery `json:"query"`
}

func (e *ExistsExpr) Pos() token.Position { return e.Position }
func (e *ExistsExpr) End() token.Position { return e.Position }
func (e *ExistsExpr) expressionNode()     {}
