// Package parser implements a parser for SQL statements and expressions.
package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/lexer"
	"github.com/sqlc-dev/caseprose/token"
)

// MaxDepth is the default limit on expression nesting.
const MaxDepth = 256

// ErrTooDeep is reported when expressions nest beyond the configured limit.
var ErrTooDeep = errors.New("expression nested too deeply")

// ParseError reports every syntax error found in the input.
type ParseError struct {
	Errors []error
}

func (e *ParseError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "parse errors: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error {
	return e.Errors
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the expression nesting limit. Values <= 0 keep the default.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parser parses SQL statements.
type Parser struct {
	lexer    *lexer.Lexer
	current  lexer.Item
	peek     lexer.Item
	errors   []error
	depth    int
	maxDepth int
	tooDeep  bool
}

// New creates a new Parser from an io.Reader.
func New(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		lexer:    lexer.New(r),
		maxDepth: MaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.current = p.peek
	for {
		p.peek = p.lexer.NextToken()
		if p.peek.Token != token.COMMENT {
			break
		}
	}
}

func (p *Parser) currentIs(t token.Token) bool {
	return p.current.Token == t
}

func (p *Parser) peekIs(t token.Token) bool {
	return p.peek.Token == t
}

func (p *Parser) expect(t token.Token) bool {
	if p.currentIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s", t, p.describeCurrent())
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Errorf("%s at line %d, column %d",
		msg, p.current.Pos.Line, p.current.Pos.Column))
}

func (p *Parser) describeCurrent() string {
	switch p.current.Token {
	case token.IDENT, token.NUMBER, token.ILLEGAL:
		return fmt.Sprintf("%s %q", p.current.Token, p.current.Value)
	case token.STRING:
		return fmt.Sprintf("STRING '%s'", p.current.Value)
	}
	return p.current.Token.String()
}

func (p *Parser) err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return &ParseError{Errors: p.errors}
}

// Parse parses SQL statements from the input.
func Parse(ctx context.Context, r io.Reader, opts ...Option) ([]ast.Statement, error) {
	p := New(r, opts...)
	return p.ParseStatements(ctx)
}

// ParseString parses SQL statements from a string.
func ParseString(ctx context.Context, sql string, opts ...Option) ([]ast.Statement, error) {
	return Parse(ctx, strings.NewReader(sql), opts...)
}

// ParseFile parses SQL statements from the named file.
func ParseFile(ctx context.Context, name string, opts ...Option) ([]ast.Statement, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(ctx, f, opts...)
}

// ParseExpression parses a single expression, optionally followed by an alias
// and a semicolon, such as "CASE WHEN a > 0 THEN 1 END AS positive".
func ParseExpression(ctx context.Context, r io.Reader, opts ...Option) (ast.Expression, error) {
	p := New(r, opts...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	expr := p.parseExpression(LOWEST)
	if expr != nil {
		expr = p.parseImplicitAlias(expr)
	}
	for p.currentIs(token.SEMICOLON) {
		p.nextToken()
	}
	if !p.currentIs(token.EOF) {
		p.errorf("unexpected %s after expression", p.describeCurrent())
	}
	if err := p.err(); err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, &ParseError{Errors: []error{errors.New("empty input")}}
	}
	return expr, nil
}

// ParseSource parses either a list of statements or a comma-separated list
// of bare expressions, depending on how the input begins. Each returned node
// is an ast.Statement or an ast.Expression.
func ParseSource(ctx context.Context, r io.Reader, opts ...Option) ([]ast.Node, error) {
	p := New(r, opts...)
	switch p.current.Token {
	case token.SELECT, token.WITH, token.CREATE:
		stmts, err := p.ParseStatements(ctx)
		if err != nil {
			return nil, err
		}
		nodes := make([]ast.Node, len(stmts))
		for i, s := range stmts {
			nodes[i] = s
		}
		return nodes, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var nodes []ast.Node
	for _, e := range p.parseExpressionList() {
		nodes = append(nodes, e)
	}
	for p.currentIs(token.SEMICOLON) {
		p.nextToken()
	}
	if !p.currentIs(token.EOF) {
		p.errorf("unexpected %s after expression", p.describeCurrent())
	}
	if err := p.err(); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, &ParseError{Errors: []error{errors.New("empty input")}}
	}
	return nodes, nil
}

// ParseStatements parses multiple SQL statements.
func (p *Parser) ParseStatements(ctx context.Context) ([]ast.Statement, error) {
	var statements []ast.Statement

	for !p.currentIs(token.EOF) {
		select {
		case <-ctx.Done():
			return statements, ctx.Err()
		default:
		}

		start := p.current.Pos.Offset
		stmt := p.parseStatement()
		if stmt != nil {
			statements = append(statements, stmt)
		}

		// Skip semicolons between statements
		for p.currentIs(token.SEMICOLON) {
			p.nextToken()
		}

		// Never loop without consuming input
		if p.current.Pos.Offset == start && !p.currentIs(token.EOF) {
			p.nextToken()
		}
		if p.tooDeep {
			break
		}
	}

	if err := p.err(); err != nil {
		return statements, err
	}
	return statements, nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.current.Token {
	case token.SELECT, token.WITH:
		if q := p.parseSelectWithUnion(); q != nil {
			return q
		}
		return nil
	case token.LPAREN:
		if p.peekIs(token.SELECT) || p.peekIs(token.WITH) {
			p.nextToken()
			q := p.parseSelectWithUnion()
			p.expect(token.RPAREN)
			if q != nil {
				return q
			}
		}
		return nil
	case token.CREATE:
		if v := p.parseCreateView(); v != nil {
			return v
		}
		return nil
	default:
		p.errorf("unexpected %s", p.describeCurrent())
		p.nextToken()
		return nil
	}
}

// parseSelectWithUnion parses SELECT ... UNION ... queries
func (p *Parser) parseSelectWithUnion() *ast.SelectWithUnionQuery {
	query := &ast.SelectWithUnionQuery{
		Position: p.current.Pos,
	}

	sel := p.parseSelect()
	if sel == nil {
		return nil
	}
	query.Selects = append(query.Selects, sel)

	for p.currentIs(token.UNION) {
		p.nextToken() // skip UNION
		if p.currentIs(token.ALL) {
			query.UnionAll = true
			p.nextToken()
		} else if p.currentIs(token.DISTINCT) {
			p.nextToken()
		}
		sel := p.parseSelect()
		if sel == nil {
			break
		}
		query.Selects = append(query.Selects, sel)
	}

	return query
}

func (p *Parser) parseSelect() *ast.SelectQuery {
	sel := &ast.SelectQuery{
		Position: p.current.Pos,
	}

	if p.currentIs(token.WITH) {
		p.nextToken()
		sel.With = p.parseWithClause()
	}

	if !p.expect(token.SELECT) {
		return nil
	}

	if p.currentIs(token.DISTINCT) {
		sel.Distinct = true
		p.nextToken()
	} else if p.currentIs(token.ALL) {
		p.nextToken()
	}

	sel.Columns = p.parseExpressionList()

	if p.currentIs(token.FROM) {
		p.nextToken()
		sel.From = p.parseTables()
	}

	if p.currentIs(token.WHERE) {
		p.nextToken()
		sel.Where = p.parseExpression(LOWEST)
	}

	if p.currentIs(token.GROUP) {
		p.nextToken()
		if p.expect(token.BY) {
			sel.GroupBy = p.parseExpressionList()
		}
	}

	if p.currentIs(token.HAVING) {
		p.nextToken()
		sel.Having = p.parseExpression(LOWEST)
	}

	if p.currentIs(token.ORDER) {
		p.nextToken()
		if p.expect(token.BY) {
			sel.OrderBy = p.parseOrderByList()
		}
	}

	if p.currentIs(token.LIMIT) {
		p.nextToken()
		sel.Limit = p.parseExpression(LOWEST)
		// LIMIT offset, count
		if p.currentIs(token.COMMA) {
			p.nextToken()
			sel.Offset = sel.Limit
			sel.Limit = p.parseExpression(LOWEST)
		}
	}

	if p.currentIs(token.OFFSET) {
		p.nextToken()
		sel.Offset = p.parseExpression(LOWEST)
		// OFFSET n ROWS
		if p.currentIs(token.IDENT) && isRowsKeyword(p.current.Value) {
			p.nextToken()
		}
	}

	return sel
}

func isRowsKeyword(s string) bool {
	upper := strings.ToUpper(s)
	return upper == "ROW" || upper == "ROWS"
}

// parseWithClause parses "name AS (SELECT ...)" elements.
func (p *Parser) parseWithClause() []*ast.WithElement {
	var elements []*ast.WithElement

	for {
		elem := &ast.WithElement{Position: p.current.Pos}
		if !p.currentIs(token.IDENT) {
			p.errorf("expected common table expression name, got %s", p.describeCurrent())
			return elements
		}
		elem.Name = p.current.Value
		p.nextToken()

		if !p.expect(token.AS) || !p.expect(token.LPAREN) {
			return elements
		}
		elem.Query = p.parseSelectWithUnion()
		p.expect(token.RPAREN)
		elements = append(elements, elem)

		if !p.currentIs(token.COMMA) {
			return elements
		}
		p.nextToken()
	}
}

func (p *Parser) parseTables() []*ast.TableExpression {
	var tables []*ast.TableExpression

	first := p.parseTableExpression()
	if first == nil {
		return nil
	}
	tables = append(tables, first)

	for {
		pos := p.current.Pos
		var joinType ast.JoinType

		switch {
		case p.currentIs(token.COMMA):
			p.nextToken()
			joinType = ast.JoinComma
		case p.isJoinKeyword():
			joinType = p.parseJoinType()
			if !p.expect(token.JOIN) {
				return tables
			}
		default:
			return tables
		}

		table := p.parseTableExpression()
		if table == nil {
			return tables
		}
		table.Join = &ast.TableJoin{Position: pos, Type: joinType}

		if p.currentIs(token.ON) {
			p.nextToken()
			table.Join.On = p.parseExpression(LOWEST)
		} else if p.currentIs(token.USING) {
			p.nextToken()
			if p.currentIs(token.LPAREN) {
				p.nextToken()
				table.Join.Using = p.parseExpressionList()
				p.expect(token.RPAREN)
			} else {
				table.Join.Using = p.parseExpressionList()
			}
		}
		tables = append(tables, table)
	}
}

func (p *Parser) isJoinKeyword() bool {
	switch p.current.Token {
	case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL, token.CROSS:
		return true
	}
	return false
}

func (p *Parser) parseJoinType() ast.JoinType {
	joinType := ast.JoinInner
	switch p.current.Token {
	case token.INNER:
		p.nextToken()
	case token.LEFT:
		joinType = ast.JoinLeft
		p.nextToken()
	case token.RIGHT:
		joinType = ast.JoinRight
		p.nextToken()
	case token.FULL:
		joinType = ast.JoinFull
		p.nextToken()
	case token.CROSS:
		joinType = ast.JoinCross
		p.nextToken()
	}
	if p.currentIs(token.OUTER) {
		p.nextToken()
	}
	return joinType
}

func (p *Parser) parseTableExpression() *ast.TableExpression {
	table := &ast.TableExpression{
		Position: p.current.Pos,
	}

	switch {
	case p.currentIs(token.LPAREN) && (p.peekIs(token.SELECT) || p.peekIs(token.WITH)):
		pos := p.current.Pos
		p.nextToken()
		q := p.parseSelectWithUnion()
		p.expect(token.RPAREN)
		table.Table = &ast.Subquery{Position: pos, Query: q}
	case p.currentIs(token.IDENT):
		table.Table = p.parseIdentifierOrFunction()
	default:
		p.errorf("expected table, got %s", p.describeCurrent())
		return nil
	}

	if p.currentIs(token.AS) {
		p.nextToken()
		if p.currentIs(token.IDENT) {
			table.Alias = p.current.Value
			p.nextToken()
		} else {
			p.errorf("expected table alias, got %s", p.describeCurrent())
		}
	} else if p.currentIs(token.IDENT) {
		table.Alias = p.current.Value
		p.nextToken()
	}

	return table
}

func (p *Parser) parseOrderByList() []*ast.OrderByElement {
	var elements []*ast.OrderByElement

	for {
		elem := &ast.OrderByElement{
			Position:   p.current.Pos,
			Expression: p.parseExpression(LOWEST),
		}
		if elem.Expression == nil {
			return elements
		}

		if p.currentIs(token.DESC) {
			elem.Descending = true
			p.nextToken()
		} else if p.currentIs(token.ASC) {
			p.nextToken()
		}

		if p.currentIs(token.NULLS) {
			p.nextToken()
			first := p.currentIs(token.FIRST)
			if first || p.currentIs(token.LAST) {
				elem.NullsFirst = &first
				p.nextToken()
			} else {
				p.errorf("expected FIRST or LAST, got %s", p.describeCurrent())
			}
		}

		elements = append(elements, elem)

		if !p.currentIs(token.COMMA) {
			return elements
		}
		p.nextToken()
	}
}

// parseCreateView parses CREATE [OR REPLACE] [MATERIALIZED] VIEW [IF NOT EXISTS] name AS SELECT ...
func (p *Parser) parseCreateView() *ast.CreateViewQuery {
	create := &ast.CreateViewQuery{
		Position: p.current.Pos,
	}
	p.nextToken() // skip CREATE

	if p.currentIs(token.OR) {
		p.nextToken()
		if !p.expect(token.REPLACE) {
			return nil
		}
		create.OrReplace = true
	}

	if p.currentIs(token.MATERIALIZED) {
		create.Materialized = true
		p.nextToken()
	}

	if !p.expect(token.VIEW) {
		return nil
	}

	if p.currentIs(token.IF) {
		p.nextToken()
		if !p.expect(token.NOT) || !p.expect(token.EXISTS) {
			return nil
		}
		create.IfNotExists = true
	}

	if !p.currentIs(token.IDENT) {
		p.errorf("expected view name, got %s", p.describeCurrent())
		return nil
	}
	name := p.parseIdentifierOrFunction()
	if ident, ok := name.(*ast.Identifier); ok {
		create.Name = ident.Name()
	} else {
		p.errorf("expected view name")
		return nil
	}

	if !p.expect(token.AS) {
		return nil
	}

	if p.currentIs(token.LPAREN) {
		p.nextToken()
		create.Select = p.parseSelectWithUnion()
		p.expect(token.RPAREN)
	} else {
		create.Select = p.parseSelectWithUnion()
	}
	if create.Select == nil {
		return nil
	}
	return create
}
