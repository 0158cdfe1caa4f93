package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/token"
)

// Operator precedence levels
const (
	LOWEST      = iota
	ALIAS_PREC  // AS
	OR_PREC     // OR
	AND_PREC    // AND
	NOT_PREC    // NOT
	COMPARE     // =, !=, <, >, <=, >=, LIKE, IN, BETWEEN, IS
	CONCAT_PREC // ||
	ADD_PREC    // +, -
	MUL_PREC    // *, /, %
	UNARY       // -x
	CALL        // array[], ::
	HIGHEST
)

func (p *Parser) precedence(tok token.Token) int {
	switch tok {
	case token.AS:
		return ALIAS_PREC
	case token.OR:
		return OR_PREC
	case token.AND:
		return AND_PREC
	case token.NOT:
		return NOT_PREC
	case token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE,
		token.LIKE, token.ILIKE, token.REGEXP, token.IN, token.BETWEEN, token.IS,
		token.NULL_SAFE_EQ:
		return COMPARE
	case token.CONCAT:
		return CONCAT_PREC
	case token.PLUS, token.MINUS:
		return ADD_PREC
	case token.ASTERISK, token.SLASH, token.PERCENT, token.DIV, token.MOD:
		return MUL_PREC
	case token.LBRACKET, token.COLONCOLON:
		return CALL
	default:
		return LOWEST
	}
}

func (p *Parser) parseExpressionList() []ast.Expression {
	var exprs []ast.Expression

	if p.currentIs(token.RPAREN) || p.currentIs(token.EOF) {
		return exprs
	}

	for {
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return exprs
		}
		// Handle implicit alias (identifier without AS)
		exprs = append(exprs, p.parseImplicitAlias(expr))

		if !p.currentIs(token.COMMA) {
			return exprs
		}
		p.nextToken()
	}
}

// parseArgumentList parses function arguments, where aliases are not allowed.
func (p *Parser) parseArgumentList() []ast.Expression {
	var exprs []ast.Expression

	for !p.currentIs(token.RPAREN) && !p.currentIs(token.EOF) {
		expr := p.parseExpression(ALIAS_PREC)
		if expr == nil {
			return exprs
		}
		exprs = append(exprs, expr)

		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	return exprs
}

func (p *Parser) parseImplicitAlias(expr ast.Expression) ast.Expression {
	// Keywords like FROM, WHERE etc. are tokenized as their own token types, not IDENT
	if !p.currentIs(token.IDENT) {
		return expr
	}
	if _, ok := expr.(*ast.AliasedExpr); ok {
		return expr
	}
	alias := p.current.Value
	p.nextToken()
	return &ast.AliasedExpr{
		Position: expr.Pos(),
		Expr:     expr,
		Alias:    alias,
	}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	if p.tooDeep {
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.errors = append(p.errors, fmt.Errorf("%w (limit %d) at line %d, column %d",
			ErrTooDeep, p.maxDepth, p.current.Pos.Line, p.current.Pos.Column))
		p.tooDeep = true
		return nil
	}

	left := p.parsePrefixExpression()
	if left == nil {
		return nil
	}

	for !p.currentIs(token.EOF) && precedence < p.precedence(p.current.Token) {
		left = p.parseInfixExpression(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	switch p.current.Token {
	case token.IDENT:
		return p.parseIdentifierOrFunction()
	case token.NUMBER:
		return p.parseNumber()
	case token.STRING:
		return p.parseString()
	case token.TRUE, token.FALSE:
		return p.parseBoolean()
	case token.NULL:
		return p.parseNull()
	case token.MINUS, token.PLUS:
		return p.parseUnarySign()
	case token.NOT:
		return p.parseNot()
	case token.LPAREN:
		return p.parseGroupedOrTuple()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.ASTERISK:
		return p.parseAsterisk()
	case token.CASE:
		return p.parseCase()
	case token.CAST:
		return p.parseCast()
	case token.INTERVAL:
		return p.parseInterval()
	case token.EXISTS:
		return p.parseExists()
	case token.TRIM:
		return p.parseTrim()
	case token.IF:
		return p.parseIfFunction()
	default:
		// Keywords such as LEFT, RIGHT and REPLACE double as function names
		if p.current.Token.IsKeyword() && p.peekIs(token.LPAREN) {
			return p.parseKeywordAsFunction()
		}
		if isSoftKeyword(p.current.Token) {
			return p.parseKeywordAsIdentifier()
		}
		p.errorf("unexpected %s in expression", p.describeCurrent())
		return nil
	}
}

// isSoftKeyword reports whether a keyword may also name a column.
func isSoftKeyword(tok token.Token) bool {
	switch tok {
	case token.FIRST, token.LAST, token.VIEW, token.MATERIALIZED, token.NULLS,
		token.LEADING, token.TRAILING, token.BOTH:
		return true
	}
	return false
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	switch p.current.Token {
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE,
		token.AND, token.OR, token.CONCAT, token.DIV, token.MOD, token.NULL_SAFE_EQ:
		return p.parseBinaryExpression(left)
	case token.LIKE, token.ILIKE:
		return p.parseLikeExpression(left, false)
	case token.REGEXP:
		return p.parseRegexpExpression(left, false)
	case token.NOT:
		// NOT IN, NOT LIKE, NOT BETWEEN, NOT REGEXP
		p.nextToken()
		switch p.current.Token {
		case token.IN:
			return p.parseInExpression(left, true)
		case token.LIKE, token.ILIKE:
			return p.parseLikeExpression(left, true)
		case token.REGEXP:
			return p.parseRegexpExpression(left, true)
		case token.BETWEEN:
			return p.parseBetweenExpression(left, true)
		default:
			p.errorf("expected IN, LIKE, ILIKE, REGEXP or BETWEEN after NOT, got %s", p.describeCurrent())
			return nil
		}
	case token.IN:
		return p.parseInExpression(left, false)
	case token.BETWEEN:
		return p.parseBetweenExpression(left, false)
	case token.IS:
		return p.parseIsExpression(left)
	case token.LBRACKET:
		return p.parseArrayAccess(left)
	case token.AS:
		return p.parseAlias(left)
	case token.COLONCOLON:
		return p.parseCastOperator(left)
	default:
		return left
	}
}

func (p *Parser) parseIdentifierOrFunction() ast.Expression {
	pos := p.current.Pos
	name := p.current.Value
	quoted := p.current.Quoted
	p.nextToken()

	// Check for function call
	if p.currentIs(token.LPAREN) && !quoted {
		return p.parseFunctionCall(name, pos)
	}

	// Check for qualified identifier (a.b.c)
	parts := []string{name}
	for p.currentIs(token.DOT) {
		p.nextToken()
		if p.currentIs(token.IDENT) || p.current.Token.IsKeyword() {
			parts = append(parts, p.current.Value)
			quoted = quoted || p.current.Quoted
			p.nextToken()
		} else if p.currentIs(token.ASTERISK) {
			// table.*
			p.nextToken()
			return &ast.Asterisk{
				Position: pos,
				Table:    strings.Join(parts, "."),
			}
		} else {
			p.errorf("expected identifier after '.', got %s", p.describeCurrent())
			return nil
		}
	}

	// Check for function call after qualified name
	if p.currentIs(token.LPAREN) {
		return p.parseFunctionCall(strings.Join(parts, "."), pos)
	}

	return &ast.Identifier{
		Position: pos,
		Parts:    parts,
		Quoted:   quoted,
	}
}

func (p *Parser) parseFunctionCall(name string, pos token.Position) *ast.FunctionCall {
	fn := &ast.FunctionCall{
		Position: pos,
		Name:     name,
	}

	p.nextToken() // skip (

	// Handle DISTINCT
	if p.currentIs(token.DISTINCT) {
		fn.Distinct = true
		p.nextToken()
	}

	if !p.currentIs(token.RPAREN) {
		fn.Arguments = p.parseArgumentList()
	}

	p.expect(token.RPAREN)

	// Handle IGNORE NULLS / RESPECT NULLS (window function modifiers)
	if p.currentIs(token.IDENT) {
		upper := strings.ToUpper(p.current.Value)
		if (upper == "IGNORE" || upper == "RESPECT") && p.peekIs(token.NULLS) {
			p.nextToken()
			p.nextToken()
		}
	}

	// Handle OVER clause for window functions
	if p.currentIs(token.OVER) {
		p.nextToken()
		fn.Over = p.parseWindowSpec()
	}

	return fn
}

func (p *Parser) parseWindowSpec() *ast.WindowSpec {
	spec := &ast.WindowSpec{
		Position: p.current.Pos,
	}

	if p.currentIs(token.IDENT) {
		// Window name reference
		spec.Name = p.current.Value
		p.nextToken()
		return spec
	}

	if !p.expect(token.LPAREN) {
		return spec
	}

	// Parse PARTITION BY
	if p.currentIs(token.PARTITION) {
		p.nextToken()
		if p.expect(token.BY) {
			spec.PartitionBy = p.parseArgumentList()
		}
	}

	// Parse ORDER BY
	if p.currentIs(token.ORDER) {
		p.nextToken()
		if p.expect(token.BY) {
			spec.OrderBy = p.parseOrderByList()
		}
	}

	// Parse frame specification
	if p.currentIs(token.IDENT) {
		frameType := strings.ToUpper(p.current.Value)
		if frameType == "ROWS" || frameType == "RANGE" || frameType == "GROUPS" {
			spec.Frame = p.parseWindowFrame()
		}
	}

	p.expect(token.RPAREN)
	return spec
}

// parseWindowFrame keeps the frame clause as written, normalized to single
// spaces between words.
func (p *Parser) parseWindowFrame() string {
	var words []string
	for !p.currentIs(token.RPAREN) && !p.currentIs(token.EOF) {
		word := p.current.Value
		if p.current.Token.IsKeyword() || p.currentIs(token.IDENT) {
			word = strings.ToUpper(word)
		}
		words = append(words, word)
		p.nextToken()
	}
	return strings.Join(words, " ")
}

func (p *Parser) parseNumber() ast.Expression {
	lit := &ast.Literal{
		Position: p.current.Pos,
		Source:   p.current.Value,
	}

	value := strings.ReplaceAll(p.current.Value, "_", "")
	p.nextToken()

	isHex := strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X")

	// Check if it's a float
	if !isHex && (strings.Contains(value, ".") || strings.ContainsAny(value, "eE")) {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			p.errorf("invalid number %q", lit.Source)
			return nil
		}
		lit.Type = ast.LiteralFloat
		lit.Value = f
		return lit
	}

	base, digits := 10, value
	if isHex {
		base, digits = 16, value[2:]
	}
	// Try signed int64 first
	i, err := strconv.ParseInt(digits, base, 64)
	if err == nil {
		lit.Type = ast.LiteralInteger
		lit.Value = i
		return lit
	}
	// Try unsigned uint64 for large positive numbers
	u, err := strconv.ParseUint(digits, base, 64)
	if err == nil {
		lit.Type = ast.LiteralInteger
		lit.Value = u
		return lit
	}
	// Too large for any integer type; keep the digits
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || isHex {
		p.errorf("invalid number %q", lit.Source)
		return nil
	}
	lit.Type = ast.LiteralFloat
	lit.Value = f
	return lit
}

func (p *Parser) parseString() ast.Expression {
	lit := &ast.Literal{
		Position: p.current.Pos,
		Type:     ast.LiteralString,
		Value:    p.current.Value,
	}
	p.nextToken()
	return lit
}

func (p *Parser) parseBoolean() ast.Expression {
	lit := &ast.Literal{
		Position: p.current.Pos,
		Type:     ast.LiteralBoolean,
		Value:    p.current.Token == token.TRUE,
	}
	p.nextToken()
	return lit
}

func (p *Parser) parseNull() ast.Expression {
	lit := &ast.Literal{
		Position: p.current.Pos,
		Type:     ast.LiteralNull,
		Value:    nil,
	}
	p.nextToken()
	return lit
}

func (p *Parser) parseUnarySign() ast.Expression {
	expr := &ast.UnaryExpr{
		Position: p.current.Pos,
		Op:       p.current.Value,
	}
	p.nextToken()
	expr.Operand = p.parseExpression(UNARY)
	if expr.Operand == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseNot() ast.Expression {
	expr := &ast.UnaryExpr{
		Position: p.current.Pos,
		Op:       "NOT",
	}
	p.nextToken()
	expr.Operand = p.parseExpression(NOT_PREC)
	if expr.Operand == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedOrTuple() ast.Expression {
	pos := p.current.Pos
	p.nextToken() // skip (

	// Handle empty tuple ()
	if p.currentIs(token.RPAREN) {
		p.nextToken()
		return &ast.Literal{
			Position: pos,
			Type:     ast.LiteralTuple,
			Value:    []ast.Expression{},
		}
	}

	// Check for subquery
	if p.currentIs(token.SELECT) || p.currentIs(token.WITH) {
		subquery := p.parseSelectWithUnion()
		p.expect(token.RPAREN)
		if subquery == nil {
			return nil
		}
		return &ast.Subquery{
			Position: pos,
			Query:    subquery,
		}
	}

	// Parse first expression
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	// Check if it's a tuple
	if p.currentIs(token.COMMA) {
		elements := []ast.Expression{first}
		for p.currentIs(token.COMMA) {
			p.nextToken()
			elem := p.parseExpression(LOWEST)
			if elem == nil {
				return nil
			}
			elements = append(elements, elem)
		}
		p.expect(token.RPAREN)
		return &ast.Literal{
			Position: pos,
			Type:     ast.LiteralTuple,
			Value:    elements,
		}
	}

	p.expect(token.RPAREN)

	// Remember the grouping so it survives re-printing
	if bin, ok := first.(*ast.BinaryExpr); ok {
		bin.Parenthesized = true
	}
	return first
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.Literal{
		Position: p.current.Pos,
		Type:     ast.LiteralArray,
	}
	p.nextToken() // skip [

	elements := []ast.Expression{}
	for !p.currentIs(token.RBRACKET) && !p.currentIs(token.EOF) {
		elem := p.parseExpression(ALIAS_PREC)
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)
		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	lit.Value = elements

	p.expect(token.RBRACKET)
	return lit
}

func (p *Parser) parseAsterisk() ast.Expression {
	asterisk := &ast.Asterisk{
		Position: p.current.Pos,
	}
	p.nextToken()
	return asterisk
}

func (p *Parser) parseCase() ast.Expression {
	expr := &ast.CaseExpr{
		Position: p.current.Pos,
	}
	p.nextToken() // skip CASE

	// Check for CASE operand (simple CASE)
	if !p.currentIs(token.WHEN) {
		expr.Operand = p.parseExpression(LOWEST)
		if expr.Operand == nil {
			return nil
		}
	}

	// Parse WHEN clauses
	for p.currentIs(token.WHEN) {
		when := &ast.WhenClause{
			Position: p.current.Pos,
		}
		p.nextToken() // skip WHEN

		when.Condition = p.parseExpression(LOWEST)
		if when.Condition == nil {
			return nil
		}

		if !p.expect(token.THEN) {
			return nil
		}

		when.Result = p.parseExpression(LOWEST)
		if when.Result == nil {
			return nil
		}
		expr.Whens = append(expr.Whens, when)
	}

	if len(expr.Whens) == 0 {
		p.errorf("expected WHEN, got %s", p.describeCurrent())
		return nil
	}

	// Parse ELSE clause
	if p.currentIs(token.ELSE) {
		p.nextToken()
		expr.Else = p.parseExpression(LOWEST)
		if expr.Else == nil {
			return nil
		}
	}

	if !p.expect(token.END) {
		return nil
	}

	return expr
}

func (p *Parser) parseCast() ast.Expression {
	expr := &ast.CastExpr{
		Position: p.current.Pos,
	}
	p.nextToken() // skip CAST

	if !p.expect(token.LPAREN) {
		return nil
	}

	// Use ALIAS_PREC to avoid consuming AS as an alias operator
	expr.Expr = p.parseExpression(ALIAS_PREC)
	if expr.Expr == nil {
		return nil
	}

	if !p.expect(token.AS) {
		return nil
	}
	expr.Type = p.parseDataType()
	if expr.Type == nil {
		return nil
	}

	p.expect(token.RPAREN)

	return expr
}

// parseDataType parses a type name with optional parameters, such as
// INT, DECIMAL(10, 2) or DOUBLE PRECISION.
func (p *Parser) parseDataType() *ast.DataType {
	if !p.currentIs(token.IDENT) && !p.current.Token.IsKeyword() {
		p.errorf("expected data type, got %s", p.describeCurrent())
		return nil
	}

	dt := &ast.DataType{
		Position: p.current.Pos,
		Name:     p.current.Value,
	}
	p.nextToken()

	// Multi-word type names
	if p.currentIs(token.IDENT) {
		switch strings.ToUpper(p.current.Value) {
		case "PRECISION", "VARYING":
			dt.Name += " " + p.current.Value
			p.nextToken()
		}
	}

	if p.currentIs(token.LPAREN) {
		p.nextToken()
		dt.Parameters = p.parseArgumentList()
		p.expect(token.RPAREN)
	}

	return dt
}

func (p *Parser) parseInterval() ast.Expression {
	expr := &ast.IntervalExpr{
		Position: p.current.Pos,
	}
	p.nextToken() // skip INTERVAL

	expr.Value = p.parseExpression(CALL)
	if expr.Value == nil {
		return nil
	}

	// Parse unit
	if p.currentIs(token.IDENT) {
		expr.Unit = strings.ToUpper(p.current.Value)
		p.nextToken()
	}

	return expr
}

func (p *Parser) parseExists() ast.Expression {
	expr := &ast.ExistsExpr{
		Position: p.current.Pos,
	}
	p.nextToken() // skip EXISTS

	if !p.expect(token.LPAREN) {
		return nil
	}

	expr.Query = p.parseSelectWithUnion()
	if expr.Query == nil {
		return nil
	}

	p.expect(token.RPAREN)

	return expr
}

// parseTrim rewrites TRIM([LEADING|TRAILING|BOTH] [chars] FROM s) into the
// trimLeft, trimRight and trim functions.
func (p *Parser) parseTrim() ast.Expression {
	pos := p.current.Pos
	p.nextToken() // skip TRIM

	if !p.expect(token.LPAREN) {
		return nil
	}

	fnName := "trim"
	switch p.current.Token {
	case token.LEADING:
		fnName = "trimLeft"
		p.nextToken()
	case token.TRAILING:
		fnName = "trimRight"
		p.nextToken()
	case token.BOTH:
		p.nextToken()
	}

	// Parse characters to trim (if specified)
	var trimChars ast.Expression
	if !p.currentIs(token.FROM) && !p.currentIs(token.RPAREN) {
		trimChars = p.parseExpression(ALIAS_PREC)
	}

	// FROM clause
	var expr ast.Expression
	if p.currentIs(token.FROM) {
		p.nextToken()
		expr = p.parseExpression(ALIAS_PREC)
	} else if p.currentIs(token.COMMA) {
		// trim(s, chars)
		p.nextToken()
		expr = trimChars
		trimChars = p.parseExpression(ALIAS_PREC)
	} else {
		expr = trimChars
		trimChars = nil
	}

	p.expect(token.RPAREN)

	if expr == nil {
		p.errorf("expected expression in TRIM")
		return nil
	}

	args := []ast.Expression{expr}
	if trimChars != nil {
		args = append(args, trimChars)
	}

	return &ast.FunctionCall{
		Position:  pos,
		Name:      fnName,
		Arguments: args,
	}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpr{
		Position: p.current.Pos,
		Left:     left,
		Op:       p.current.Value,
	}

	if p.current.Token.IsKeyword() {
		expr.Op = strings.ToUpper(p.current.Value)
	}

	prec := p.precedence(p.current.Token)
	p.nextToken()

	expr.Right = p.parseExpression(prec)
	if expr.Right == nil {
		if len(p.errors) == 0 {
			p.errorf("expected expression after %s", expr.Op)
		}
		return nil
	}
	return expr
}

func (p *Parser) parseLikeExpression(left ast.Expression, not bool) ast.Expression {
	expr := &ast.LikeExpr{
		Position: p.current.Pos,
		Expr:     left,
		Not:      not,
	}

	if p.currentIs(token.ILIKE) {
		expr.CaseInsensitive = true
	}

	p.nextToken() // skip LIKE/ILIKE

	expr.Pattern = p.parseExpression(COMPARE)
	if expr.Pattern == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseRegexpExpression(left ast.Expression, not bool) ast.Expression {
	pos := p.current.Pos
	p.nextToken() // skip REGEXP

	pattern := p.parseExpression(COMPARE)
	if pattern == nil {
		return nil
	}

	// REGEXP translates to match(expr, pattern) function
	var expr ast.Expression = &ast.FunctionCall{
		Position:  pos,
		Name:      "match",
		Arguments: []ast.Expression{left, pattern},
	}
	if not {
		expr = &ast.UnaryExpr{
			Position: pos,
			Op:       "NOT",
			Operand:  expr,
		}
	}
	return expr
}

func (p *Parser) parseInExpression(left ast.Expression, not bool) ast.Expression {
	expr := &ast.InExpr{
		Position: p.current.Pos,
		Expr:     left,
		Not:      not,
	}

	p.nextToken() // skip IN

	if !p.expect(token.LPAREN) {
		return nil
	}
	// Check for subquery
	if p.currentIs(token.SELECT) || p.currentIs(token.WITH) {
		expr.Query = p.parseSelectWithUnion()
		if expr.Query == nil {
			return nil
		}
	} else {
		expr.List = p.parseArgumentList()
		if len(expr.List) == 0 {
			p.errorf("expected values in IN list, got %s", p.describeCurrent())
			return nil
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	return expr
}

func (p *Parser) parseBetweenExpression(left ast.Expression, not bool) ast.Expression {
	expr := &ast.BetweenExpr{
		Position: p.current.Pos,
		Expr:     left,
		Not:      not,
	}

	p.nextToken() // skip BETWEEN

	expr.Low = p.parseExpression(COMPARE)
	if expr.Low == nil {
		return nil
	}

	if !p.expect(token.AND) {
		return nil
	}

	expr.High = p.parseExpression(COMPARE)
	if expr.High == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseIsExpression(left ast.Expression) ast.Expression {
	pos := p.current.Pos
	p.nextToken() // skip IS

	not := false
	if p.currentIs(token.NOT) {
		not = true
		p.nextToken()
	}

	if p.currentIs(token.NULL) {
		p.nextToken()
		return &ast.IsNullExpr{
			Position: pos,
			Expr:     left,
			Not:      not,
		}
	}

	// IS TRUE, IS FALSE
	if p.currentIs(token.TRUE) || p.currentIs(token.FALSE) {
		value := p.currentIs(token.TRUE)
		if not {
			value = !value
		}
		p.nextToken()
		return &ast.BinaryExpr{
			Position: pos,
			Left:     left,
			Op:       "=",
			Right: &ast.Literal{
				Position: pos,
				Type:     ast.LiteralBoolean,
				Value:    value,
			},
		}
	}

	p.errorf("expected NULL, TRUE or FALSE after IS, got %s", p.describeCurrent())
	return nil
}

func (p *Parser) parseArrayAccess(left ast.Expression) ast.Expression {
	expr := &ast.ArrayAccess{
		Position: p.current.Pos,
		Array:    left,
	}

	p.nextToken() // skip [
	expr.Index = p.parseExpression(LOWEST)
	if expr.Index == nil {
		return nil
	}
	p.expect(token.RBRACKET)
	return expr
}

func (p *Parser) parseAlias(left ast.Expression) ast.Expression {
	p.nextToken() // skip AS

	if !p.currentIs(token.IDENT) && !p.current.Token.IsKeyword() {
		p.errorf("expected alias after AS, got %s", p.describeCurrent())
		return nil
	}
	alias := p.current.Value
	p.nextToken()

	return &ast.AliasedExpr{
		Position: left.Pos(),
		Expr:     left,
		Alias:    alias,
	}
}

func (p *Parser) parseCastOperator(left ast.Expression) ast.Expression {
	expr := &ast.CastExpr{
		Position:       p.current.Pos,
		Expr:           left,
		OperatorSyntax: true,
	}

	p.nextToken() // skip ::

	expr.Type = p.parseDataType()
	if expr.Type == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseIfFunction() ast.Expression {
	pos := p.current.Pos
	p.nextToken() // skip IF

	if !p.expect(token.LPAREN) {
		return nil
	}

	args := p.parseArgumentList()

	p.expect(token.RPAREN)

	return &ast.FunctionCall{
		Position:  pos,
		Name:      "if",
		Arguments: args,
	}
}

func (p *Parser) parseKeywordAsFunction() ast.Expression {
	pos := p.current.Pos
	name := p.current.Value
	p.nextToken() // skip keyword

	return p.parseFunctionCall(name, pos)
}

func (p *Parser) parseKeywordAsIdentifier() ast.Expression {
	pos := p.current.Pos
	name := p.current.Value
	p.nextToken()

	return &ast.Identifier{
		Position: pos,
		Parts:    []string{name},
	}
}
