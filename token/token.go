// Package token defines constants representing the lexical tokens of the SQL
// dialect accepted by caseprose.
package token

// Token represents a lexical token.
type Token int

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	COMMENT

	// Literals
	IDENT  // identifiers
	NUMBER // integer or float literals
	STRING // string literals

	// Operators
	PLUS         // +
	MINUS        // -
	ASTERISK     // *
	SLASH        // /
	PERCENT      // %
	EQ           // =
	NEQ          // != or <>
	LT           // <
	GT           // >
	LTE          // <=
	GTE          // >=
	CONCAT       // ||
	COLONCOLON   // ::
	NULL_SAFE_EQ // <=>

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;

	// Keywords
	keyword_beg
	ALL
	AND
	AS
	ASC
	BETWEEN
	BOTH
	BY
	CASE
	CAST
	CREATE
	CROSS
	DESC
	DISTINCT
	DIV
	ELSE
	END
	EXISTS
	FALSE
	FIRST
	FROM
	FULL
	GROUP
	HAVING
	IF
	ILIKE
	IN
	INNER
	INTERVAL
	IS
	JOIN
	LAST
	LEADING
	LEFT
	LIKE
	LIMIT
	MATERIALIZED
	MOD
	NOT
	NULL
	NULLS
	OFFSET
	ON
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	REGEXP
	REPLACE
	RIGHT
	SELECT
	THEN
	TRAILING
	TRIM
	TRUE
	UNION
	USING
	VIEW
	WHEN
	WHERE
	WITH
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:         "+",
	MINUS:        "-",
	ASTERISK:     "*",
	SLASH:        "/",
	PERCENT:      "%",
	EQ:           "=",
	NEQ:          "!=",
	LT:           "<",
	GT:           ">",
	LTE:          "<=",
	GTE:          ">=",
	CONCAT:       "||",
	COLONCOLON:   "::",
	NULL_SAFE_EQ: "<=>",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",

	ALL:          "ALL",
	AND:          "AND",
	AS:           "AS",
	ASC:          "ASC",
	BETWEEN:      "BETWEEN",
	BOTH:         "BOTH",
	BY:           "BY",
	CASE:         "CASE",
	CAST:         "CAST",
	CREATE:       "CREATE",
	CROSS:        "CROSS",
	DESC:         "DESC",
	DISTINCT:     "DISTINCT",
	DIV:          "DIV",
	ELSE:         "ELSE",
	END:          "END",
	EXISTS:       "EXISTS",
	FALSE:        "FALSE",
	FIRST:        "FIRST",
	FROM:         "FROM",
	FULL:         "FULL",
	GROUP:        "GROUP",
	HAVING:       "HAVING",
	IF:           "IF",
	ILIKE:        "ILIKE",
	IN:           "IN",
	INNER:        "INNER",
	INTERVAL:     "INTERVAL",
	IS:           "IS",
	JOIN:         "JOIN",
	LAST:         "LAST",
	LEADING:      "LEADING",
	LEFT:         "LEFT",
	LIKE:         "LIKE",
	LIMIT:        "LIMIT",
	MATERIALIZED: "MATERIALIZED",
	MOD:          "MOD",
	NOT:          "NOT",
	NULL:         "NULL",
	NULLS:        "NULLS",
	OFFSET:       "OFFSET",
	ON:           "ON",
	OR:           "OR",
	ORDER:        "ORDER",
	OUTER:        "OUTER",
	OVER:         "OVER",
	PARTITION:    "PARTITION",
	REGEXP:       "REGEXP",
	REPLACE:      "REPLACE",
	RIGHT:        "RIGHT",
	SELECT:       "SELECT",
	THEN:         "THEN",
	TRAILING:     "TRAILING",
	TRIM:         "TRIM",
	TRUE:         "TRUE",
	UNION:        "UNION",
	USING:        "USING",
	VIEW:         "VIEW",
	WHEN:         "WHEN",
	WHERE:        "WHERE",
	WITH:         "WITH",
}

func (tok Token) String() string {
	if tok >= 0 && int(tok) < len(tokens) {
		return tokens[tok]
	}
	return ""
}

// Keywords maps keyword strings to their token types.
var Keywords map[string]Token

func init() {
	Keywords = make(map[string]Token)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		Keywords[tokens[i]] = i
	}
}

// Lookup returns the token type for an upper-cased identifier string.
// If the string is a keyword, it returns the keyword token.
// Otherwise, it returns IDENT.
func Lookup(ident string) Token {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token is a keyword.
func (tok Token) IsKeyword() bool {
	return tok > keyword_beg && tok < keyword_end
}

// Position represents a source position.
type Position struct {
	Offset int // byte offset
	Line   int // line number (1-based)
	Column int // column number (1-based)
}
