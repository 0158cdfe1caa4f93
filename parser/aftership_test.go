package parser_test

import (
	"context"
	"strings"
	"testing"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"

	"github.com/sqlc-dev/caseprose/parser"
)

// TestAfterShipAgreement checks that plain CASE queries accepted by this
// parser are also accepted by AfterShip/clickhouse-sql-parser.
// Use with: go test ./parser -run TestAfterShipAgreement -v
func TestAfterShipAgreement(t *testing.T) {
	queries := []string{
		"SELECT CASE WHEN age >= 18 THEN 'adult' ELSE 'minor' END AS category FROM people",
		"SELECT CASE WHEN a > 0 AND b > 0 THEN 'pos' END FROM t",
		"SELECT CASE WHEN x IS NULL THEN 'unknown' END AS label FROM t",
		"SELECT CASE status WHEN 1 THEN 'on' WHEN 0 THEN 'off' END FROM devices",
	}

	for _, query := range queries {
		t.Run(query, func(t *testing.T) {
			if _, err := parser.Parse(context.Background(), strings.NewReader(query)); err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			stmts, parseErr, panicked := tryParseWithAfterShip(query)
			if panicked {
				t.Fatalf("AfterShip parser panicked\nQuery: %s", query)
			}
			if parseErr != nil {
				t.Fatalf("AfterShip parse error: %v\nQuery: %s", parseErr, query)
			}
			if len(stmts) == 0 {
				t.Fatalf("AfterShip parser returned no statements\nQuery: %s", query)
			}
		})
	}
}

// tryParseWithAfterShip attempts to parse a query with AfterShip parser, recovering from panics.
func tryParseWithAfterShip(query string) (stmts []aftership.Expr, parseErr error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			parseErr = nil
			stmts = nil
		}
	}()
	p := aftership.NewParser(query)
	stmts, parseErr = p.ParseStmts()
	return stmts, parseErr, false
}
