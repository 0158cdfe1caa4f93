package parser_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/parser"
)

func TestMultiStatementParsing(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected int
	}{
		{
			name:     "two selects with semicolon",
			sql:      "SELECT 1; SELECT 2;",
			expected: 2,
		},
		{
			name:     "three selects",
			sql:      "SELECT 1; SELECT 2; SELECT 3;",
			expected: 3,
		},
		{
			name:     "mixed statements",
			sql:      "SELECT 1; CREATE VIEW v AS SELECT a FROM t; SELECT 2;",
			expected: 3,
		},
		{
			name:     "no trailing semicolon",
			sql:      "SELECT 1; SELECT 2",
			expected: 2,
		},
		{
			name:     "multiple semicolons between statements",
			sql:      "SELECT 1;; SELECT 2;;; SELECT 3",
			expected: 3,
		},
		{
			name:     "newlines between statements",
			sql:      "SELECT 1;\nSELECT 2;\nSELECT 3;",
			expected: 3,
		},
		{
			name:     "single statement",
			sql:      "SELECT 1;",
			expected: 1,
		},
		{
			name:     "semicolon inside a CASE string literal",
			sql:      "SELECT CASE WHEN sep = ';' THEN 'a;b' ELSE ';' END AS s FROM t; SELECT 2",
			expected: 2,
		},
		{
			name:     "semicolon inside comments around CASE",
			sql:      "-- pick; the tier\nSELECT CASE WHEN a THEN 1 END /* ; */ FROM t; -- done;\n",
			expected: 1,
		},
		{
			name:     "complex multi-statement",
			sql:      "SELECT a, b FROM t1 WHERE x > 10; SELECT CASE WHEN a THEN 1 END FROM t2; SELECT * FROM t3 ORDER BY id;",
			expected: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			stmts, err := parser.Parse(ctx, strings.NewReader(tc.sql))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if len(stmts) != tc.expected {
				t.Errorf("Expected %d statements, got %d", tc.expected, len(stmts))
			}
		})
	}
}

// TestCaseExpressionsPerStatement checks that each CASE lands in the
// statement it was written in and that quoted semicolons stay in the literals.
func TestCaseExpressionsPerStatement(t *testing.T) {
	sql := `SELECT CASE WHEN kind = ';' THEN 'semi;colon' END AS k FROM t;
CREATE VIEW v AS SELECT CASE s WHEN 1 THEN 'one' WHEN 2 THEN 'two' END AS n, CASE WHEN x THEN 1 END AS m FROM u;
SELECT 1;`

	stmts, err := parser.Parse(context.Background(), strings.NewReader(sql))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(stmts) != 3 {
		t.Fatalf("Expected 3 statements, got %d", len(stmts))
	}

	wantWhens := [][]int{{1}, {2, 1}, nil}
	for i, stmt := range stmts {
		var whens []int
		ast.Inspect(stmt, func(n ast.Node) bool {
			if c, ok := n.(*ast.CaseExpr); ok {
				whens = append(whens, len(c.Whens))
			}
			return true
		})
		if len(whens) != len(wantWhens[i]) {
			t.Fatalf("statement %d: expected CASE shapes %v, got %v", i+1, wantWhens[i], whens)
		}
		for j := range whens {
			if whens[j] != wantWhens[i][j] {
				t.Errorf("statement %d: expected CASE shapes %v, got %v", i+1, wantWhens[i], whens)
			}
		}
	}

	var literals []string
	ast.Inspect(stmts[0], func(n ast.Node) bool {
		if lit, ok := n.(*ast.Literal); ok && lit.Type == ast.LiteralString {
			literals = append(literals, lit.Value.(string))
		}
		return true
	})
	if strings.Join(literals, "|") != ";|semi;colon" {
		t.Errorf("Expected literals [; semi;colon], got %q", literals)
	}
}

func TestParseString(t *testing.T) {
	ctx := context.Background()
	sql := "SELECT 1; SELECT 2; SELECT 3;"

	stmts, err := parser.ParseString(ctx, sql)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	if len(stmts) != 3 {
		t.Errorf("Expected 3 statements, got %d", len(stmts))
	}
}

func TestParseFile(t *testing.T) {
	// Create a temporary SQL file with multiple statements
	tmpDir := t.TempDir()
	sqlFile := filepath.Join(tmpDir, "test.sql")

	content := `-- This is a SQL file with multiple statements
SELECT 1;

-- A more complex query
SELECT a, b, c
FROM my_table
WHERE x > 10;

/* A view with a derived column */
CREATE OR REPLACE VIEW labelled AS
SELECT id, CASE WHEN score >= 50 THEN 'pass' ELSE 'fail' END AS result
FROM exams;

-- Final select
SELECT * FROM labelled ORDER BY id;
`
	if err := os.WriteFile(sqlFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	ctx := context.Background()
	stmts, err := parser.ParseFile(ctx, sqlFile)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(stmts) != 4 {
		t.Errorf("Expected 4 statements, got %d", len(stmts))
	}
}

func TestParseFileNotFound(t *testing.T) {
	ctx := context.Background()
	_, err := parser.ParseFile(ctx, "/nonexistent/file.sql")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
