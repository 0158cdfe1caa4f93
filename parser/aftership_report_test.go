//go:build aftership_report

package parser_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestAfterShipParserSummary reports how much of the testdata the AfterShip
// parser accepts. The dialects differ (ILIKE, ::, NULLS LAST), so this is a
// report rather than a check.
// Use with: go test -tags aftership_report ./parser -run TestAfterShipParserSummary -v
func TestAfterShipParserSummary(t *testing.T) {
	testdataDir := "testdata"

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("Failed to read testdata directory: %v", err)
	}

	var passed, failed, skipped int
	var failedTests []string

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		testDir := filepath.Join(testdataDir, entry.Name())

		// Read optional metadata
		var metadata testMetadata
		metadataPath := filepath.Join(testDir, "metadata.json")
		if metadataBytes, err := os.ReadFile(metadataPath); err == nil {
			json.Unmarshal(metadataBytes, &metadata)
		}

		// Skip intentionally invalid queries
		if metadata.ParseError {
			skipped++
			continue
		}

		queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
		if err != nil {
			continue
		}
		query := strings.TrimSpace(string(queryBytes))

		stmts, parseErr, panicked := tryParseWithAfterShip(query)
		switch {
		case panicked:
			failed++
			failedTests = append(failedTests, entry.Name()+": PANIC: parser crashed")
		case parseErr != nil:
			failed++
			failedTests = append(failedTests, entry.Name()+": "+parseErr.Error())
		case len(stmts) == 0:
			failed++
			failedTests = append(failedTests, entry.Name()+": no statements returned")
		default:
			passed++
		}
	}

	t.Logf("=== AfterShip Parser Results ===")
	t.Logf("Passed:  %d", passed)
	t.Logf("Failed:  %d", failed)
	t.Logf("Skipped: %d", skipped)
	t.Logf("Total:   %d", passed+failed+skipped)
	for _, name := range failedTests {
		t.Logf("  - %s", name)
	}
}
