package translate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sqlc-dev/caseprose/internal/translate"
)

// TestGolden translates every testdata/<case>/query.sql and compares the
// result with explanation.txt. Run cmd/regenerate-golden after an intended
// wording change.
func TestGolden(t *testing.T) {
	testdataDir := "testdata"

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("Failed to read testdata directory: %v", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		testName := entry.Name()
		testDir := filepath.Join(testdataDir, testName)

		t.Run(testName, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()

			queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
			if err != nil {
				t.Fatalf("Failed to read query.sql: %v", err)
			}
			wantBytes, err := os.ReadFile(filepath.Join(testDir, "explanation.txt"))
			if err != nil {
				t.Fatalf("Failed to read explanation.txt: %v", err)
			}

			report, err := translate.TranslateSQL(ctx, string(queryBytes), translate.Options{})
			if err != nil {
				t.Fatalf("TranslateSQL error: %v", err)
			}

			got := strings.TrimRight(report.String(), "\n")
			want := strings.TrimRight(string(wantBytes), "\n")
			if got != want {
				t.Errorf("Explanation mismatch\nQuery:\n%s\n\nExpected:\n%s\n\nGot:\n%s", queryBytes, want, got)
			}
		})
	}
}
