package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqlc-dev/caseprose/internal/translate"
)

func main() {
	testName := flag.String("test", "", "Single test directory name to process (if empty, process all)")
	newSQL := flag.String("new", "", "Create the -test directory with this query before regenerating it")
	dryRun := flag.Bool("dry-run", false, "Print explanations without writing them")
	testdataDir := flag.String("dir", "internal/translate/testdata", "Golden testdata directory")
	flag.Parse()

	if *newSQL != "" {
		if *testName == "" {
			fmt.Fprintf(os.Stderr, "-new requires -test\n")
			os.Exit(2)
		}
		dir := filepath.Join(*testdataDir, *testName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
			os.Exit(1)
		}
		if err := os.WriteFile(filepath.Join(dir, "query.sql"), []byte(strings.TrimSpace(*newSQL)+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing query.sql: %v\n", err)
			os.Exit(1)
		}
	}

	if *testName != "" {
		if err := processTest(filepath.Join(*testdataDir, *testName), *dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", *testName, err)
			os.Exit(1)
		}
		return
	}

	entries, err := os.ReadDir(*testdataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading testdata: %v\n", err)
		os.Exit(1)
	}

	var errors []string
	var processed, changed int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		testDir := filepath.Join(*testdataDir, entry.Name())
		before, _ := os.ReadFile(filepath.Join(testDir, "explanation.txt"))
		if err := processTest(testDir, *dryRun); err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}
		processed++
		if after, _ := os.ReadFile(filepath.Join(testDir, "explanation.txt")); string(after) != string(before) {
			changed++
		}
	}

	fmt.Printf("\nProcessed: %d, Changed: %d, Errors: %d\n", processed, changed, len(errors))
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "\nErrors:\n")
		for _, e := range errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(1)
	}
}

func processTest(testDir string, dryRun bool) error {
	queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
	if err != nil {
		return fmt.Errorf("reading query.sql: %w", err)
	}

	report, err := translate.TranslateSQL(context.Background(), string(queryBytes), translate.Options{})
	if err != nil {
		return err
	}
	out := strings.TrimRight(report.String(), "\n") + "\n"

	if dryRun {
		fmt.Printf("== %s ==\n%s\n", filepath.Base(testDir), out)
		return nil
	}
	return os.WriteFile(filepath.Join(testDir, "explanation.txt"), []byte(out), 0o644)
}
