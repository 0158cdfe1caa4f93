package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunText(t *testing.T) {
	code, out, _ := runCLI(t, "CASE WHEN x IS NULL THEN 'unknown' END")
	require.Equal(t, 0, code)
	assert.Equal(t, "Computed column is derived as:\n\nCondition 1: IF\n\tCondition 1.1: x is null\n\tTHEN return 'unknown'\n", out)
}

func TestRunFileAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT CASE WHEN a > 0 THEN 'pos' END AS sign, CASE WHEN b THEN 1 END AS flag FROM t;\n"), 0o644))

	code, out, _ := runCLI(t, "", "-format", "markdown", "-all", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "### Column 'sign' is computed as:")
	assert.Contains(t, out, "### Column 'flag' is computed as:")

	code, out, _ = runCLI(t, "", "-format", "json", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"alias": "sign"`)
	assert.NotContains(t, out, `"alias": "flag"`)
}

func TestRunDumpAST(t *testing.T) {
	code, out, _ := runCLI(t, "CASE WHEN a = 1 THEN 'one' END AS x", "-dump-ast")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "multiIf")
}

func TestRunErrors(t *testing.T) {
	code, _, errOut := runCLI(t, "SELECT a FROM t")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "No CASE expression found")

	code, _, errOut = runCLI(t, "CASE WHEN THEN END")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "parse errors")

	code, _, _ = runCLI(t, "CASE WHEN a THEN 1 END", "-format", "yaml")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "", "-no-such-flag")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "", filepath.Join(t.TempDir(), "missing.sql"))
	assert.Equal(t, 1, code)
}

func TestRunVerboseLogsUnsupported(t *testing.T) {
	code, _, errOut := runCLI(t, "CASE WHEN md5(x) = 'a' THEN 1 END", "-v")
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, "unsupported construct")
}
