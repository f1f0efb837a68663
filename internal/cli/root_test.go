package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/csvcode/internal/cli/config"
	clitestutil "github.com/leapstack-labs/csvcode/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CSVCODE_CACHE_PATH", filepath.Join(t.TempDir(), "dialects.db"))

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"code", "detect", "cache", "version", "completion"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "verbose", "cache-path", "no-cache", "history-file", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_Code(t *testing.T) {
	path := writeCSV(t, "id,name\n1,alice\n2,bob\n")

	out, errOut, err := executeRoot(t, "code", "--color", "never", "-e", "utf-8", path)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	clitestutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "# Code generated with csvcode version "+Version)
	assert.Contains(t, out, `with open("`+path+`", "r", newline="", encoding="utf-8") as fp:`)
	assert.Contains(t, out, `reader = clevercsv.reader(fp, delimiter=",", quotechar="", escapechar=None)`)
}

func TestRootCmd_ConfigFile(t *testing.T) {
	path := writeCSV(t, "id,name\n1,alice\n2,bob\n")
	cfgPath := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("generator: CleverCSV\nno_cache: true\ncolor: never\n"), 0600))

	out, _, err := executeRoot(t, "--config", cfgPath, "code", "--pandas", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# Code generated with CleverCSV version "+Version)
	assert.Contains(t, out, `df = clevercsv.csv2df("`+path+`"`)
}

func TestRootCmd_DetectFormat(t *testing.T) {
	path := writeCSV(t, "a;b\n1;2\n")

	out, _, err := executeRoot(t, "detect", "--no-cache", "--format", "json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"delimiter": ";"`)
}

func TestRootCmd_Errors(t *testing.T) {
	path := writeCSV(t, "a,b\n")

	_, _, err := executeRoot(t, "code", "--num-chars", "abc", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "num-chars")

	_, _, err = executeRoot(t, "code", "--color", "sometimes", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color mode")

	_, _, err = executeRoot(t, "detect", "--format", "xml", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRootCmd_VerboseLogs(t *testing.T) {
	path := writeCSV(t, "a,b\n1,2\n")

	_, errOut, err := executeRoot(t, "-v", "detect", "--plain", "--no-cache", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "detected dialect")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := executeRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "csvcode")
}
