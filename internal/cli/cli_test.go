package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arbiter/internal/testutil"
)

// execute runs the root command with args and returns stdout and the
// command error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "unsatisfied")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad path", os.ErrNotExist)))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))
}

func TestExitErrorUnwraps(t *testing.T) {
	err := WrapExitError(ExitCommandError, "wrapped", os.ErrNotExist)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "wrapped")
}

func TestReadTextArg(t *testing.T) {
	got, err := readTextArg("inline text")
	require.NoError(t, err)
	assert.Equal(t, "inline text", got)

	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("file text"), 0o644))
	got, err = readTextArg("@" + path)
	require.NoError(t, err)
	assert.Equal(t, "file text", got)

	_, err = readTextArg("@/no/such/file")
	require.Error(t, err)
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "score", "--gold", "a", "--reason", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "score", "--gold", "the output is too short", "--reason", "the output is too short")
	require.NoError(t, err)
	assert.Equal(t, "1.000000\n", out)
}

func TestScoreCommandRequiresFlags(t *testing.T) {
	_, err := execute(t, "score", "--gold", "only gold")
	require.Error(t, err)
}

func TestCheckCommandUnsatisfiedVerdict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validator.go")
	require.NoError(t, os.WriteFile(path, []byte(testutil.AlwaysFail), 0o644))

	out, err := execute(t, "check", "--validator", path, "--input", "in", "--output", "out")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.JSONEq(t,
		`{"satisfied": false, "reason": "too short", "violation": "output must exceed 10 words"}`,
		out[:len(out)-1])
}

func TestCheckCommandContractErrorIsNotAVerdict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validator.go")
	require.NoError(t, os.WriteFile(path, []byte(testutil.MissingEntryPoint), 0o644))

	out, err := execute(t, "check", "--validator", path, "--input", "in", "--output", "out")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.NotContains(t, out, `"satisfied"`, "contract errors are never shaped like verdicts")
}

func TestTreeValidateCommand(t *testing.T) {
	out, err := execute(t, "tree", "validate", "testdata/tree.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Tree is well-formed: 7 nodes, depth 3")
}

func TestTreePrintCommand(t *testing.T) {
	out, err := execute(t, "tree", "print", "testdata/tree.json")
	require.NoError(t, err)
	assert.Contains(t, out, "[COND] (parent_met=true)")
	assert.Contains(t, out, "[RESULT] (parent_met=false) | constraint: no")
}

func TestSuiteCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "word_count.go"), []byte(testutil.WordCount), 0o644))
	suitePath := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(suitePath, []byte(`
name: smoke
validator: word_count.go
cases:
  - name: passes
    output: plenty of words in this response to clear the required bar easily
  - name: fails-as-expected
    output: nope
    expect_satisfied: false
`), 0o644))

	out, err := execute(t, "suite", suitePath)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS passes")
	assert.Contains(t, out, "PASS fails-as-expected")
	assert.Contains(t, out, "2/2 cases passed")
}

func TestRunsCommandAfterCheck(t *testing.T) {
	dir := t.TempDir()
	validator := filepath.Join(dir, "validator.go")
	db := filepath.Join(dir, "runs.db")
	require.NoError(t, os.WriteFile(validator, []byte(testutil.AlwaysPass), 0o644))

	_, err := execute(t, "check", "--validator", validator, "--input", "in", "--output", "out", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
}
