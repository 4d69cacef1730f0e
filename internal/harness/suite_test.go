package harness_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arbiter/internal/harness"
	"github.com/roach88/arbiter/internal/testutil"
)

func writeSuite(t *testing.T, yaml string, validators map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, source := range validators {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644))
	}
	path := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestLoadSuiteResolvesRelativePaths(t *testing.T) {
	path := writeSuite(t, `
name: sample
validator: word_count.go
cases:
  - name: long-enough
    input: a question
    output: plenty of words in this response to clear the required bar easily
  - name: short
    input: a question
    output: nope
    expect_satisfied: false
`, map[string]string{"word_count.go": testutil.WordCount})

	suite, err := harness.LoadSuite(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", suite.Name)
	assert.True(t, filepath.IsAbs(suite.Validator) || filepath.Dir(suite.Validator) != ".",
		"validator path resolves relative to the suite file")
	require.Len(t, suite.Cases, 2)
	assert.Equal(t, "long-enough", suite.Cases[0].Name)
}

func TestLoadSuiteRejectsEmpty(t *testing.T) {
	path := writeSuite(t, "name: empty\ncases: []\n", nil)
	_, err := harness.LoadSuite(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cases")
}

func TestRunSuiteKeepsOrderAndExpectations(t *testing.T) {
	path := writeSuite(t, `
name: mixed
validator: word_count.go
cases:
  - name: passes
    output: plenty of words in this response to clear the required bar easily
  - name: fails-as-expected
    output: nope
    expect_satisfied: false
  - name: fails
    output: nope
`, map[string]string{"word_count.go": testutil.WordCount})

	suite, err := harness.LoadSuite(path)
	require.NoError(t, err)

	results, err := harness.New(harness.Options{}).RunSuite(context.Background(), suite, 4)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "passes", results[0].Name)
	assert.True(t, results[0].Passed)

	assert.Equal(t, "fails-as-expected", results[1].Name)
	assert.True(t, results[1].Passed, "an expected failure counts as a pass")
	require.NotNil(t, results[1].Verdict)
	assert.False(t, results[1].Verdict.Satisfied)

	assert.Equal(t, "fails", results[2].Name)
	assert.False(t, results[2].Passed)
}

func TestRunSuiteCaseOverridesValidator(t *testing.T) {
	path := writeSuite(t, `
name: overrides
validator: always_fail.go
cases:
  - name: uses-override
    validator: always_pass.go
    output: anything
  - name: uses-default
    output: anything
    expect_satisfied: false
`, map[string]string{
		"always_pass.go": testutil.AlwaysPass,
		"always_fail.go": testutil.AlwaysFail,
	})

	suite, err := harness.LoadSuite(path)
	require.NoError(t, err)

	results, err := harness.New(harness.Options{}).RunSuite(context.Background(), suite, 1)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed)
}

func TestRunSuiteContractErrorDoesNotStopBatch(t *testing.T) {
	path := writeSuite(t, `
name: broken-member
validator: always_pass.go
cases:
  - name: broken
    validator: missing.go
    output: anything
  - name: healthy
    output: anything
`, map[string]string{
		"always_pass.go": testutil.AlwaysPass,
		"missing.go":     testutil.MissingEntryPoint,
	})

	suite, err := harness.LoadSuite(path)
	require.NoError(t, err)

	results, err := harness.New(harness.Options{}).RunSuite(context.Background(), suite, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.False(t, results[0].Passed)
	require.Error(t, results[0].Err)
	assert.Equal(t, harness.ErrCodeMissingEntrypoint, harness.ContractCode(results[0].Err))
	assert.Nil(t, results[0].Verdict)

	assert.True(t, results[1].Passed, "a broken case must not poison its neighbors")
}

func TestRunSuiteInputFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "always_pass.go"), []byte(testutil.AlwaysPass), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "output.txt"), []byte("file-backed output"), 0o644))
	path := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: file-backed
validator: always_pass.go
cases:
  - name: from-file
    output_file: output.txt
`), 0o644))

	suite, err := harness.LoadSuite(path)
	require.NoError(t, err)

	results, err := harness.New(harness.Options{}).RunSuite(context.Background(), suite, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
}
