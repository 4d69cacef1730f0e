package harness_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arbiter/internal/harness"
	"github.com/roach88/arbiter/internal/testutil"
)

func newRunner(t *testing.T) *harness.Runner {
	t.Helper()
	return harness.New(harness.Options{})
}

func TestRunSatisfied(t *testing.T) {
	v, err := newRunner(t).Run(context.Background(), testutil.AlwaysPass, "in", "out")
	require.NoError(t, err)
	assert.True(t, v.Satisfied)
	assert.Nil(t, v.Reason)
	assert.Nil(t, v.Violation)
}

func TestRunUnsatisfiedCarriesFieldsVerbatim(t *testing.T) {
	v, err := newRunner(t).Run(context.Background(), testutil.AlwaysFail, "in", "out")
	require.NoError(t, err)
	assert.False(t, v.Satisfied)
	require.NotNil(t, v.Reason)
	require.NotNil(t, v.Violation)
	assert.Equal(t, "too short", *v.Reason)
	assert.Equal(t, "output must exceed 10 words", *v.Violation)
}

func TestRunPassDiscardsNoise(t *testing.T) {
	// Satisfied=true implies absent reason and violation, whatever the
	// validator returned alongside true.
	v, err := newRunner(t).Run(context.Background(), testutil.PassWithNoise, "in", "out")
	require.NoError(t, err)
	assert.True(t, v.Satisfied)
	assert.Nil(t, v.Reason)
	assert.Nil(t, v.Violation)
}

func TestRunMissingEntryPoint(t *testing.T) {
	v, err := newRunner(t).Run(context.Background(), testutil.MissingEntryPoint, "in", "out")
	assert.Nil(t, v, "a contract error never produces a verdict")
	require.Error(t, err)
	assert.Equal(t, harness.ErrCodeMissingEntrypoint, harness.ContractCode(err))
}

func TestRunMalformedReturnShape(t *testing.T) {
	v, err := newRunner(t).Run(context.Background(), testutil.TwoValueReturn, "in", "out")
	assert.Nil(t, v)
	require.Error(t, err)
	assert.Equal(t, harness.ErrCodeMalformedContract, harness.ContractCode(err))
}

func TestRunPanicIsRuntimeFault(t *testing.T) {
	v, err := newRunner(t).Run(context.Background(), testutil.Panics, "in", "out")
	assert.Nil(t, v)
	require.Error(t, err)
	assert.Equal(t, harness.ErrCodeRuntimeFault, harness.ContractCode(err))
	assert.True(t, harness.IsContractError(err))
}

func TestRunTimeout(t *testing.T) {
	r := harness.New(harness.Options{Timeout: 100 * time.Millisecond})

	start := time.Now()
	v, err := r.Run(context.Background(), testutil.Spins, "in", "out")
	elapsed := time.Since(start)

	assert.Nil(t, v)
	require.Error(t, err)
	assert.Equal(t, harness.ErrCodeTimeout, harness.ContractCode(err))
	assert.Less(t, elapsed, 5*time.Second, "the budget bounds the caller")
}

func TestRunForbiddenImport(t *testing.T) {
	v, err := newRunner(t).Run(context.Background(), testutil.ForbiddenImport, "in", "out")
	assert.Nil(t, v)
	require.Error(t, err)
	assert.Equal(t, harness.ErrCodeRuntimeFault, harness.ContractCode(err))
	assert.Contains(t, err.Error(), `"os"`)
}

func TestRunGeneratedValidatorShape(t *testing.T) {
	r := newRunner(t)

	v, err := r.Run(context.Background(), testutil.WordCount, "in",
		"  \n\nthis response has considerably more than ten words in it overall\n\n")
	require.NoError(t, err)
	assert.True(t, v.Satisfied)

	v, err = r.Run(context.Background(), testutil.WordCount, "in", "too short")
	require.NoError(t, err)
	assert.False(t, v.Satisfied)
	require.NotNil(t, v.Reason)
	assert.Equal(t, "too short", *v.Reason)
}

func TestRunBareSourceGetsPackageClause(t *testing.T) {
	// Sources without a package clause load under an implicit one.
	bare := `func IsValidOutput(output string, input string) (bool, string, string) {
	return true, "", ""
}
`
	v, err := newRunner(t).Run(context.Background(), bare, "in", "out")
	require.NoError(t, err)
	assert.True(t, v.Satisfied)
}

func TestRunIsolationBetweenCalls(t *testing.T) {
	// Package-level state must not leak across invocations: each call
	// evaluates in a fresh interpreter.
	counting := `package validator

var calls int

func IsValidOutput(output string, input string) (bool, string, string) {
	calls++
	if calls > 1 {
		return false, "state leaked", ""
	}
	return true, "", ""
}
`
	r := newRunner(t)
	for i := 0; i < 3; i++ {
		v, err := r.Run(context.Background(), counting, "in", "out")
		require.NoError(t, err)
		assert.True(t, v.Satisfied, "call %d observed leaked state", i+1)
	}
}

func TestVerdictRecordShape(t *testing.T) {
	rec, err := harness.SatisfiedVerdict().MarshalRecord()
	require.NoError(t, err)
	assert.JSONEq(t, `{"satisfied": true, "reason": null, "violation": null}`, string(rec))

	rec, err = harness.UnsatisfiedVerdict("too short", "").MarshalRecord()
	require.NoError(t, err)
	assert.JSONEq(t, `{"satisfied": false, "reason": "too short", "violation": null}`, string(rec))
}
