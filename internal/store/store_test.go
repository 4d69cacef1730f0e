package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arbiter/internal/harness"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	st1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st1.Close())

	st2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st2.Close())
}

func TestWriteAndReadVerdictRecord(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	hash := CaseHash("source", "input", "output")
	verdict := harness.UnsatisfiedVerdict("too short", "output must exceed 10 words")
	rec := NewVerdictRecord(hash, "smoke", "short-output", verdict, 42*time.Millisecond)
	require.NoError(t, st.WriteRun(ctx, rec))

	got, err := st.GetRun(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, got.CaseHash)
	assert.Equal(t, "smoke", got.Suite)
	assert.Equal(t, "short-output", got.CaseName)
	require.NotNil(t, got.Satisfied)
	assert.False(t, *got.Satisfied)
	assert.Equal(t, "too short", got.Reason)
	assert.Equal(t, "output must exceed 10 words", got.Violation)
	assert.Empty(t, got.ErrorCode)
	assert.Equal(t, 42*time.Millisecond, got.Elapsed)
	assert.False(t, got.Passing())
}

func TestWriteAndReadErrorRecord(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	runErr := &harness.ContractError{
		Code:    harness.ErrCodeTimeout,
		Message: "validator exceeded execution budget",
	}
	rec := NewErrorRecord(CaseHash("s", "i", "o"), "", "", runErr, time.Second)
	require.NoError(t, st.WriteRun(ctx, rec))

	got, err := st.GetRun(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Satisfied, "a harness error leaves the verdict column NULL")
	assert.Equal(t, string(harness.ErrCodeTimeout), got.ErrorCode)
	assert.NotEmpty(t, got.ErrorMsg)
	assert.False(t, got.Passing())
}

func TestWriteRunIdempotentOnID(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec := NewVerdictRecord(CaseHash("s", "i", "o"), "", "", harness.SatisfiedVerdict(), 0)
	require.NoError(t, st.WriteRun(ctx, rec))
	require.NoError(t, st.WriteRun(ctx, rec), "duplicate IDs are silently ignored")

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestListRunsNewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := NewVerdictRecord(CaseHash("s", "i", "o"), "batch", "", harness.SatisfiedVerdict(), 0)
		require.NoError(t, st.WriteRun(ctx, rec))
	}

	runs, err := st.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestGetRunNotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetRun(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCaseHashNormalizesUnicode(t *testing.T) {
	// Composed and decomposed forms of the same text hash identically.
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	assert.Equal(t,
		CaseHash("v", composed, "o"),
		CaseHash("v", decomposed, "o"))
}

func TestCaseHashBoundaries(t *testing.T) {
	// Moving bytes across field boundaries changes the hash.
	assert.NotEqual(t, CaseHash("ab", "c", ""), CaseHash("a", "bc", ""))
	assert.NotEqual(t, CaseHash("v", "i", "o"), CaseHash("v", "o", "i"))
}
