package store

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/arbiter/internal/harness"
)

// RunRecord is one validation run as persisted.
type RunRecord struct {
	ID        string `json:"id"`
	CaseHash  string `json:"case_hash"`
	Suite     string `json:"suite,omitempty"`
	CaseName  string `json:"case_name,omitempty"`
	Satisfied *bool  `json:"satisfied,omitempty"` // nil when a harness error preempted the verdict
	Reason    string `json:"reason,omitempty"`
	Violation string `json:"violation,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	ErrorMsg  string `json:"error_message,omitempty"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	CreatedAt string        `json:"created_at"`
}

// Passing reports the outward pass/fail signal for this run: harness
// errors and validation failures both collapse to false.
func (r *RunRecord) Passing() bool {
	return r.Satisfied != nil && *r.Satisfied
}

// CaseHash content-addresses one (validator, input, output) triple.
// Texts are NFC-normalized before hashing so byte-level Unicode variance
// does not split identical cases.
func CaseHash(validatorSource, input, output string) string {
	h := sha256.New()
	for _, part := range []string{validatorSource, input, output} {
		h.Write([]byte(norm.NFC.String(part)))
		h.Write([]byte{0}) // field separator, prevents boundary ambiguity
	}
	return hex.EncodeToString(h.Sum(nil))
}

// NewVerdictRecord builds a record for a run that produced a verdict.
func NewVerdictRecord(caseHash, suite, caseName string, v *harness.Verdict, elapsed time.Duration) RunRecord {
	satisfied := v.Satisfied
	rec := RunRecord{
		ID:        uuid.NewString(),
		CaseHash:  caseHash,
		Suite:     suite,
		CaseName:  caseName,
		Satisfied: &satisfied,
		Elapsed:   elapsed,
	}
	if v.Reason != nil {
		rec.Reason = *v.Reason
	}
	if v.Violation != nil {
		rec.Violation = *v.Violation
	}
	return rec
}

// NewErrorRecord builds a record for a run preempted by a harness error.
// The verdict column stays NULL: a contract error is not a content
// judgment and must never be rendered as one.
func NewErrorRecord(caseHash, suite, caseName string, err error, elapsed time.Duration) RunRecord {
	rec := RunRecord{
		ID:       uuid.NewString(),
		CaseHash: caseHash,
		Suite:    suite,
		CaseName: caseName,
		Elapsed:  elapsed,
	}
	if code := harness.ContractCode(err); code != "" {
		rec.ErrorCode = string(code)
	} else {
		rec.ErrorCode = "HARNESS_ERROR"
	}
	if err != nil {
		rec.ErrorMsg = err.Error()
	}
	return rec
}
