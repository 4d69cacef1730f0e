package harness

import "encoding/json"

// Verdict is the structured result of one validation run.
//
// Field order is fixed: {satisfied, reason, violation}. Absent reason and
// violation serialize as explicit nulls, so the record shape is identical
// for passing and failing runs.
//
// Invariant: Satisfied=true implies Reason and Violation are nil;
// Satisfied=false implies Reason is present (Violation may be nil when no
// attributable ancestor constraint exists).
type Verdict struct {
	Satisfied bool    `json:"satisfied"`
	Reason    *string `json:"reason"`
	Violation *string `json:"violation"`
}

// Satisfied returns the canonical passing verdict.
func SatisfiedVerdict() *Verdict {
	return &Verdict{Satisfied: true}
}

// UnsatisfiedVerdict builds a failing verdict. Empty strings map to
// absent (null) fields.
func UnsatisfiedVerdict(reason, violation string) *Verdict {
	v := &Verdict{Satisfied: false}
	if reason != "" {
		v.Reason = &reason
	}
	if violation != "" {
		v.Violation = &violation
	}
	return v
}

// MarshalRecord renders the verdict as a single JSON record.
func (v *Verdict) MarshalRecord() ([]byte, error) {
	return json.Marshal(v)
}
