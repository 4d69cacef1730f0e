// Package oracle is the client for the external text-generation service
// that supplies constraints, decision trees, and validator sources.
//
// The oracle is opaque, nondeterministic, and fallible. Every capability
// is modeled as a single fallible call: any failure (transport, missing
// tool call, malformed arguments) surfaces as a typed UpstreamError so
// callers can degrade to an empty result instead of halting.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/arbiter/internal/tree"
)

// ApplicationType distinguishes constraints that always apply from those
// gated on an input trigger.
const (
	ApplicationUnconditional = "unconditional"
	ApplicationConditional   = "conditional"
)

// ConstraintRecord is one extracted constraint, as returned by the
// oracle's classification capability.
type ConstraintRecord struct {
	Constraint      string `json:"constraint"`
	ApplicationType string `json:"application_type"`
	Category        string `json:"category"`
	Reason          string `json:"reason"`
	Source          string `json:"source"`
}

// Client is the oracle capability surface.
type Client interface {
	// ExtractConstraints classifies every output constraint found in a
	// prompt template.
	ExtractConstraints(ctx context.Context, promptTemplate string) ([]ConstraintRecord, error)

	// AssessCondition reports whether one conditional constraint's
	// trigger is code-verifiable from the raw input string alone.
	AssessCondition(ctx context.Context, promptTemplate string, rec ConstraintRecord) (bool, error)

	// GenerateTree compiles a constraint list into a decision tree
	// honoring the interpretation contract.
	GenerateTree(ctx context.Context, promptTemplate string, constraints []ConstraintRecord) (tree.Node, error)

	// GenerateValidator compiles a decision tree into validator source
	// honoring the harness contract.
	GenerateValidator(ctx context.Context, promptTemplate string, root tree.Node) (string, error)
}

// UpstreamError reports an oracle failure. It must degrade to a clear,
// localized empty or failed result in the caller, never a fatal halt.
type UpstreamError struct {
	Capability string // "extract", "assess", "tree", "validator"
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle %s failed: %s: %v", e.Capability, e.Message, e.Err)
	}
	return fmt.Sprintf("oracle %s failed: %s", e.Capability, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstreamError reports whether err is (or wraps) an UpstreamError.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

func newUpstreamError(capability, message string, err error) *UpstreamError {
	return &UpstreamError{Capability: capability, Message: message, Err: err}
}

// verifiableCategories are the categories checkable by code. Semantic and
// qualitative constraints are extracted but filtered out.
var verifiableCategories = map[string]bool{
	"Output → Specific format constraint":   true,
	"Output → Numerical constraint":         true,
	"Output → Lexical matching constraint":  true,
	"Output → Lexical exclusion constraint": true,
}

// FilterVerifiable keeps constraints that can be checked by code:
// all code-verifiable unconditional constraints, and conditional ones
// whose trigger the oracle judges verifiable. Assessment failures drop
// the conditional (fail-closed) rather than propagating.
func FilterVerifiable(ctx context.Context, c Client, promptTemplate string, records []ConstraintRecord) []ConstraintRecord {
	var kept []ConstraintRecord
	for _, rec := range records {
		if !verifiableCategories[rec.Category] {
			continue
		}
		switch rec.ApplicationType {
		case ApplicationUnconditional:
			kept = append(kept, rec)
		case ApplicationConditional:
			ok, err := c.AssessCondition(ctx, promptTemplate, rec)
			if err == nil && ok {
				kept = append(kept, rec)
			}
		}
	}
	return kept
}
