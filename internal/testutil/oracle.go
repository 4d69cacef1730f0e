// Package testutil provides deterministic collaborators for tests: a
// scripted oracle with failure injection, and canned validator sources
// exercising each harness contract path.
package testutil

import (
	"context"
	"fmt"

	"github.com/roach88/arbiter/internal/oracle"
	"github.com/roach88/arbiter/internal/tree"
)

// ScriptedOracle is an oracle.Client returning canned responses.
// Zero-value fields produce empty results; Fail* fields inject an
// UpstreamError for that capability.
type ScriptedOracle struct {
	Constraints []oracle.ConstraintRecord
	Verifiable  map[string]bool // keyed by constraint text; missing = false
	Tree        tree.Node
	Validator   string

	FailExtract   bool
	FailAssess    bool
	FailTree      bool
	FailValidator bool

	// AssessCalls records which conditionals were assessed, in order.
	AssessCalls []string
}

var _ oracle.Client = (*ScriptedOracle)(nil)

func (s *ScriptedOracle) ExtractConstraints(ctx context.Context, promptTemplate string) ([]oracle.ConstraintRecord, error) {
	if s.FailExtract {
		return nil, &oracle.UpstreamError{Capability: "extract", Message: "scripted failure"}
	}
	return s.Constraints, nil
}

func (s *ScriptedOracle) AssessCondition(ctx context.Context, promptTemplate string, rec oracle.ConstraintRecord) (bool, error) {
	s.AssessCalls = append(s.AssessCalls, rec.Constraint)
	if s.FailAssess {
		return false, &oracle.UpstreamError{Capability: "assess", Message: "scripted failure"}
	}
	return s.Verifiable[rec.Constraint], nil
}

func (s *ScriptedOracle) GenerateTree(ctx context.Context, promptTemplate string, constraints []oracle.ConstraintRecord) (tree.Node, error) {
	if s.FailTree {
		return nil, &oracle.UpstreamError{Capability: "tree", Message: "scripted failure"}
	}
	if s.Tree == nil {
		return nil, &oracle.UpstreamError{Capability: "tree", Message: "no scripted tree"}
	}
	return s.Tree, nil
}

func (s *ScriptedOracle) GenerateValidator(ctx context.Context, promptTemplate string, root tree.Node) (string, error) {
	if s.FailValidator {
		return "", &oracle.UpstreamError{Capability: "validator", Message: "scripted failure"}
	}
	if s.Validator == "" {
		return "", &oracle.UpstreamError{Capability: "validator", Message: "no scripted validator"}
	}
	return s.Validator, nil
}

// Record builds a ConstraintRecord with sensible defaults for tests.
func Record(constraint, applicationType, category, source string) oracle.ConstraintRecord {
	return oracle.ConstraintRecord{
		Constraint:      constraint,
		ApplicationType: applicationType,
		Category:        category,
		Reason:          fmt.Sprintf("test constraint: %s", constraint),
		Source:          source,
	}
}
