// Package pipeline orchestrates the three oracle stages: constraint
// extraction, tree generation, and validator source generation.
//
// Every oracle call is fallible. A stage failure is localized: the stage
// yields its empty result, the failure is recorded on the Result, and
// later stages that lack their prerequisite are skipped. The pipeline
// itself never halts the process.
package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/roach88/arbiter/internal/oracle"
	"github.com/roach88/arbiter/internal/tree"
)

// Pipeline runs the oracle stages for one prompt template.
type Pipeline struct {
	oracle oracle.Client
	logger *slog.Logger
}

// New creates a pipeline over the given oracle client.
func New(c oracle.Client, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{oracle: c, logger: logger}
}

// Result carries whatever the pipeline managed to produce. Stages that
// failed or were skipped leave their field empty and record the cause in
// Errors.
type Result struct {
	Constraints     []oracle.ConstraintRecord
	Tree            tree.Node
	ValidatorSource string
	Errors          []error
}

// Complete reports whether every stage produced its artifact.
func (r *Result) Complete() bool {
	return len(r.Errors) == 0 && r.Tree != nil && r.ValidatorSource != ""
}

// Extract runs constraint extraction and verifiability filtering.
// On oracle failure it returns an empty list alongside the error.
func (p *Pipeline) Extract(ctx context.Context, promptTemplate string) ([]oracle.ConstraintRecord, error) {
	records, err := p.oracle.ExtractConstraints(ctx, promptTemplate)
	if err != nil {
		p.logger.Error("constraint extraction failed", "error", err)
		return nil, err
	}
	kept := oracle.FilterVerifiable(ctx, p.oracle, promptTemplate, records)
	p.logger.Info("constraints extracted",
		"total", len(records),
		"code_verifiable", len(kept),
	)
	return kept, nil
}

// BuildTree compiles a constraint list into a validated decision tree.
// Ordering violations in an otherwise well-formed tree are logged, not
// fatal: ordering is a construction-time property, and a tree that
// violates it still interprets deterministically.
func (p *Pipeline) BuildTree(ctx context.Context, promptTemplate string, constraints []oracle.ConstraintRecord) (tree.Node, error) {
	root, err := p.oracle.GenerateTree(ctx, promptTemplate, constraints)
	if err != nil {
		p.logger.Error("tree generation failed", "error", err)
		return nil, err
	}
	for _, v := range tree.CheckOrdering(root) {
		p.logger.Warn("generated tree violates ordering contract",
			"code", v.Code,
			"path", v.Path,
			"detail", v.Message,
		)
	}
	p.logger.Info("tree generated", "nodes", tree.CountNodes(root), "depth", tree.Depth(root))
	return root, nil
}

// GenerateValidator compiles a decision tree into validator source.
func (p *Pipeline) GenerateValidator(ctx context.Context, promptTemplate string, root tree.Node) (string, error) {
	source, err := p.oracle.GenerateValidator(ctx, promptTemplate, root)
	if err != nil {
		p.logger.Error("validator generation failed", "error", err)
		return "", err
	}
	p.logger.Info("validator generated", "bytes", len(source))
	return source, nil
}

// Run executes all stages in order, skipping stages whose prerequisite is
// missing. The returned Result is always non-nil and carries the partial
// artifacts plus any stage errors.
func (p *Pipeline) Run(ctx context.Context, promptTemplate string) *Result {
	res := &Result{}

	constraints, err := p.Extract(ctx, promptTemplate)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}
	res.Constraints = constraints
	if len(constraints) == 0 {
		p.logger.Info("no code-verifiable constraints found, skipping tree and validator stages")
		return res
	}

	root, err := p.BuildTree(ctx, promptTemplate, constraints)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}
	res.Tree = root

	source, err := p.GenerateValidator(ctx, promptTemplate, root)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}
	res.ValidatorSource = source
	return res
}
