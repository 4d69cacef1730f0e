package tree

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// ValidateSchema checks raw tree JSON against the embedded CUE schema.
// This catches field-shape problems (missing fields, wrong types) with
// positional diagnostics before the structural rules in ValidateWire run.
//
// Uses the CUE SDK's Go API directly (not CLI subprocess).
func ValidateSchema(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("internal schema error: %w", err)
	}

	// JSON is a subset of CUE, so the document compiles directly.
	doc := ctx.CompileBytes(data)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("tree is not valid JSON: %w", err)
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("tree schema violation: %s", cueerrors.Details(err, nil))
	}
	return nil
}
