package tree

import (
	"encoding/json"
	"fmt"
	"os"
)

// Exchange category labels. Trees produced by the oracle carry the long
// labels from the extraction taxonomy; hand-written trees may use the
// short model names. Both decode to the same Category.
var wireCategories = map[string]Category{
	"Output → Specific format constraint":   CategoryFormat,
	"Output → Numerical constraint":         CategoryNumerical,
	"Output → Lexical matching constraint":  CategoryLexicalMatch,
	"Output → Lexical exclusion constraint": CategoryLexicalExclusion,
	"specific-format":                       CategoryFormat,
	"numerical":                             CategoryNumerical,
	"lexical-match":                         CategoryLexicalMatch,
	"lexical-exclusion":                     CategoryLexicalExclusion,
	"result":                                CategoryResult,
}

// categoryLabels maps model categories back to the exchange labels.
var categoryLabels = map[Category]string{
	CategoryFormat:           "Output → Specific format constraint",
	CategoryNumerical:        "Output → Numerical constraint",
	CategoryLexicalMatch:     "Output → Lexical matching constraint",
	CategoryLexicalExclusion: "Output → Lexical exclusion constraint",
	CategoryResult:           "result",
}

// wireNode mirrors the persisted exchange format: a nested record with
// exactly the ConstraintNode fields. Leaves omit source/scope and carry
// empty children.
type wireNode struct {
	Conditional bool        `json:"conditional"`
	ParentOk    bool        `json:"parent_ok"`
	Category    string      `json:"constraint_category"`
	Constraint  string      `json:"constraint"`
	Source      *string     `json:"source,omitempty"`
	Scope       *string     `json:"scope,omitempty"`
	Children    []*wireNode `json:"children"`
}

// Decode parses exchange-format JSON into a validated tree.
// Malformed structure (wrong child counts, bad leaf constraints, unknown
// categories) is reported as a joined list of ValidationErrors.
func Decode(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("tree is not valid JSON: %w", err)
	}
	if errs := ValidateWire(&w); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}
	return buildNode(&w), nil
}

// LoadFile reads and decodes a tree file, checking it against the embedded
// CUE schema before structural validation.
func LoadFile(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("tree file %s: %w", path, err)
	}
	return Decode(data)
}

// Encode serializes a tree back to the exchange format using the long
// category labels. Leaves carry null source/scope and empty children.
func Encode(n Node) ([]byte, error) {
	w := toWire(n)
	return json.MarshalIndent(w, "", "  ")
}

// buildNode converts a validated wire node into the tagged model.
// Callers must run ValidateWire first; buildNode assumes well-formed input.
func buildNode(w *wireNode) Node {
	if len(w.Children) == 0 {
		return &Leaf{
			ParentOk:  w.ParentOk,
			Satisfied: w.Constraint == "yes",
		}
	}
	c := &Constraint{
		Conditional: w.Conditional,
		ParentOk:    w.ParentOk,
		Category:    wireCategories[w.Category],
		Text:        w.Constraint,
		Pass:        buildNode(w.Children[0]),
		Fail:        buildNode(w.Children[1]),
	}
	if w.Source != nil {
		c.Source = *w.Source
	}
	if w.Scope != nil {
		c.Scope = *w.Scope
	}
	return c
}

func toWire(n Node) *wireNode {
	switch v := n.(type) {
	case *Leaf:
		constraint := "no"
		if v.Satisfied {
			constraint = "yes"
		}
		return &wireNode{
			ParentOk:   v.ParentOk,
			Category:   categoryLabels[CategoryResult],
			Constraint: constraint,
			Children:   []*wireNode{},
		}
	case *Constraint:
		source := v.Source
		scope := v.Scope
		return &wireNode{
			Conditional: v.Conditional,
			ParentOk:    v.ParentOk,
			Category:    categoryLabels[v.Category],
			Constraint:  v.Text,
			Source:      &source,
			Scope:       &scope,
			Children:    []*wireNode{toWire(v.Pass), toWire(v.Fail)},
		}
	default:
		return nil
	}
}
