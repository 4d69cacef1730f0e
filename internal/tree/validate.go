package tree

import (
	"fmt"
	"strings"
)

// Tree validation error codes (E200-E219)
const (
	// Well-formedness errors (E200-E209)
	ErrBadChildCount  = "E200" // leaf must have 0 children, constraint exactly 2
	ErrBadLeafResult  = "E201" // leaf constraint must be "yes" or "no"
	ErrUnknownCat     = "E202" // unknown constraint category
	ErrResultNotLeaf  = "E203" // "result" category on a node with children
	ErrRootParentOk   = "E204" // root must carry parent_ok = true
	ErrMissingSource  = "E205" // constraint node missing source
	ErrLeafHasSource  = "E206" // leaf carries source or scope
	ErrMissingScope   = "E207" // constraint node missing scope

	// Ordering errors (E210-E219), advisory - see CheckOrdering
	ErrCondAfterUncond = "E210" // conditional below an unconditional on the same path
	ErrCategoryOrder   = "E211" // category granularity order violated
)

// ValidationError reports one structural problem in a tree.
type ValidationError struct {
	Path    string `json:"path"` // e.g. "tree.children[1].children[0]"
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
}

// joinValidationErrors collapses a list into one error value.
func joinValidationErrors(errs []ValidationError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("tree validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

// ValidateWire checks a decoded exchange tree for well-formedness.
// Returns all errors found (does not fail-fast).
//
// Rules:
//   - a node has either zero children (leaf) or exactly two
//   - leaf constraint is "yes" or "no", category "result", no source/scope
//   - constraint nodes carry a known category, a source, and a scope
//   - the root carries parent_ok = true (the implicit incoming state)
func ValidateWire(root *wireNode) []ValidationError {
	var errs []ValidationError
	if !root.ParentOk {
		errs = append(errs, ValidationError{
			Path:    "tree",
			Message: "root node must have parent_ok = true",
			Code:    ErrRootParentOk,
		})
	}
	errs = append(errs, validateWireNode(root, "tree")...)
	return errs
}

func validateWireNode(w *wireNode, path string) []ValidationError {
	var errs []ValidationError

	cat, known := wireCategories[w.Category]
	if !known {
		errs = append(errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("unknown constraint category %q", w.Category),
			Code:    ErrUnknownCat,
		})
	}

	switch len(w.Children) {
	case 0:
		// Leaf rules
		if w.Constraint != "yes" && w.Constraint != "no" {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("leaf constraint must be \"yes\" or \"no\", got %q", w.Constraint),
				Code:    ErrBadLeafResult,
			})
		}
		if known && cat != CategoryResult {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("leaf must have category \"result\", got %q", w.Category),
				Code:    ErrUnknownCat,
			})
		}
		if (w.Source != nil && *w.Source != "") || (w.Scope != nil && *w.Scope != "") {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: "leaf nodes must not carry source or scope",
				Code:    ErrLeafHasSource,
			})
		}
	case 2:
		// Constraint rules
		if known && cat == CategoryResult {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: "\"result\" category is only valid on leaves",
				Code:    ErrResultNotLeaf,
			})
		}
		if w.Source == nil || *w.Source == "" {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: "constraint node missing source sentence",
				Code:    ErrMissingSource,
			})
		}
		if w.Scope == nil || *w.Scope == "" {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: "constraint node missing scope",
				Code:    ErrMissingScope,
			})
		}
		for i, child := range w.Children {
			errs = append(errs, validateWireNode(child, fmt.Sprintf("%s.children[%d]", path, i))...)
		}
	default:
		errs = append(errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("node must have 0 or exactly 2 children, got %d", len(w.Children)),
			Code:    ErrBadChildCount,
		})
	}

	return errs
}

// categoryRank orders categories macro-to-micro within a group:
// overall structure first, then counts, then content.
var categoryRank = map[Category]int{
	CategoryFormat:           0,
	CategoryNumerical:        1,
	CategoryLexicalMatch:     2,
	CategoryLexicalExclusion: 3,
}

// CheckOrdering asserts the construction-time ordering contract on a tree:
// along every root-to-leaf path, conditional constraints precede
// unconditional ones, and within the unconditional group the category
// rank never decreases.
//
// This is a sanity check for generated trees. Interpretation never
// consults it; a tree that violates ordering still evaluates.
func CheckOrdering(root Node) []ValidationError {
	return checkOrdering(root, "tree", false, -1)
}

func checkOrdering(n Node, path string, sawUncond bool, lastRank int) []ValidationError {
	c, ok := n.(*Constraint)
	if !ok {
		return nil
	}

	var errs []ValidationError
	if c.Conditional {
		if sawUncond {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: "conditional constraint appears below an unconditional one",
				Code:    ErrCondAfterUncond,
			})
		}
	} else {
		if rank := categoryRank[c.Category]; rank < lastRank {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("category %q out of order (format -> numerical -> lexical)", c.Category),
				Code:    ErrCategoryOrder,
			})
		} else {
			lastRank = rank
		}
		sawUncond = true
	}

	errs = append(errs, checkOrdering(c.Pass, path+".children[0]", sawUncond, lastRank)...)
	errs = append(errs, checkOrdering(c.Fail, path+".children[1]", sawUncond, lastRank)...)
	return errs
}
