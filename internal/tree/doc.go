// Package tree implements the constraint decision tree: the data model,
// the JSON exchange codec, well-formedness validation, a deterministic
// printer, and the reference interpreter.
//
// A tree is produced once (by the oracle or by hand) and treated as
// read-only input everywhere else. The model is a tagged variant:
// a node is either a *Leaf (terminal verdict, no children) or a
// *Constraint (exactly two branches). This makes the children-count
// invariant structural rather than asserted at runtime.
//
// BRANCH CONVENTION:
// Constraint.Pass corresponds to children[0] of the exchange format
// (condition/constraint satisfied), Constraint.Fail to children[1]
// (not satisfied).
//
// INTERPRETATION:
// Evaluate walks a tree against one (input, output) pair. Conditional
// nodes consult only the raw input through deterministic checks and
// fail closed when undecidable. Unconditional nodes whose parent_ok
// field is false are skipped straight into their Fail branch. See
// Evaluate for the full contract.
package tree
