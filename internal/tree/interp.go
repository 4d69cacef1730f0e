package tree

import (
	"github.com/roach88/arbiter/internal/text"
)

// Evaluator supplies the individual check decisions during interpretation.
// Implementations must be deterministic: string, length, keyword, regex,
// and numeric tests only, never semantic inference.
type Evaluator interface {
	// Condition evaluates a trigger condition against the raw input text.
	// decided=false reports that the condition cannot be settled with
	// deterministic tests; the interpreter then fails closed (routes to
	// the Fail branch regardless of output content).
	Condition(c *Constraint, input string) (ok, decided bool)

	// Check evaluates a constraint against the named scope of the
	// normalized output. reason carries a short diagnostic when ok=false.
	Check(c *Constraint, output string) (ok bool, reason string)
}

// Outcome is the result of interpreting a tree against one (input, output)
// pair. Satisfied=true implies Reason and Violation are empty.
type Outcome struct {
	Satisfied bool
	Reason    string
	Violation string
}

// Evaluate walks the tree against one (input, output) pair.
//
// The output is normalized once up front (outer blank lines stripped,
// blank-line runs collapsed); every check operates on the normalized text.
// Conditional nodes consult only the raw input. Unconditional nodes whose
// parent_ok is false are skipped into their Fail branch without evaluation.
//
// When a "no" leaf is reached, Violation carries the source sentence of
// the nearest ancestor whose check actually failed. Skipped nodes and
// failed trigger conditions never attribute a violation, so a "no" leaf
// reached purely through skips yields an empty Violation.
func Evaluate(root Node, input, output string, ev Evaluator) Outcome {
	normalized := text.Normalize(output)
	return eval(root, input, normalized, ev, "", "")
}

func eval(n Node, input, output string, ev Evaluator, violation, reason string) Outcome {
	switch v := n.(type) {
	case *Leaf:
		if v.Satisfied {
			return Outcome{Satisfied: true}
		}
		if reason == "" {
			reason = "output does not satisfy the required constraints"
		}
		return Outcome{Satisfied: false, Reason: reason, Violation: violation}

	case *Constraint:
		if v.Conditional {
			ok, decided := ev.Condition(v, input)
			if !decided {
				ok = false // fail-closed
			}
			if ok {
				return eval(v.Pass, input, output, ev, violation, reason)
			}
			// An unmet trigger is routing, not a violation.
			return eval(v.Fail, input, output, ev, violation, reason)
		}

		if !v.ParentOk {
			// Inherited from an ancestor conditional whose condition
			// failed: skip without evaluating.
			return eval(v.Fail, input, output, ev, violation, reason)
		}

		ok, checkReason := ev.Check(v, output)
		if ok {
			return eval(v.Pass, input, output, ev, violation, reason)
		}
		return eval(v.Fail, input, output, ev, v.Source, checkReason)
	}

	// Unreachable for well-formed trees.
	return Outcome{Satisfied: false, Reason: "malformed tree node"}
}
