// Package harness loads an externally generated validator and runs it
// against one (input, output) pair, producing exactly one Verdict or a
// distinct harness-level ContractError.
//
// ARCHITECTURE:
//
// Isolation-per-call:
// Every Run loads the validator source into a fresh yaegi interpreter.
// No state survives between invocations, so independent runs can be
// fanned out across workers with no coordination (see RunSuite).
//
// Fixed contract:
// The source must define, under the well-known name IsValidOutput, a
// function (output, input string) -> (bool, string, string). The harness
// enforces arity and return shape by reflection; it never assumes them.
//
// Failure semantics:
// A validator that runs and returns false is a validation failure and
// becomes a Verdict. A validator that cannot be executed as specified
// (missing entry point, wrong shape, fault, timeout) is a ContractError
// and is NEVER shaped like a verdict: both collapse to a non-passing
// boolean at the process boundary, but only verdicts carry a content
// judgment.
package harness
