package testutil

// Canned validator sources for harness tests. Each exercises one path of
// the contract: clean pass, verbatim failure, missing entry point,
// malformed return shape, panic, and an unbounded loop for the timeout
// budget.

// AlwaysPass returns (true, "", "") for any pair.
const AlwaysPass = `package validator

func IsValidOutput(output string, input string) (bool, string, string) {
	return true, "", ""
}
`

// AlwaysFail returns a fixed reason and violation verbatim.
const AlwaysFail = `package validator

func IsValidOutput(output string, input string) (bool, string, string) {
	return false, "too short", "output must exceed 10 words"
}
`

// PassWithNoise returns extra reason/violation text alongside true; the
// harness must discard both.
const PassWithNoise = `package validator

func IsValidOutput(output string, input string) (bool, string, string) {
	return true, "ignore me", "and me"
}
`

// MissingEntryPoint defines a function under the wrong name.
const MissingEntryPoint = `package validator

func CheckOutput(output string, input string) (bool, string, string) {
	return true, "", ""
}
`

// TwoValueReturn returns a 2-element result - a malformed contract.
const TwoValueReturn = `package validator

func IsValidOutput(output string, input string) (bool, string) {
	return true, ""
}
`

// Panics faults during invocation.
const Panics = `package validator

func IsValidOutput(output string, input string) (bool, string, string) {
	var xs []string
	_ = xs[3]
	return true, "", ""
}
`

// Spins never returns, exercising the execution budget.
const Spins = `package validator

func IsValidOutput(output string, input string) (bool, string, string) {
	n := 0
	for {
		n++
		if n < 0 {
			break
		}
	}
	return true, "", ""
}
`

// WordCount is a realistic generated validator: the output must exceed
// 10 words, with normalization applied first.
const WordCount = `package validator

import "strings"

func normalize(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	var out []string
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func IsValidOutput(output string, input string) (bool, string, string) {
	normalized := normalize(output)
	if len(strings.Fields(normalized)) > 10 {
		return true, "", ""
	}
	return false, "too short", "output must exceed 10 words"
}
`

// ForbiddenImport tries to reach outside the stdlib allowlist.
const ForbiddenImport = `package validator

import "os"

func IsValidOutput(output string, input string) (bool, string, string) {
	_, err := os.ReadFile("/etc/hostname")
	return err == nil, "", ""
}
`
