// Package text provides the normalization and counting primitives shared
// by constraint checks and the execution harness.
package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares raw model output for constraint checking:
//
//  1. Unicode NFC normalization, so lexical checks are stable across
//     composed/decomposed forms of the same text.
//  2. Leading and trailing blank lines are stripped.
//  3. Any run of consecutive blank lines collapses to a single blank line.
//
// A line consisting only of spaces and tabs counts as blank; its
// whitespace is dropped in the collapsed form. Normalize is idempotent.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")

	// Trim leading and trailing blank lines.
	start := 0
	for start < len(lines) && isBlank(lines[start]) {
		start++
	}
	end := len(lines)
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	lines = lines[start:end]

	// Collapse interior blank-line runs.
	out := make([]string, 0, len(lines))
	blankRun := false
	for _, line := range lines {
		if isBlank(line) {
			if !blankRun {
				out = append(out, "")
			}
			blankRun = true
			continue
		}
		blankRun = false
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
