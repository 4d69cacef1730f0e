// Package checks implements the category-specific validation primitives
// consumed by validator bodies and by the reference tree interpreter.
//
// Every primitive treats malformed or unparsable content as a definite
// check failure with a diagnostic reason, never as a fault. None of them
// panic on arbitrary input.
package checks

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// JSONValue parses s as any JSON document.
func JSONValue(s string) (ok bool, reason string) {
	if json.Valid([]byte(strings.TrimSpace(s))) {
		return true, ""
	}
	return false, "output is not valid JSON"
}

// JSONObject parses s as a JSON object and returns its fields.
func JSONObject(s string) (map[string]json.RawMessage, bool, string) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &obj); err != nil {
		return nil, false, "output is not a valid JSON object"
	}
	return obj, true, ""
}

// JSONArray parses s as a JSON array and returns its elements.
func JSONArray(s string) ([]json.RawMessage, bool, string) {
	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &arr); err != nil {
		return nil, false, "output is not a valid JSON array"
	}
	return arr, true, ""
}

var (
	markdownHeader = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	fencedBlock    = regexp.MustCompile("(?s)```.*?```")
	keyValueLine   = regexp.MustCompile(`(?m)^\s*[^:\n]+:\s*\S`)
)

// MarkdownHeader reports whether s contains at least one ATX header line.
func MarkdownHeader(s string) (bool, string) {
	if markdownHeader.MatchString(s) {
		return true, ""
	}
	return false, "output contains no markdown header"
}

// FencedCodeBlock reports whether s contains a complete ``` fence pair.
func FencedCodeBlock(s string) (bool, string) {
	if fencedBlock.MatchString(s) {
		return true, ""
	}
	return false, "output contains no fenced code block"
}

// KeyValueLines reports whether every non-blank line of s is a key: value
// pair.
func KeyValueLines(s string) (bool, string) {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !keyValueLine.MatchString(line) {
			return false, fmt.Sprintf("line %d is not a key: value pair", i+1)
		}
	}
	return true, ""
}

// Contains reports whether s contains needle.
func Contains(s, needle string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.Contains(s, needle)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(needle))
}

// MatchesPattern compiles pattern and matches it against s. A pattern
// that does not compile is a definite failure, not a fault.
func MatchesPattern(s, pattern string) (bool, string) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Sprintf("invalid pattern %q: %v", pattern, err)
	}
	if re.MatchString(s) {
		return true, ""
	}
	return false, fmt.Sprintf("output does not match pattern %q", pattern)
}

// Excludes verifies none of the forbidden tokens occur in s. On failure
// the reason names the first token found.
func Excludes(s string, tokens []string, caseSensitive bool) (bool, string) {
	for _, tok := range tokens {
		if Contains(s, tok, caseSensitive) {
			return false, fmt.Sprintf("forbidden token %q present in output", tok)
		}
	}
	return true, ""
}

// Lowercase reports whether s contains no uppercase letters.
func Lowercase(s string) (bool, string) {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false, "output contains uppercase characters"
		}
	}
	return true, ""
}

// Bound is a numeric comparison parsed from constraint text.
type Bound struct {
	Op  string // "min", "max", "exact", "range"
	Min int
	Max int
}

// Compare checks n against the bound.
func (b Bound) Compare(n int) bool {
	switch b.Op {
	case "min":
		return n >= b.Min
	case "max":
		return n <= b.Max
	case "exact":
		return n == b.Min
	case "range":
		return n >= b.Min && n <= b.Max
	default:
		return false
	}
}

// String renders the bound for diagnostics, e.g. "at least 3".
func (b Bound) String() string {
	switch b.Op {
	case "min":
		return fmt.Sprintf("at least %d", b.Min)
	case "max":
		return fmt.Sprintf("at most %d", b.Max)
	case "exact":
		return fmt.Sprintf("exactly %d", b.Min)
	case "range":
		return fmt.Sprintf("between %d and %d", b.Min, b.Max)
	default:
		return "unknown bound"
	}
}
