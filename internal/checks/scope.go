package checks

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/arbiter/internal/text"
)

// jsonFieldRef recognizes scope phrases that name a JSON field, in either
// of the forms the oracle emits: `JSON field 'queries'` or `output['queries']`.
var jsonFieldRef = regexp.MustCompile(`(?i)(?:json\s+field|field|key)\s+['"]([A-Za-z0-9_.-]+)['"]|output\[['"]([A-Za-z0-9_.-]+)['"]\]`)

// ResolveScope extracts the portion of the normalized output a check
// targets. Unrecognized scope descriptions fall back to the entire
// output; a recognized scope that cannot be extracted (e.g. a JSON field
// on unparsable output) is a definite failure with a diagnostic.
func ResolveScope(scope, output string) (scoped string, ok bool, reason string) {
	s := strings.ToLower(strings.TrimSpace(scope))

	switch {
	case s == "" || s == "entire output":
		return output, true, ""

	case strings.Contains(s, "first line"):
		lines := nonBlankLines(output)
		if len(lines) == 0 {
			return "", false, "output has no lines"
		}
		return lines[0], true, ""

	case strings.Contains(s, "last line"):
		lines := nonBlankLines(output)
		if len(lines) == 0 {
			return "", false, "output has no lines"
		}
		return lines[len(lines)-1], true, ""

	case strings.Contains(s, "first sentence"):
		if text.Sentences(output) == 0 {
			return "", false, "output has no sentences"
		}
		return firstSentence(output), true, ""

	case strings.Contains(s, "first paragraph"):
		paras := strings.Split(strings.TrimSpace(output), "\n\n")
		return paras[0], true, ""

	case strings.Contains(s, "last paragraph"):
		paras := strings.Split(strings.TrimSpace(output), "\n\n")
		return paras[len(paras)-1], true, ""
	}

	if m := jsonFieldRef.FindStringSubmatch(scope); m != nil {
		field := m[1]
		if field == "" {
			field = m[2]
		}
		return resolveJSONField(field, output)
	}

	// Descriptive scope we cannot narrow; check the whole output rather
	// than failing a constraint the output might satisfy.
	return output, true, ""
}

// resolveJSONField parses the output as a JSON object and renders the
// named field as text for downstream checks.
func resolveJSONField(field, output string) (string, bool, string) {
	obj, ok, reason := JSONObject(output)
	if !ok {
		return "", false, reason
	}
	raw, present := obj[field]
	if !present {
		return "", false, fmt.Sprintf("JSON field %q missing from output", field)
	}

	// Strings render unquoted so lexical checks see the content itself.
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, true, ""
	}
	return string(raw), true, ""
}

func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

var sentenceSplit = regexp.MustCompile(`[.!?]+(\s|$)`)

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if loc := sentenceSplit.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[:loc[1]])
	}
	return s
}
