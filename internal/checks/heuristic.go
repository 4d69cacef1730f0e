package checks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/arbiter/internal/text"
	"github.com/roach88/arbiter/internal/tree"
)

// Heuristic is a deterministic tree.Evaluator that dispatches on the
// constraint description text. It recognizes the phrasings the oracle is
// instructed to emit; anything it cannot recognize is reported as
// undecidable (conditions) or as a definite failure with a diagnostic
// (constraints), never guessed at.
type Heuristic struct{}

var _ tree.Evaluator = Heuristic{}

var quotedToken = regexp.MustCompile(`"([^"]+)"|'([^']+)'` + "|`([^`]+)`")

// quotedStrings extracts all quoted literals from constraint text.
func quotedStrings(s string) []string {
	var out []string
	for _, m := range quotedToken.FindAllStringSubmatch(s, -1) {
		for _, g := range m[1:] {
			if g != "" {
				out = append(out, g)
			}
		}
	}
	return out
}

// Condition evaluates a trigger condition against the raw input using
// string, length, keyword, and numeric tests only. Conditions that do not
// fit a recognized deterministic form report decided=false so the
// interpreter fails closed.
func (Heuristic) Condition(c *tree.Constraint, input string) (ok, decided bool) {
	t := strings.ToLower(c.Text)
	tokens := quotedStrings(c.Text)

	switch {
	case len(tokens) > 0 && strings.Contains(t, "start"):
		return strings.HasPrefix(strings.TrimSpace(input), tokens[0]), true

	case len(tokens) > 0 && strings.Contains(t, "end"):
		return strings.HasSuffix(strings.TrimSpace(input), tokens[0]), true

	case len(tokens) > 0 && containsAny(t, "contain", "include", "mention", "keyword"):
		for _, tok := range tokens {
			if Contains(input, tok, false) {
				return true, true
			}
		}
		return false, true
	}

	if bound, unit, found := parseBound(t); found {
		n, countable := countUnit(unit, input)
		if countable {
			return bound.Compare(n), true
		}
	}

	return false, false
}

// Check evaluates a constraint against the named scope of the normalized
// output, dispatching on category.
func (Heuristic) Check(c *tree.Constraint, output string) (bool, string) {
	scoped, ok, reason := ResolveScope(c.Scope, output)
	if !ok {
		return false, reason
	}

	switch c.Category {
	case tree.CategoryFormat:
		return checkFormat(c.Text, scoped)
	case tree.CategoryNumerical:
		return checkNumerical(c.Text, scoped)
	case tree.CategoryLexicalMatch:
		return checkLexicalMatch(c.Text, scoped)
	case tree.CategoryLexicalExclusion:
		return checkLexicalExclusion(c.Text, scoped)
	default:
		return false, fmt.Sprintf("unsupported constraint category %q", c.Category)
	}
}

func checkFormat(constraint, scoped string) (bool, string) {
	t := strings.ToLower(constraint)
	switch {
	case strings.Contains(t, "json object"):
		_, ok, reason := JSONObject(scoped)
		return ok, reason
	case strings.Contains(t, "json array") || strings.Contains(t, "list of"):
		_, ok, reason := JSONArray(scoped)
		return ok, reason
	case strings.Contains(t, "json"):
		return JSONValue(scoped)
	case strings.Contains(t, "markdown") || strings.Contains(t, "header") || strings.Contains(t, "heading"):
		return MarkdownHeader(scoped)
	case strings.Contains(t, "code block") || strings.Contains(t, "code fence"):
		return FencedCodeBlock(scoped)
	case strings.Contains(t, "key-value") || strings.Contains(t, "key: value") || strings.Contains(t, "key–value"):
		return KeyValueLines(scoped)
	default:
		return false, fmt.Sprintf("unrecognized format requirement: %s", constraint)
	}
}

func checkNumerical(constraint, scoped string) (bool, string) {
	t := strings.ToLower(constraint)
	bound, unit, found := parseBound(t)
	if !found {
		return false, fmt.Sprintf("no numeric bound recognized in constraint: %s", constraint)
	}
	n, countable := countUnit(unit, scoped)
	if !countable {
		return false, fmt.Sprintf("no countable unit recognized in constraint: %s", constraint)
	}
	if bound.Compare(n) {
		return true, ""
	}
	return false, fmt.Sprintf("expected %s %s, found %d", bound, unit, n)
}

func checkLexicalMatch(constraint, scoped string) (bool, string) {
	t := strings.ToLower(constraint)
	tokens := quotedStrings(constraint)

	switch {
	case strings.Contains(t, "lowercase"):
		return Lowercase(scoped)

	case strings.Contains(t, "regex") || strings.Contains(t, "pattern"):
		if len(tokens) == 0 {
			return false, fmt.Sprintf("no pattern literal in constraint: %s", constraint)
		}
		return MatchesPattern(scoped, tokens[0])

	case len(tokens) > 0 && containsAny(t, "exact", "be the string", "equal"):
		for _, tok := range tokens {
			if strings.TrimSpace(scoped) == tok {
				return true, ""
			}
		}
		return false, fmt.Sprintf("output does not exactly match any of %q", tokens)

	case len(tokens) > 0 && strings.Contains(t, "one of"):
		for _, tok := range tokens {
			if strings.TrimSpace(scoped) == tok {
				return true, ""
			}
		}
		return false, fmt.Sprintf("output is not one of %q", tokens)

	case len(tokens) > 0:
		caseSensitive := strings.Contains(t, "case-sensitive") || strings.Contains(t, "case sensitive")
		for _, tok := range tokens {
			if !Contains(scoped, tok, caseSensitive) {
				return false, fmt.Sprintf("required token %q missing from output", tok)
			}
		}
		return true, ""

	default:
		return false, fmt.Sprintf("no lexical requirement recognized in constraint: %s", constraint)
	}
}

func checkLexicalExclusion(constraint, scoped string) (bool, string) {
	tokens := quotedStrings(constraint)
	if len(tokens) == 0 {
		return false, fmt.Sprintf("no forbidden token recognized in constraint: %s", constraint)
	}
	t := strings.ToLower(constraint)
	caseSensitive := strings.Contains(t, "case-sensitive") || strings.Contains(t, "case sensitive")
	return Excludes(scoped, tokens, caseSensitive)
}

// Bound phrasings, checked in order. "more than"/"fewer than" are strict
// and adjusted to inclusive bounds.
var (
	rangeBound = regexp.MustCompile(`between\s+(\d+)\s+and\s+(\d+)`)
	exactBound = regexp.MustCompile(`exactly\s+(\d+)`)
	minBound   = regexp.MustCompile(`(?:at least|no fewer than|minimum of|a minimum of)\s+(\d+)`)
	maxBound   = regexp.MustCompile(`(?:at most|no more than|not exceed(?:s)?|maximum of|a maximum of|up to|within)\s+(\d+)`)
	gtBound    = regexp.MustCompile(`(?:more than|exceed(?:s)?|longer than|over)\s+(\d+)`)
	ltBound    = regexp.MustCompile(`(?:fewer than|less than|shorter than|under)\s+(\d+)`)
)

func parseBound(t string) (Bound, string, bool) {
	var b Bound
	switch {
	case rangeBound.MatchString(t):
		m := rangeBound.FindStringSubmatch(t)
		b = Bound{Op: "range", Min: atoi(m[1]), Max: atoi(m[2])}
	case exactBound.MatchString(t):
		b = Bound{Op: "exact", Min: atoi(exactBound.FindStringSubmatch(t)[1])}
	case minBound.MatchString(t):
		b = Bound{Op: "min", Min: atoi(minBound.FindStringSubmatch(t)[1])}
	case maxBound.MatchString(t):
		b = Bound{Op: "max", Max: atoi(maxBound.FindStringSubmatch(t)[1])}
	case gtBound.MatchString(t):
		b = Bound{Op: "min", Min: atoi(gtBound.FindStringSubmatch(t)[1]) + 1}
	case ltBound.MatchString(t):
		b = Bound{Op: "max", Max: atoi(ltBound.FindStringSubmatch(t)[1]) - 1}
	default:
		return Bound{}, "", false
	}
	return b, parseUnit(t), true
}

func parseUnit(t string) string {
	switch {
	case containsAny(t, "character", "char"):
		return "characters"
	case strings.Contains(t, "word"):
		return "words"
	case strings.Contains(t, "sentence"):
		return "sentences"
	case strings.Contains(t, "paragraph"):
		return "paragraphs"
	case containsAny(t, "item", "element", "entry", "entries", "bullet", "list"):
		return "items"
	case strings.Contains(t, "line"):
		return "lines"
	default:
		return ""
	}
}

func countUnit(unit, s string) (int, bool) {
	switch unit {
	case "characters":
		return text.Chars(s), true
	case "words":
		return text.Words(s), true
	case "sentences":
		return text.Sentences(s), true
	case "paragraphs":
		return text.Paragraphs(s), true
	case "items":
		return text.ListItems(s), true
	case "lines":
		return len(nonBlankLines(s)), true
	default:
		return 0, false
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
