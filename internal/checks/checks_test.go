package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONValue(t *testing.T) {
	ok, _ := JSONValue(`{"a": 1}`)
	assert.True(t, ok)

	ok, _ = JSONValue(`  [1, 2, 3]  `)
	assert.True(t, ok, "surrounding whitespace is tolerated")

	ok, reason := JSONValue(`{"a": `)
	assert.False(t, ok)
	assert.Equal(t, "output is not valid JSON", reason)
}

func TestJSONObject(t *testing.T) {
	obj, ok, _ := JSONObject(`{"queries": ["a", "b"], "n": 2}`)
	require.True(t, ok)
	assert.Contains(t, obj, "queries")
	assert.Contains(t, obj, "n")

	_, ok, reason := JSONObject(`[1, 2]`)
	assert.False(t, ok, "an array is not an object")
	assert.NotEmpty(t, reason)
}

func TestJSONArray(t *testing.T) {
	arr, ok, _ := JSONArray(`[1, "two", null]`)
	require.True(t, ok)
	assert.Len(t, arr, 3)

	_, ok, _ = JSONArray(`{"a": 1}`)
	assert.False(t, ok)
}

func TestMarkdownHeader(t *testing.T) {
	ok, _ := MarkdownHeader("# Title\n\nbody")
	assert.True(t, ok)

	ok, _ = MarkdownHeader("intro\n### Deep section")
	assert.True(t, ok)

	ok, _ = MarkdownHeader("#hashtag without space")
	assert.False(t, ok)

	ok, reason := MarkdownHeader("plain prose")
	assert.False(t, ok)
	assert.Equal(t, "output contains no markdown header", reason)
}

func TestFencedCodeBlock(t *testing.T) {
	ok, _ := FencedCodeBlock("```go\nfmt.Println(1)\n```")
	assert.True(t, ok)

	ok, _ = FencedCodeBlock("an unterminated ``` fence")
	assert.False(t, ok)
}

func TestKeyValueLines(t *testing.T) {
	ok, _ := KeyValueLines("name: alice\n\nrole: admin")
	assert.True(t, ok, "blank lines are skipped")

	ok, reason := KeyValueLines("name: alice\nnot a pair")
	assert.False(t, ok)
	assert.Contains(t, reason, "line 2")
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Hello World", "world", false))
	assert.False(t, Contains("Hello World", "world", true))
	assert.True(t, Contains("Hello World", "World", true))
}

func TestMatchesPattern(t *testing.T) {
	ok, _ := MatchesPattern("ref: ABC-123", `[A-Z]+-\d+`)
	assert.True(t, ok)

	ok, reason := MatchesPattern("no match", `^\d+$`)
	assert.False(t, ok)
	assert.Contains(t, reason, "does not match")

	// A broken pattern is a definite failure, not a fault.
	ok, reason = MatchesPattern("anything", `([`)
	assert.False(t, ok)
	assert.Contains(t, reason, "invalid pattern")
}

func TestExcludes(t *testing.T) {
	ok, _ := Excludes("clean text", []string{"TODO", "FIXME"}, false)
	assert.True(t, ok)

	ok, reason := Excludes("a todo remains", []string{"TODO"}, false)
	assert.False(t, ok)
	assert.Contains(t, reason, `"TODO"`)

	ok, _ = Excludes("a todo remains", []string{"TODO"}, true)
	assert.True(t, ok, "case-sensitive exclusion ignores lowercase occurrence")
}

func TestLowercase(t *testing.T) {
	ok, _ := Lowercase("all lower, with 123 and punctuation!")
	assert.True(t, ok)

	ok, _ = Lowercase("Has a Capital")
	assert.False(t, ok)
}

func TestBoundCompare(t *testing.T) {
	assert.True(t, Bound{Op: "min", Min: 3}.Compare(3))
	assert.False(t, Bound{Op: "min", Min: 3}.Compare(2))
	assert.True(t, Bound{Op: "max", Max: 5}.Compare(5))
	assert.False(t, Bound{Op: "max", Max: 5}.Compare(6))
	assert.True(t, Bound{Op: "exact", Min: 4}.Compare(4))
	assert.True(t, Bound{Op: "range", Min: 2, Max: 4}.Compare(3))
	assert.False(t, Bound{Op: "range", Min: 2, Max: 4}.Compare(5))
}

func TestBoundString(t *testing.T) {
	assert.Equal(t, "at least 3", Bound{Op: "min", Min: 3}.String())
	assert.Equal(t, "between 2 and 4", Bound{Op: "range", Min: 2, Max: 4}.String())
}
