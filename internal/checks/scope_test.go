package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScopeEntireOutput(t *testing.T) {
	for _, scope := range []string{"", "entire output", "Entire Output"} {
		got, ok, _ := ResolveScope(scope, "full text")
		require.True(t, ok)
		assert.Equal(t, "full text", got)
	}
}

func TestResolveScopeLines(t *testing.T) {
	out := "first line\n\nmiddle\nlast line"

	got, ok, _ := ResolveScope("the first line", out)
	require.True(t, ok)
	assert.Equal(t, "first line", got)

	got, ok, _ = ResolveScope("the last line", out)
	require.True(t, ok)
	assert.Equal(t, "last line", got)

	_, ok, reason := ResolveScope("the first line", "  \n \n")
	assert.False(t, ok)
	assert.Equal(t, "output has no lines", reason)
}

func TestResolveScopeFirstSentence(t *testing.T) {
	got, ok, _ := ResolveScope("the first sentence", "One here. Two there.")
	require.True(t, ok)
	assert.Equal(t, "One here.", got)
}

func TestResolveScopeParagraphs(t *testing.T) {
	out := "opening paragraph\n\nsecond block\n\nclosing block"

	got, ok, _ := ResolveScope("the first paragraph", out)
	require.True(t, ok)
	assert.Equal(t, "opening paragraph", got)

	got, ok, _ = ResolveScope("the last paragraph", out)
	require.True(t, ok)
	assert.Equal(t, "closing block", got)
}

func TestResolveScopeJSONField(t *testing.T) {
	out := `{"queries": ["a", "b"], "note": "hello"}`

	got, ok, _ := ResolveScope("JSON field 'queries'", out)
	require.True(t, ok)
	assert.JSONEq(t, `["a", "b"]`, got)

	// String fields render unquoted so lexical checks see the content.
	got, ok, _ = ResolveScope(`the field "note"`, out)
	require.True(t, ok)
	assert.Equal(t, "hello", got)

	got, ok, _ = ResolveScope("output['note']", out)
	require.True(t, ok)
	assert.Equal(t, "hello", got)
}

func TestResolveScopeJSONFieldFailures(t *testing.T) {
	_, ok, reason := ResolveScope("JSON field 'queries'", "not json")
	assert.False(t, ok, "a named field on unparsable output is a definite failure")
	assert.NotEmpty(t, reason)

	_, ok, reason = ResolveScope("JSON field 'missing'", `{"present": 1}`)
	assert.False(t, ok)
	assert.Contains(t, reason, `"missing"`)
}

func TestResolveScopeUnrecognizedFallsBack(t *testing.T) {
	got, ok, _ := ResolveScope("the concluding remarks", "whole thing")
	require.True(t, ok)
	assert.Equal(t, "whole thing", got, "descriptive scopes widen to the entire output")
}
