package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsAndCollapses(t *testing.T) {
	in := "  \n\nHello world\n\n\n\nGoodbye\n  "
	assert.Equal(t, "Hello world\n\nGoodbye", Normalize(in))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"single line",
		"  \n\nHello world\n\n\n\nGoodbye\n  ",
		"a\n\nb\n\nc",
		"\t\n \na\n \t\nb\n\n",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}

func TestNormalizeWhitespaceOnlyBlankLines(t *testing.T) {
	// Lines of spaces and tabs count as blank and collapse to empty lines.
	assert.Equal(t, "a\n\nb", Normalize("a\n \t \n\t\nb"))
}

func TestNormalizeCRLF(t *testing.T) {
	assert.Equal(t, "a\n\nb", Normalize("a\r\n\r\n\r\nb\r\n"))
}

func TestNormalizeUnicodeNFC(t *testing.T) {
	// Decomposed e + combining acute composes to the single code point.
	decomposed := "cafe\u0301"
	assert.Equal(t, "caf\u00e9", Normalize(decomposed))
}

func TestNormalizeAllBlank(t *testing.T) {
	assert.Equal(t, "", Normalize("  \n\t\n\n  "))
}

func TestNormalizePreservesInteriorIndentation(t *testing.T) {
	// Only blank lines are touched; leading spaces on content lines stay.
	in := "def f():\n    return 1"
	assert.Equal(t, in, Normalize(in))
}
