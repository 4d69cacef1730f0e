package text

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+(\s|$)`)
	listItem    = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+[.)])\s+\S`)
)

// Chars counts Unicode code points, not bytes.
func Chars(s string) int {
	return utf8.RuneCountInString(s)
}

// Words counts whitespace-separated tokens.
func Words(s string) int {
	return len(strings.Fields(s))
}

// Sentences counts terminator-delimited sentences. Trailing text without
// a terminator counts as one sentence.
func Sentences(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n := len(sentenceEnd.FindAllString(s, -1))
	if n == 0 {
		return 1
	}
	// Text after the last terminator is an unterminated final sentence.
	if loc := sentenceEnd.FindAllStringIndex(s, -1); loc != nil {
		last := loc[len(loc)-1]
		if strings.TrimSpace(s[last[1]:]) != "" {
			n++
		}
	}
	return n
}

// Paragraphs counts blank-line separated blocks. Expects normalized text,
// where blank-line runs are already collapsed.
func Paragraphs(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n\n"))
}

// ListItems counts markdown-style bullet or numbered list lines.
func ListItems(s string) int {
	return len(listItem.FindAllString(s, -1))
}
