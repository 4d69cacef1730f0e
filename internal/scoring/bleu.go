// Package scoring measures how close a produced failure reason is to a
// gold label, using sentence-level BLEU. It is a standalone evaluation
// utility: validation never consults it.
package scoring

import (
	"math"
	"regexp"
	"strings"
)

const maxOrder = 4

var whitespace = regexp.MustCompile(`\s+`)

// normalize lowercases, trims, collapses whitespace, and strips one pair
// of outer quotes if present.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespace.ReplaceAllString(s, " ")
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return s
}

// Score computes smoothed sentence-level BLEU between a gold reference
// and a hypothesis.
//
// Edge cases: both empty -> 1.0, exactly one empty -> 0.0. Zero n-gram
// matches are smoothed with a geometric sequence (each zero precision
// becomes 1/(2^k * denominator)) so short hypotheses score above zero.
func Score(gold, hypothesis string) float64 {
	ref := normalize(gold)
	hyp := normalize(hypothesis)

	refEmpty := ref == ""
	hypEmpty := hyp == ""
	if refEmpty && hypEmpty {
		return 1.0
	}
	if refEmpty != hypEmpty {
		return 0.0
	}

	refTokens := strings.Fields(ref)
	hypTokens := strings.Fields(hyp)

	order := maxOrder
	if len(hypTokens) < order {
		order = len(hypTokens)
	}

	// Modified n-gram precisions with clipped counts.
	logSum := 0.0
	smooth := 1
	for n := 1; n <= order; n++ {
		matched, total := clippedMatches(refTokens, hypTokens, n)
		p := 0.0
		if total > 0 {
			if matched > 0 {
				p = float64(matched) / float64(total)
			} else {
				// Geometric smoothing for zero counts.
				p = 1.0 / (math.Pow(2, float64(smooth)) * float64(total))
				smooth++
			}
		}
		if p == 0 {
			return 0.0
		}
		logSum += math.Log(p)
	}
	precision := math.Exp(logSum / float64(order))

	// Brevity penalty.
	bp := 1.0
	if len(hypTokens) < len(refTokens) {
		bp = math.Exp(1.0 - float64(len(refTokens))/float64(len(hypTokens)))
	}

	return bp * precision
}

// clippedMatches counts hypothesis n-grams that occur in the reference,
// clipping each n-gram's count at its reference count.
func clippedMatches(ref, hyp []string, n int) (matched, total int) {
	refCounts := ngramCounts(ref, n)
	hypCounts := ngramCounts(hyp, n)

	for gram, count := range hypCounts {
		total += count
		if rc := refCounts[gram]; rc < count {
			matched += rc
		} else {
			matched += count
		}
	}
	return matched, total
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}
