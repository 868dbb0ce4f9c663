package chatbot

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Threshold is the confidence a fuzzy match must clear to be accepted.
const Threshold = 0.6

// Matcher scores how well an input matches a stored pattern, 0..1.
type Matcher interface {
	Score(input, pattern string) float64
}

// ExactMatcher accepts equality or the pattern appearing as a substring of
// the input (both normalized).
type ExactMatcher struct{}

func (ExactMatcher) Score(input, pattern string) float64 {
	if pattern == "" {
		return 0
	}
	// Substring matches align on word boundaries so "hi" never fires
	// inside "think".
	if input == pattern || strings.Contains(" "+input+" ", " "+pattern+" ") {
		return 1
	}
	return 0
}

// FuzzyMatcher blends token-set Jaccard overlap with normalized levenshtein
// similarity, so both word reorderings and small typos score high.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Score(input, pattern string) float64 {
	if input == "" || pattern == "" {
		return 0
	}
	j := jaccard(input, pattern)
	l := levenshteinSimilarity(input, pattern)
	if j > l {
		return j
	}
	return l
}

func jaccard(a, b string) float64 {
	aw := strings.Fields(a)
	bw := strings.Fields(b)
	if len(aw) == 0 || len(bw) == 0 {
		return 0
	}

	set := map[string]bool{}
	for _, w := range aw {
		set[w] = true
	}
	union := map[string]bool{}
	for _, w := range append(aw, bw...) {
		union[w] = true
	}
	inter := 0
	seen := map[string]bool{}
	for _, w := range bw {
		if set[w] && !seen[w] {
			inter++
			seen[w] = true
		}
	}
	return float64(inter) / float64(len(union))
}

func levenshteinSimilarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// Normalize case-folds, strips punctuation and collapses whitespace.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '\t':
			b.WriteRune(r)
		default:
			// Punctuation and other runes drop out.
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
