// Package suggest finds "did you mean" candidates for mistyped command, resolver and enum
// names.
package suggest

import (
	"cmp"
	"slices"
	"strings"
)

// threshold is the minimum similarity score a candidate needs to be suggested.
const threshold = 0.5

type match struct {
	name  string
	score float64
}

// FindSimilar returns up to maxResults candidates similar to target, best match first. Ties
// are ordered by name. Comparison ignores case, and '-' and '_' are treated alike.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	if target == "" || maxResults <= 0 {
		return []string{}
	}

	var matches []match
	for _, name := range candidates {
		if score := calculateSimilarity(target, name); score > threshold {
			matches = append(matches, match{name: name, score: score})
		}
	}
	slices.SortFunc(matches, func(a, b match) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	result := make([]string, 0, min(maxResults, len(matches)))
	for _, m := range matches[:min(maxResults, len(matches))] {
		result = append(result, m.name)
	}
	return result
}

var separators = strings.NewReplacer("-", "_")

func normalize(s string) string {
	return separators.Replace(strings.ToLower(s))
}

// calculateSimilarity scores a and b between 0 and 1. A prefix scores 0.9, anything else is
// scored by edit distance relative to the longer string.
func calculateSimilarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == b {
		return 1.0
	}
	if strings.HasPrefix(b, a) {
		return 0.9
	}
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshteinDistance(a, b string) int {
	return levenshtein([]rune(a), []rune(b))
}

// levenshtein computes the edit distance keeping only two rows of the matrix.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
