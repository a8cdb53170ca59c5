package search

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Similarity computes the fuzzy similarity between normalized query
// tokens and a raw field text, in [0,1].
//
// Two signals are combined by taking the stronger one:
//   - a normalized edit-distance similarity over the whole field,
//     tolerant of small typos;
//   - a fuzzy token-overlap ratio, tolerant of word reordering and
//     omission.
//
// Pure function: no side effects, safe for concurrent use.
// Empty query or empty field scores 0.
func Similarity(queryTokens []string, fieldText string) float64 {
	if len(queryTokens) == 0 {
		return 0.0
	}
	fieldTokens := Tokenize(fieldText)
	if len(fieldTokens) == 0 {
		return 0.0
	}

	edit := editSimilarity(strings.Join(queryTokens, " "), strings.Join(fieldTokens, " "))
	overlap := overlapRatio(queryTokens, fieldTokens)

	if edit > overlap {
		return edit
	}
	return overlap
}

// editSimilarity converts Levenshtein distance to a similarity in
// [0,1]: identical strings score 1, completely different strings 0.
func editSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	sim := 1.0 - float64(distance)/float64(longest)
	if sim < 0 {
		return 0.0
	}
	return sim
}

// overlapRatio returns the fraction of query tokens that fuzzy-match
// some field token.
func overlapRatio(queryTokens, fieldTokens []string) float64 {
	matched := 0
	for _, q := range queryTokens {
		for _, f := range fieldTokens {
			if tokensMatch(q, f) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(queryTokens))
}

// tokensMatch reports whether two tokens are equal or within the typo
// allowance: one edit per four characters of the longer token, so a
// single-character typo never zeroes out a word match.
func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest < 4 {
		// Short tokens must match exactly; "ga" vs "go" is not a typo.
		return false
	}

	allowance := longest / 4
	if allowance < 1 {
		allowance = 1
	}
	return levenshtein.ComputeDistance(a, b) <= allowance
}
