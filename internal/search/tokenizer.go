package search

import (
	"strings"
	"unicode"
)

// stopwords are filler tokens that carry no matching signal in this
// domain. Filtering them keeps overlap ratios meaningful for short
// spoken-style queries ("how much does a license cost").
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "do": true, "does": true,
	"for": true, "from": true, "get": true, "how": true, "i": true,
	"in": true, "is": true, "it": true, "much": true, "my": true,
	"of": true, "on": true, "or": true, "the": true, "to": true,
	"was": true, "what": true, "when": true, "where": true,
	"which": true, "who": true, "will": true, "with": true,
	"you": true, "your": true,
}

// Tokenize lowercases text, strips punctuation, splits on whitespace,
// and drops stopwords. Deterministic; empty or whitespace-only input
// yields an empty slice.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Normalize tokenizes text and expands synonyms: a token with a known
// canonical form keeps its surface form and gets the canonical form
// appended, so both contribute to matching. Given the same input and
// table state the output is always identical.
func Normalize(text string, synonyms *SynonymTable) []string {
	tokens := Tokenize(text)
	if synonyms == nil {
		return tokens
	}

	out := make([]string, 0, len(tokens)+4)
	for _, tok := range tokens {
		out = append(out, tok)
		if canonical, ok := synonyms.Canonical(tok); ok {
			out = append(out, canonical)
		}
	}
	return out
}

// IsStopword reports whether the token is filtered during tokenization.
func IsStopword(token string) bool {
	return stopwords[token]
}
