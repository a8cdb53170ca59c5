package search

import (
	"github.com/fact-agent/fact-engine/internal/knowledge"
)

// Filters are the optional caller constraints on a search. Unknown
// values simply contribute no boost; they never cause an error.
type Filters struct {
	State    string             `json:"state,omitempty"`
	Category knowledge.Category `json:"category,omitempty"`
	Persona  knowledge.Persona  `json:"persona,omitempty"`
}

// Boosts configures the multiplicative metadata boosts applied after
// the weighted field combination. A boost only ever raises a score;
// entries that don't match a filter are left at the unboosted
// baseline, never penalized.
type Boosts struct {
	State          float64 `json:"state"`
	Category       float64 `json:"category"`
	Persona        float64 `json:"persona"`
	PriorityHigh   float64 `json:"priorityHigh"`
	PriorityNormal float64 `json:"priorityNormal"`
}

// DefaultBoosts returns the standard boost factors.
func DefaultBoosts() Boosts {
	return Boosts{
		State:          1.10,
		Category:       1.10,
		Persona:        1.08,
		PriorityHigh:   1.05,
		PriorityNormal: 1.02,
	}
}

// ScoreFields computes the four per-field similarities between the
// normalized query tokens and an entry. Empty fields score 0, never
// NaN.
func ScoreFields(queryTokens []string, e *knowledge.Entry) FieldScores {
	return FieldScores{
		Question:  Similarity(queryTokens, e.Question),
		Answer:    Similarity(queryTokens, e.Answer),
		Keyword:   keywordScore(queryTokens, e.Tags),
		Variation: variationScore(queryTokens, e.Variations),
	}
}

// keywordScore is the fraction of query tokens that fuzzy-match any of
// the entry's tags (best-match over the tag set per token).
func keywordScore(queryTokens []string, tags []string) float64 {
	if len(queryTokens) == 0 || len(tags) == 0 {
		return 0.0
	}

	tagTokens := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagTokens = append(tagTokens, Tokenize(tag)...)
	}
	if len(tagTokens) == 0 {
		return 0.0
	}

	return overlapRatio(queryTokens, tagTokens)
}

// variationScore is the best similarity over the entry's precomputed
// alternate phrasings.
func variationScore(queryTokens []string, variations []string) float64 {
	best := 0.0
	for _, v := range variations {
		if s := Similarity(queryTokens, v); s > best {
			best = s
		}
	}
	return best
}

// Score combines field scores into one composite relevance score:
// the weighted linear base (weights sum to 1.0, so the base stays in
// [0,1] and is monotonic in every field score), then multiplicative
// metadata boosts, capped at 1.0.
func Score(fields FieldScores, w Weights, e *knowledge.Entry, f Filters, b Boosts) float64 {
	base := w.Question*fields.Question +
		w.Answer*fields.Answer +
		w.Keyword*fields.Keyword +
		w.Variation*fields.Variation

	boost := 1.0
	if f.State != "" && e.State == f.State {
		boost *= b.State
	}
	if f.Category != "" && e.Category == f.Category {
		boost *= b.Category
	}
	if f.Persona != "" && e.HasPersona(f.Persona) {
		boost *= b.Persona
	}
	switch e.Priority {
	case knowledge.PriorityHigh:
		boost *= b.PriorityHigh
	case knowledge.PriorityNormal:
		boost *= b.PriorityNormal
	}

	score := base * boost
	if score > 1.0 {
		score = 1.0
	}
	return score
}
