/*
Package search implements the retrieval path: query normalization with
synonym expansion, fuzzy per-field matching, weighted composite scoring
with metadata boosts, and ranked top-N retrieval over the knowledge
store.

The whole path is read-only with respect to shared state and safe for
unlimited concurrent invocation. Mutable tuning state (weights,
synonyms, corrections) is read through the ParamSource interface as
whole-value snapshots, so an in-flight search sees either the pre- or
post-update state, never a torn one.
*/
package search

// Confidence buckets a match by its composite score and the margin
// over the runner-up candidate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Weights is the four-field weight vector used by the scoring engine.
// Components are non-negative and sum to 1.0; the training engine is
// the only writer and enforces the invariant on every update.
type Weights struct {
	Question  float64 `json:"question"`
	Answer    float64 `json:"answer"`
	Keyword   float64 `json:"keyword"`
	Variation float64 `json:"variation"`
}

// DefaultWeights returns the initial weight vector.
func DefaultWeights() Weights {
	return Weights{
		Question:  0.40,
		Answer:    0.15,
		Keyword:   0.25,
		Variation: 0.20,
	}
}

// Sum returns the total of all components.
func (w Weights) Sum() float64 {
	return w.Question + w.Answer + w.Keyword + w.Variation
}

// FieldScores holds the per-field similarity scores, each in [0,1].
type FieldScores struct {
	Question  float64 `json:"question"`
	Answer    float64 `json:"answer"`
	Keyword   float64 `json:"keyword"`
	Variation float64 `json:"variation"`
}

// MatchResult is one ranked search hit. EntryID references (does not
// own) a knowledge entry; Question and Answer are copied so callers
// can serialize results directly.
type MatchResult struct {
	EntryID    int64       `json:"entry_id"`
	Question   string      `json:"question"`
	Answer     string      `json:"answer"`
	Fields     FieldScores `json:"field_scores"`
	Score      float64     `json:"score"`
	Confidence Confidence  `json:"confidence"`
}
