package search

import (
	"sort"
	"strings"

	"github.com/fact-agent/fact-engine/internal/knowledge"
)

// ParamSource supplies the live tuning state owned by the training
// engine. Implementations must return whole-value snapshots: a weight
// vector copied under the owner's lock and an immutable synonym table,
// so concurrent searches never observe a partial update.
type ParamSource interface {
	// Weights returns the current weight vector.
	Weights() Weights

	// Synonyms returns the current synonym table (treated as read-only).
	Synonyms() *SynonymTable

	// Correction returns the learned correction target for a
	// normalized query pattern, if one exists.
	Correction(pattern string) (int64, bool)
}

// StaticParams is a fixed ParamSource for tests and deployments
// without a training engine.
type StaticParams struct {
	W   Weights
	Syn *SynonymTable
}

func (p StaticParams) Weights() Weights                { return p.W }
func (p StaticParams) Synonyms() *SynonymTable         { return p.Syn }
func (p StaticParams) Correction(string) (int64, bool) { return 0, false }

// ConfidenceThresholds configures the bucketing of composite scores.
type ConfidenceThresholds struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
	Margin float64 `json:"margin"`
}

// DefaultConfidenceThresholds returns the standard bucketing: high at
// 0.8 with a 0.1 margin over the runner-up, medium at 0.5.
func DefaultConfidenceThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{High: 0.80, Medium: 0.50, Margin: 0.10}
}

// defaultLimit is the result count when the caller passes none.
const defaultLimit = 5

// defaultCorrectionBoost upweights a learned correction target.
const defaultCorrectionBoost = 1.25

// RetrieverConfig tunes a Retriever.
type RetrieverConfig struct {
	Boosts          Boosts
	Thresholds      ConfidenceThresholds
	CorrectionBoost float64
}

// DefaultRetrieverConfig returns the standard tuning.
func DefaultRetrieverConfig() RetrieverConfig {
	return RetrieverConfig{
		Boosts:          DefaultBoosts(),
		Thresholds:      DefaultConfidenceThresholds(),
		CorrectionBoost: defaultCorrectionBoost,
	}
}

// Retriever orchestrates tokenizer → fuzzy matcher → scoring engine
// over the knowledge store and returns ranked results. It holds no
// mutable state of its own and is safe for unlimited concurrent use.
type Retriever struct {
	store  *knowledge.Store
	params ParamSource
	cfg    RetrieverConfig
}

// NewRetriever creates a retriever with default tuning.
func NewRetriever(store *knowledge.Store, params ParamSource) *Retriever {
	return NewRetrieverWithConfig(store, params, DefaultRetrieverConfig())
}

// NewRetrieverWithConfig creates a retriever with explicit tuning.
func NewRetrieverWithConfig(store *knowledge.Store, params ParamSource, cfg RetrieverConfig) *Retriever {
	if cfg.CorrectionBoost <= 0 {
		cfg.CorrectionBoost = defaultCorrectionBoost
	}
	return &Retriever{store: store, params: params, cfg: cfg}
}

// Search scores every entry against the query and returns the top
// `limit` results, best first. Always best-effort: an empty store
// yields an empty slice and a malformed query yields low scores, never
// an error. Fresh computation per call.
func (r *Retriever) Search(rawQuery string, filters Filters, limit int) []MatchResult {
	if limit <= 0 {
		limit = defaultLimit
	}

	entries := r.store.Entries()
	if len(entries) == 0 {
		return []MatchResult{}
	}

	synonyms := r.params.Synonyms()
	weights := r.params.Weights()
	tokens := Normalize(rawQuery, synonyms)

	correctionID, hasCorrection := r.params.Correction(strings.Join(Tokenize(rawQuery), " "))

	results := make([]MatchResult, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		fields := ScoreFields(tokens, e)
		score := Score(fields, weights, e, filters, r.cfg.Boosts)

		if hasCorrection && correctionID == e.ID {
			score *= r.cfg.CorrectionBoost
			if score > 1.0 {
				score = 1.0
			}
		}

		results = append(results, MatchResult{
			EntryID:  e.ID,
			Question: e.Question,
			Answer:   e.Answer,
			Fields:   fields,
			Score:    score,
		})
	}

	// Deterministic ordering: score, then priority, then id.
	priorityOf := make(map[int64]int, len(entries))
	for i := range entries {
		priorityOf[entries[i].ID] = entries[i].Priority.Rank()
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if priorityOf[results[i].EntryID] != priorityOf[results[j].EntryID] {
			return priorityOf[results[i].EntryID] > priorityOf[results[j].EntryID]
		}
		return results[i].EntryID < results[j].EntryID
	})

	// Margins come from the full ranking, so truncation cannot hide
	// the real runner-up.
	for i := range results {
		margin := results[i].Score
		if i+1 < len(results) {
			margin = results[i].Score - results[i+1].Score
		}
		results[i].Confidence = r.bucket(results[i].Score, margin)
	}

	if len(results) > limit {
		results = results[:limit]
	}

	return results
}

// bucket classifies a composite score given its margin over the next
// candidate.
func (r *Retriever) bucket(score, margin float64) Confidence {
	t := r.cfg.Thresholds
	switch {
	case score >= t.High && margin >= t.Margin:
		return ConfidenceHigh
	case score >= t.Medium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
