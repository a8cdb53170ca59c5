package training

import (
	"sort"

	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/search"
)

const (
	// synonymSuggestionMinCount is how often an unmapped token must
	// co-occur in incorrect feedback before it is suggested.
	synonymSuggestionMinCount = 2

	// categoryFailureThreshold flags categories whose feedback failure
	// rate exceeds this fraction.
	categoryFailureThreshold = 0.5

	// categoryMinFeedback is the minimum feedback volume before a
	// category failure rate is meaningful.
	categoryMinFeedback = 3
)

// SynonymSuggestion proposes a surface term that keeps showing up in
// failed queries without a learned mapping.
type SynonymSuggestion struct {
	Term        string `json:"term"`
	Canonical   string `json:"canonical"`
	Occurrences int    `json:"occurrences"`
}

// CategorySuggestion flags a category with a high feedback failure
// rate.
type CategorySuggestion struct {
	Category    knowledge.Category `json:"category"`
	FailureRate float64            `json:"failure_rate"`
	Feedback    int                `json:"feedback"`
}

// Suggestions is the read-only report derived from the feedback log.
type Suggestions struct {
	Synonyms   []SynonymSuggestion  `json:"synonyms"`
	Categories []CategorySuggestion `json:"categories"`
}

// Suggestions analyzes the feedback log for unmapped synonym
// candidates and failing categories. Derived report only; it never
// mutates engine state.
func (e *Engine) Suggestions() Suggestions {
	e.mu.RLock()
	records := make([]Record, len(e.records))
	copy(records, e.records)
	synonyms := e.synonyms
	e.mu.RUnlock()

	type tokenStat struct {
		count     int
		canonical string
	}
	tokenStats := make(map[string]*tokenStat)

	type categoryStat struct {
		total     int
		incorrect int
	}
	categoryStats := make(map[knowledge.Category]*categoryStat)

	for _, rec := range records {
		entry, ok := e.store.Get(rec.EntryID)
		if !ok {
			continue
		}

		cs := categoryStats[entry.Category]
		if cs == nil {
			cs = &categoryStat{}
			categoryStats[entry.Category] = cs
		}
		cs.total++
		if rec.Kind == FeedbackIncorrect {
			cs.incorrect++
		}

		if rec.Kind != FeedbackIncorrect {
			continue
		}

		questionTokens := search.Tokenize(entry.Question)
		known := make(map[string]bool, len(questionTokens))
		for _, t := range questionTokens {
			known[t] = true
		}

		for _, tok := range search.Tokenize(rec.Query) {
			if len(tok) < 3 || known[tok] || synonyms.Has(tok) {
				continue
			}
			st := tokenStats[tok]
			if st == nil {
				st = &tokenStat{}
				tokenStats[tok] = st
			}
			st.count++
			if st.canonical == "" && len(questionTokens) > 0 {
				st.canonical = questionTokens[0]
			}
		}
	}

	var out Suggestions
	for tok, st := range tokenStats {
		if st.count >= synonymSuggestionMinCount {
			out.Synonyms = append(out.Synonyms, SynonymSuggestion{
				Term:        tok,
				Canonical:   st.canonical,
				Occurrences: st.count,
			})
		}
	}
	sort.Slice(out.Synonyms, func(i, j int) bool {
		if out.Synonyms[i].Occurrences != out.Synonyms[j].Occurrences {
			return out.Synonyms[i].Occurrences > out.Synonyms[j].Occurrences
		}
		return out.Synonyms[i].Term < out.Synonyms[j].Term
	})

	for category, cs := range categoryStats {
		if cs.total < categoryMinFeedback {
			continue
		}
		rate := float64(cs.incorrect) / float64(cs.total)
		if rate > categoryFailureThreshold {
			out.Categories = append(out.Categories, CategorySuggestion{
				Category:    category,
				FailureRate: rate,
				Feedback:    cs.total,
			})
		}
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		if out.Categories[i].FailureRate != out.Categories[j].FailureRate {
			return out.Categories[i].FailureRate > out.Categories[j].FailureRate
		}
		return out.Categories[i].Category < out.Categories[j].Category
	})

	return out
}
