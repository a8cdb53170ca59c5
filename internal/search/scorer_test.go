package search

import (
	"math"
	"testing"

	"github.com/fact-agent/fact-engine/internal/knowledge"
)

func costEntry() knowledge.Entry {
	return knowledge.Entry{
		ID:       1,
		Question: "How much does a Georgia contractor license cost?",
		Answer:   "The Georgia contractor license costs $200 for the application plus exam fees.",
		Category: knowledge.CategoryCost,
		State:    "GA",
		Tags:     []string{"georgia", "cost", "license"},
		Personas: []knowledge.Persona{knowledge.PersonaPriceConscious},
		Priority: knowledge.PriorityNormal,
		Variations: knowledge.Variations(
			"How much does a Georgia contractor license cost?"),
	}
}

func TestScoreFields_AllFieldsPopulated(t *testing.T) {
	entry := costEntry()
	tokens := Normalize("how much does a GA license cost", DefaultSynonyms())

	fields := ScoreFields(tokens, &entry)

	if fields.Question <= 0 {
		t.Error("expected positive question score")
	}
	if fields.Keyword <= 0 {
		t.Error("expected positive keyword score")
	}
	if fields.Variation <= 0 {
		t.Error("expected positive variation score")
	}
	for name, v := range map[string]float64{
		"question":  fields.Question,
		"answer":    fields.Answer,
		"keyword":   fields.Keyword,
		"variation": fields.Variation,
	} {
		if v < 0 || v > 1 {
			t.Errorf("%s score %f out of [0,1]", name, v)
		}
	}
}

func TestScoreFields_EmptyEntry(t *testing.T) {
	entry := knowledge.Entry{ID: 2}
	fields := ScoreFields([]string{"georgia"}, &entry)

	if fields.Question != 0 || fields.Answer != 0 || fields.Keyword != 0 || fields.Variation != 0 {
		t.Errorf("expected zero scores for empty entry, got %+v", fields)
	}
}

func TestScore_WeightedBase(t *testing.T) {
	entry := knowledge.Entry{ID: 3, Priority: knowledge.PriorityLow}
	fields := FieldScores{Question: 1.0, Answer: 0.0, Keyword: 0.0, Variation: 0.0}
	w := DefaultWeights()

	score := Score(fields, w, &entry, Filters{}, DefaultBoosts())

	// Only the question field contributes; low priority gets no boost.
	if math.Abs(score-w.Question) > 0.001 {
		t.Errorf("expected score %f, got %f", w.Question, score)
	}
}

func TestScore_BoostOnlyOnFilterMatch(t *testing.T) {
	entry := costEntry()
	fields := FieldScores{Question: 0.5, Answer: 0.5, Keyword: 0.5, Variation: 0.5}
	w := DefaultWeights()
	b := DefaultBoosts()

	unfiltered := Score(fields, w, &entry, Filters{}, b)
	stateMatch := Score(fields, w, &entry, Filters{State: "GA"}, b)
	stateMiss := Score(fields, w, &entry, Filters{State: "FL"}, b)

	if stateMatch <= unfiltered {
		t.Errorf("expected state match to boost: %f vs %f", stateMatch, unfiltered)
	}
	if stateMiss != unfiltered {
		t.Errorf("expected non-matching filter to leave score unchanged: %f vs %f",
			stateMiss, unfiltered)
	}
}

func TestScore_BoostsMultiply(t *testing.T) {
	entry := costEntry()
	fields := FieldScores{Question: 0.5, Answer: 0.5, Keyword: 0.5, Variation: 0.5}
	w := DefaultWeights()
	b := DefaultBoosts()

	filters := Filters{
		State:    "GA",
		Category: knowledge.CategoryCost,
		Persona:  knowledge.PersonaPriceConscious,
	}
	score := Score(fields, w, &entry, filters, b)

	expected := 0.5 * b.State * b.Category * b.Persona * b.PriorityNormal
	if math.Abs(score-expected) > 0.001 {
		t.Errorf("expected %f, got %f", expected, score)
	}
}

func TestScore_CappedAtOne(t *testing.T) {
	entry := costEntry()
	entry.Priority = knowledge.PriorityHigh
	fields := FieldScores{Question: 1.0, Answer: 1.0, Keyword: 1.0, Variation: 1.0}

	filters := Filters{
		State:    "GA",
		Category: knowledge.CategoryCost,
		Persona:  knowledge.PersonaPriceConscious,
	}
	score := Score(fields, DefaultWeights(), &entry, filters, DefaultBoosts())

	if score > 1.0 {
		t.Errorf("expected score capped at 1.0, got %f", score)
	}
	if score != 1.0 {
		t.Errorf("expected fully boosted perfect match to hit the cap, got %f", score)
	}
}

func TestScore_MonotonicInFieldScores(t *testing.T) {
	entry := knowledge.Entry{ID: 4, Priority: knowledge.PriorityLow}
	w := DefaultWeights()
	b := DefaultBoosts()

	low := Score(FieldScores{Question: 0.2, Answer: 0.2, Keyword: 0.2, Variation: 0.2},
		w, &entry, Filters{}, b)
	high := Score(FieldScores{Question: 0.8, Answer: 0.2, Keyword: 0.2, Variation: 0.2},
		w, &entry, Filters{}, b)

	if high <= low {
		t.Errorf("expected higher field score to raise composite: %f vs %f", high, low)
	}
}
