package training

import (
	"errors"
	"reflect"
	"testing"

	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/search"
)

func engineStore() *knowledge.Store {
	store := knowledge.NewStore()
	store.Load([]knowledge.Entry{
		{
			ID:       1,
			Question: "How much does a Georgia contractor license cost?",
			Answer:   "The Georgia contractor license costs $200 for the application plus exam fees.",
			Category: knowledge.CategoryCost,
			State:    "GA",
			Tags:     []string{"georgia", "cost", "license"},
		},
		{
			ID:       2,
			Question: "What is on the contractor licensing exam?",
			Answer:   "The exam covers business law, project management, and trade knowledge.",
			Category: knowledge.CategoryExam,
			Tags:     []string{"exam"},
		},
	})
	return store
}

func TestSubmitFeedback_InvalidTarget(t *testing.T) {
	engine := NewEngine(engineStore(), DefaultConfig(), nil)
	before := engine.State()

	err := engine.SubmitFeedback("some query", 999, FeedbackCorrect, "")

	if !errors.Is(err, ErrInvalidFeedbackTarget) {
		t.Fatalf("expected ErrInvalidFeedbackTarget, got %v", err)
	}

	// Rejected feedback must mutate nothing.
	after := engine.State()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state changed on rejected feedback: %+v vs %+v", before, after)
	}
	if len(engine.Records()) != 0 {
		t.Error("expected no records after rejected feedback")
	}
}

func TestSubmitFeedback_InvalidKind(t *testing.T) {
	engine := NewEngine(engineStore(), DefaultConfig(), nil)

	err := engine.SubmitFeedback("query", 1, FeedbackKind("maybe"), "")

	if !errors.Is(err, ErrInvalidFeedbackKind) {
		t.Fatalf("expected ErrInvalidFeedbackKind, got %v", err)
	}
}

func TestSubmitFeedback_CorrectReinforces(t *testing.T) {
	store := engineStore()
	// Entry without tags: the keyword field contributes nothing to the
	// match, so correct feedback must shift share away from it.
	store.Put(knowledge.Entry{
		ID:       3,
		Question: "Zoning permit rules for detached garages?",
		Answer:   "Call the county office.",
	})
	engine := NewEngine(store, DefaultConfig(), nil)
	before := engine.Weights()

	err := engine.SubmitFeedback("zoning permit rules detached garages", 3, FeedbackCorrect, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := engine.Weights()
	if after == before {
		t.Error("expected weights to change on correct feedback")
	}
	if after.Keyword >= before.Keyword {
		t.Errorf("expected keyword weight to lose share: %f vs %f", after.Keyword, before.Keyword)
	}
	if !validWeights(after) {
		t.Errorf("weight invariant broken: %+v", after)
	}

	state := engine.State()
	if state.CorrectCount != 1 || state.TotalFeedback != 1 {
		t.Errorf("expected counts to update, got %+v", state)
	}
}

func TestSubmitFeedback_WeightInvariantHeld(t *testing.T) {
	engine := NewEngine(engineStore(), DefaultConfig(), nil)

	kinds := []FeedbackKind{FeedbackCorrect, FeedbackIncorrect, FeedbackPartial}
	for i := 0; i < 60; i++ {
		err := engine.SubmitFeedback("georgia license cost", 1, kinds[i%len(kinds)], "")
		if err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
		if !validWeights(engine.Weights()) {
			t.Fatalf("weight invariant broken after %d submissions: %+v", i+1, engine.Weights())
		}
	}
}

func TestSubmitFeedback_LearnsSynonym(t *testing.T) {
	engine := NewEngine(engineStore(), DefaultConfig(), nil)

	// "licence" is seeded; "permitt" is not and does not appear in the
	// entry, so it becomes a learned surface form.
	err := engine.SubmitFeedback("georgia permitt cost", 1, FeedbackCorrect, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !engine.Synonyms().Has("permitt") {
		t.Error("expected 'permitt' to be learned as a synonym")
	}
	canonical, ok := engine.Synonyms().Canonical("permitt")
	if !ok {
		t.Fatal("expected canonical mapping for learned synonym")
	}
	if canonical != "georgia" && canonical != "cost" {
		t.Errorf("expected canonical to be a shared question token, got %q", canonical)
	}
}

func TestSubmitFeedback_SynonymCanonicalIsFirstShared(t *testing.T) {
	engine := NewEngine(engineStore(), DefaultConfig(), nil)

	// Entry 1's question tokens run georgia, contractor, license, cost.
	// The query shares "license" and "cost"; the earlier one is the
	// canonical target for the learned surface form.
	err := engine.SubmitFeedback("license cost permitt", 1, FeedbackCorrect, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	canonical, ok := engine.Synonyms().Canonical("permitt")
	if !ok {
		t.Fatal("expected 'permitt' to be learned as a synonym")
	}
	if canonical != "license" {
		t.Errorf("expected the first shared question token 'license', got %q", canonical)
	}
}

func TestSubmitFeedback_SynonymTableSwapped(t *testing.T) {
	engine := NewEngine(engineStore(), DefaultConfig(), nil)
	before := engine.Synonyms()

	err := engine.SubmitFeedback("georgia permitt cost", 1, FeedbackCorrect, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The previously published table must be untouched.
	if before.Has("permitt") {
		t.Error("expected the old table to remain immutable")
	}
	if engine.Synonyms() == before {
		t.Error("expected a fresh table to be published")
	}
}

func TestSubmitFeedback_LearnsCorrection(t *testing.T) {
	engine := NewEngine(engineStore(), DefaultConfig(), nil)

	// Wrong entry returned; the expected answer clearly matches entry 2.
	err := engine.SubmitFeedback("whats on the licensing exam", 1, FeedbackIncorrect,
		"The exam covers business law, project management, and trade knowledge.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id, ok := engine.Correction("whats licensing exam")
	if !ok {
		t.Fatal("expected a learned correction")
	}
	if id != 2 {
		t.Errorf("expected correction to point at entry 2, got %d", id)
	}

	if engine.State().LearnedPatterns != 1 {
		t.Errorf("expected 1 learned pattern, got %d", engine.State().LearnedPatterns)
	}
}

func TestSubmitFeedback_NoCorrectionBelowThreshold(t *testing.T) {
	engine := NewEngine(engineStore(), DefaultConfig(), nil)

	err := engine.SubmitFeedback("renewal deadline", 1, FeedbackIncorrect,
		"totally unrelated gibberish zxqv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := engine.Correction("renewal deadline"); ok {
		t.Error("expected no correction for an unmatchable expected answer")
	}
}

func TestRetrain_ComputesAccuracy(t *testing.T) {
	engine := NewEngine(engineStore(), DefaultConfig(), nil)

	// 3 correct, 1 partial, 1 incorrect over 5 records:
	// (3 + 0.5) / 5 = 0.7
	for i := 0; i < 3; i++ {
		if err := engine.SubmitFeedback("georgia license", 1, FeedbackCorrect, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := engine.SubmitFeedback("exam", 2, FeedbackPartial, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := engine.SubmitFeedback("exam", 2, FeedbackIncorrect, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := engine.Retrain()

	if state.Accuracy < 0.69 || state.Accuracy > 0.71 {
		t.Errorf("expected accuracy 0.7, got %f", state.Accuracy)
	}
	if state.Phase != PhaseIdle {
		t.Errorf("expected idle phase after retrain, got %s", state.Phase)
	}
	if !validWeights(state.Weights) {
		t.Errorf("weight invariant broken after retrain: %+v", state.Weights)
	}
}

func TestRetrain_AutoTriggeredAtInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetrainInterval = 3
	engine := NewEngine(engineStore(), cfg, nil)

	for i := 0; i < 3; i++ {
		if err := engine.SubmitFeedback("georgia license", 1, FeedbackCorrect, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// The third submission crosses the interval and retrains, which
	// recomputes accuracy from the all-correct window.
	if acc := engine.State().Accuracy; acc != 1.0 {
		t.Errorf("expected accuracy 1.0 after auto retrain, got %f", acc)
	}
}

// capturePersister records persistence calls for assertion.
type capturePersister struct {
	feedback []Record
	saves    int
	fail     bool
}

func (p *capturePersister) AppendFeedback(rec Record) error {
	if p.fail {
		return errors.New("disk full")
	}
	p.feedback = append(p.feedback, rec)
	return nil
}

func (p *capturePersister) SaveState(Snapshot) error {
	if p.fail {
		return errors.New("disk full")
	}
	p.saves++
	return nil
}

func TestSubmitFeedback_Persists(t *testing.T) {
	persist := &capturePersister{}
	engine := NewEngine(engineStore(), DefaultConfig(), persist)

	if err := engine.SubmitFeedback("georgia license", 1, FeedbackCorrect, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(persist.feedback) != 1 {
		t.Errorf("expected 1 persisted record, got %d", len(persist.feedback))
	}
	if persist.saves != 1 {
		t.Errorf("expected 1 state save, got %d", persist.saves)
	}
}

func TestSubmitFeedback_PersistFailureIgnored(t *testing.T) {
	persist := &capturePersister{fail: true}
	engine := NewEngine(engineStore(), DefaultConfig(), persist)

	// In-memory state is authoritative; persist failures only warn.
	if err := engine.SubmitFeedback("georgia license", 1, FeedbackCorrect, ""); err != nil {
		t.Fatalf("expected persist failure to be swallowed, got %v", err)
	}
	if engine.State().TotalFeedback != 1 {
		t.Error("expected in-memory state to update despite persist failure")
	}
}

func TestFeedbackReinforcement_ScoreNeverDrops(t *testing.T) {
	store := engineStore()
	engine := NewEngine(store, DefaultConfig(), nil)
	retriever := search.NewRetriever(store, engine)

	query := "how much does a GA license cost"

	before := retriever.Search(query, search.Filters{}, 5)
	if len(before) == 0 || before[0].EntryID != 1 {
		t.Fatalf("expected entry 1 first before feedback, got %+v", before)
	}

	if err := engine.SubmitFeedback(query, 1, FeedbackCorrect, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := retriever.Search(query, search.Filters{}, 5)
	if after[0].EntryID != 1 {
		t.Errorf("expected reinforced entry to keep its rank, got %d first", after[0].EntryID)
	}
	if after[0].Score < before[0].Score-1e-9 {
		t.Errorf("expected reinforced score not to drop: %f vs %f",
			after[0].Score, before[0].Score)
	}
}

func TestEngine_ParamSourceContract(t *testing.T) {
	// The engine must satisfy search.ParamSource so the retriever can
	// read live tuning state.
	var _ search.ParamSource = NewEngine(engineStore(), DefaultConfig(), nil)
}
