package training

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/logger"
	"github.com/fact-agent/fact-engine/internal/search"
	"go.uber.org/zap"
)

// Phase is the engine's position in the training cycle.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseAccumulating Phase = "accumulating"
	PhaseRetraining   Phase = "retraining"
)

// State aggregates training progress for status reporting. Read-only
// for everyone but the engine.
type State struct {
	Phase            Phase          `json:"phase"`
	TotalFeedback    int            `json:"total_feedback"`
	CorrectCount     int            `json:"correct_count"`
	IncorrectCount   int            `json:"incorrect_count"`
	PartialCount     int            `json:"partial_count"`
	Accuracy         float64        `json:"accuracy"`
	TargetAccuracy   float64        `json:"target_accuracy"`
	LearnedSynonyms  int            `json:"learned_synonyms"`
	LearnedPatterns  int            `json:"learned_patterns"`
	Weights          search.Weights `json:"weights"`
}

// Config tunes the engine.
type Config struct {
	// LearningRate scales per-feedback weight deltas.
	LearningRate float64 `json:"learningRate"`

	// WeightFloor and WeightCeiling bound each weight component so no
	// single field can dominate or vanish.
	WeightFloor   float64 `json:"weightFloor"`
	WeightCeiling float64 `json:"weightCeiling"`

	// RetrainInterval triggers an automatic retrain every K feedback
	// records.
	RetrainInterval int `json:"retrainInterval"`

	// AccuracyWindow is how many recent records the accuracy estimate
	// covers.
	AccuracyWindow int `json:"accuracyWindow"`

	// TargetAccuracy is the goal the retrain pass steers toward.
	TargetAccuracy float64 `json:"targetAccuracy"`

	// CorrectionThreshold is the minimum answer similarity required to
	// bind an expected answer to an entry.
	CorrectionThreshold float64 `json:"correctionThreshold"`
}

// DefaultConfig returns the standard training tuning.
func DefaultConfig() Config {
	return Config{
		LearningRate:        0.05,
		WeightFloor:         0.05,
		WeightCeiling:       0.70,
		RetrainInterval:     10,
		AccuracyWindow:      50,
		TargetAccuracy:      0.85,
		CorrectionThreshold: 0.60,
	}
}

// Persister receives training mutations at defined boundaries. The
// engine performs no I/O itself; a nil persister is valid and all
// persistence becomes a no-op. Persist failures are logged, never
// propagated — the in-memory state is authoritative.
type Persister interface {
	AppendFeedback(rec Record) error
	SaveState(snap Snapshot) error
}

// Engine owns all mutable training state: the weight vector, the
// synonym table, learned corrections, and the feedback log. It is an
// explicit instance injected into collaborators — no ambient
// singletons.
type Engine struct {
	mu      sync.RWMutex
	store   *knowledge.Store
	cfg     Config
	persist Persister

	weights      search.Weights
	synonyms     *search.SynonymTable
	corrections  map[string]int64
	records      []Record
	state        State
	sinceRetrain int
}

// NewEngine creates a training engine over the given knowledge store.
// persist may be nil.
func NewEngine(store *knowledge.Store, cfg Config, persist Persister) *Engine {
	if cfg.LearningRate <= 0 {
		cfg = DefaultConfig()
	}
	e := &Engine{
		store:       store,
		cfg:         cfg,
		persist:     persist,
		weights:     search.DefaultWeights(),
		synonyms:    search.DefaultSynonyms(),
		corrections: make(map[string]int64),
	}
	e.state = State{
		Phase:          PhaseIdle,
		TargetAccuracy: cfg.TargetAccuracy,
		Weights:        e.weights,
	}
	return e
}

// Weights returns a copy of the current weight vector.
// Implements search.ParamSource.
func (e *Engine) Weights() search.Weights {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.weights
}

// Synonyms returns the current synonym table. The returned table is
// immutable; updates swap in a fresh clone.
// Implements search.ParamSource.
func (e *Engine) Synonyms() *search.SynonymTable {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.synonyms
}

// Correction returns the learned correction target for a normalized
// query pattern. Implements search.ParamSource.
func (e *Engine) Correction(pattern string) (int64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	id, ok := e.corrections[pattern]
	return id, ok
}

// State returns a copy of the aggregate training state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Records returns a copy of the feedback log, oldest first.
func (e *Engine) Records() []Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Record, len(e.records))
	copy(out, e.records)
	return out
}

// SubmitFeedback records one feedback event and applies its learning
// effects: weight reinforcement/penalty, synonym extraction on correct
// feedback, and correction learning on incorrect feedback with an
// expected answer. Feedback for an unknown entry is rejected with
// ErrInvalidFeedbackTarget and mutates nothing. Concurrent submissions
// are serialized.
func (e *Engine) SubmitFeedback(query string, entryID int64, kind FeedbackKind, expectedAnswer string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFeedbackKind, kind)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.store.Get(entryID)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrInvalidFeedbackTarget, entryID)
	}

	rec := newRecord(query, entryID, kind, expectedAnswer)
	tokens := search.Normalize(query, e.synonyms)
	fields := search.ScoreFields(tokens, &entry)

	var direction float64
	switch kind {
	case FeedbackCorrect:
		direction = 1.0
	case FeedbackIncorrect:
		direction = -1.0
	case FeedbackPartial:
		direction = 0.5
	}

	e.weights = adjust(e.weights, signal{fields: fields, direction: direction},
		e.cfg.LearningRate, e.cfg.WeightFloor, e.cfg.WeightCeiling)

	if kind == FeedbackCorrect {
		e.learnSynonymsLocked(tokens, &entry)
	}
	if kind == FeedbackIncorrect && expectedAnswer != "" {
		e.learnCorrectionLocked(query, expectedAnswer)
	}

	e.records = append(e.records, rec)
	e.sinceRetrain++
	e.state.Phase = PhaseAccumulating
	e.state.TotalFeedback = len(e.records)
	e.state.Weights = e.weights
	switch kind {
	case FeedbackCorrect:
		e.state.CorrectCount++
	case FeedbackIncorrect:
		e.state.IncorrectCount++
	case FeedbackPartial:
		e.state.PartialCount++
	}

	if e.sinceRetrain >= e.cfg.RetrainInterval {
		e.retrainLocked()
	}

	if e.persist != nil {
		if err := e.persist.AppendFeedback(rec); err != nil {
			logger.Warn("failed to persist feedback record", zap.Error(err))
		}
		if err := e.persist.SaveState(e.snapshotLocked()); err != nil {
			logger.Warn("failed to persist training state", zap.Error(err))
		}
	}

	return nil
}

// Retrain manually triggers the bulk readjustment pass.
func (e *Engine) Retrain() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.retrainLocked()

	if e.persist != nil {
		if err := e.persist.SaveState(e.snapshotLocked()); err != nil {
			logger.Warn("failed to persist training state", zap.Error(err))
		}
	}

	return e.state
}

// retrainLocked recomputes the windowed accuracy estimate and, when
// accuracy trails the target, relaxes the weights toward the defaults
// in proportion to the shortfall — incremental drift that is not
// helping gets unwound. Caller holds the write lock.
func (e *Engine) retrainLocked() {
	e.state.Phase = PhaseRetraining

	window := e.records
	if e.cfg.AccuracyWindow > 0 && len(window) > e.cfg.AccuracyWindow {
		window = window[len(window)-e.cfg.AccuracyWindow:]
	}

	if len(window) > 0 {
		score := 0.0
		for _, rec := range window {
			switch rec.Kind {
			case FeedbackCorrect:
				score += 1.0
			case FeedbackPartial:
				score += 0.5
			}
		}
		e.state.Accuracy = score / float64(len(window))

		if shortfall := e.cfg.TargetAccuracy - e.state.Accuracy; shortfall > 0 {
			e.weights = blend(e.weights, search.DefaultWeights(), 0.25*shortfall,
				e.cfg.WeightFloor, e.cfg.WeightCeiling)
			e.state.Weights = e.weights
		}
	}

	e.sinceRetrain = 0
	e.state.Phase = PhaseIdle
}

// learnSynonymsLocked extracts candidate synonyms from a correctly
// matched query: tokens absent from the entry's question, tags, and
// existing mappings are mapped to the entry's best-overlapping
// question token. Adds happen on a clone which is then swapped in, so
// readers never see a half-built table. Caller holds the write lock.
func (e *Engine) learnSynonymsLocked(queryTokens []string, entry *knowledge.Entry) {
	questionTokens := search.Tokenize(entry.Question)
	if len(questionTokens) == 0 {
		return
	}

	known := make(map[string]bool, len(questionTokens))
	for _, t := range questionTokens {
		known[t] = true
	}
	for _, tag := range entry.Tags {
		for _, t := range search.Tokenize(tag) {
			known[t] = true
		}
	}

	// Canonical target: the first question token the query already
	// shares, falling back to the leading question token.
	canonical := questionTokens[0]
shared:
	for _, qt := range questionTokens {
		for _, tok := range queryTokens {
			if tok == qt {
				canonical = qt
				break shared
			}
		}
	}

	var clone *search.SynonymTable
	for _, tok := range queryTokens {
		if len(tok) < 3 || known[tok] || e.synonyms.Has(tok) {
			continue
		}
		if clone == nil {
			clone = e.synonyms.Clone()
		}
		clone.Add(canonical, tok)
	}

	if clone != nil {
		e.synonyms = clone
		e.state.LearnedSynonyms = clone.Len()
	}
}

// learnCorrectionLocked binds a query pattern to the entry whose
// answer best matches the operator-supplied expected answer, so future
// near-identical queries upweight it. Below the similarity threshold
// only the failure record remains (the suggestions report surfaces
// it). Caller holds the write lock.
func (e *Engine) learnCorrectionLocked(query, expectedAnswer string) {
	answerTokens := search.Tokenize(expectedAnswer)
	if len(answerTokens) == 0 {
		return
	}

	var bestID int64
	bestScore := 0.0
	for _, entry := range e.store.Entries() {
		if s := search.Similarity(answerTokens, entry.Answer); s > bestScore {
			bestScore = s
			bestID = entry.ID
		}
	}

	if bestScore < e.cfg.CorrectionThreshold {
		return
	}

	pattern := strings.Join(search.Tokenize(query), " ")
	if pattern == "" {
		return
	}

	// Copy-on-write so concurrent Correction() lookups stay safe.
	updated := make(map[string]int64, len(e.corrections)+1)
	for k, v := range e.corrections {
		updated[k] = v
	}
	updated[pattern] = bestID
	e.corrections = updated
	e.state.LearnedPatterns = len(updated)
}
