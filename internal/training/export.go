package training

import (
	"encoding/json"
	"fmt"

	"github.com/fact-agent/fact-engine/internal/search"
)

// Snapshot is the full serialized training state, used for
// export/import between deployments and for persistence.
type Snapshot struct {
	Weights        search.Weights      `json:"weights"`
	Synonyms       map[string][]string `json:"synonyms"`
	Corrections    map[string]int64    `json:"corrections,omitempty"`
	Records        []Record            `json:"feedback_log,omitempty"`
	Accuracy       float64             `json:"accuracy"`
	TargetAccuracy float64             `json:"target_accuracy"`
}

// snapshotLocked captures the current state. Caller holds at least the
// read lock.
func (e *Engine) snapshotLocked() Snapshot {
	records := make([]Record, len(e.records))
	copy(records, e.records)

	corrections := make(map[string]int64, len(e.corrections))
	for k, v := range e.corrections {
		corrections[k] = v
	}

	return Snapshot{
		Weights:        e.weights,
		Synonyms:       e.synonyms.Map(),
		Corrections:    corrections,
		Records:        records,
		Accuracy:       e.state.Accuracy,
		TargetAccuracy: e.state.TargetAccuracy,
	}
}

// Snapshot captures the current training state for persistence.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// Export serializes the full training state (weight vector, synonym
// table, corrections, feedback log) as JSON.
func (e *Engine) Export() ([]byte, error) {
	e.mu.RLock()
	snap := e.snapshotLocked()
	e.mu.RUnlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal training state: %w", err)
	}
	return data, nil
}

// Import replaces the current training state with a previously
// exported snapshot. All-or-nothing: a payload missing the required
// structure or violating the weight invariant is rejected with
// ErrMalformedImport and the current state is preserved.
func (e *Engine) Import(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	return e.Restore(snap)
}

// Restore applies a validated snapshot atomically. Used by Import and
// by the startup path when loading persisted state.
func (e *Engine) Restore(snap Snapshot) error {
	if !validWeights(snap.Weights) {
		return fmt.Errorf("%w: weights must be in [0,1] and sum to 1.0", ErrMalformedImport)
	}
	if snap.Synonyms == nil {
		return fmt.Errorf("%w: missing synonym table", ErrMalformedImport)
	}

	synonyms := search.SynonymTableFromMap(snap.Synonyms)

	corrections := make(map[string]int64, len(snap.Corrections))
	for k, v := range snap.Corrections {
		corrections[k] = v
	}

	records := make([]Record, len(snap.Records))
	copy(records, snap.Records)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.weights = snap.Weights
	e.synonyms = synonyms
	e.corrections = corrections
	e.records = records
	e.sinceRetrain = 0

	target := snap.TargetAccuracy
	if target <= 0 {
		target = e.cfg.TargetAccuracy
	}

	e.state = State{
		Phase:           PhaseIdle,
		TotalFeedback:   len(records),
		Accuracy:        snap.Accuracy,
		TargetAccuracy:  target,
		LearnedSynonyms: synonyms.Len(),
		LearnedPatterns: len(corrections),
		Weights:         snap.Weights,
	}
	for _, rec := range records {
		switch rec.Kind {
		case FeedbackCorrect:
			e.state.CorrectCount++
		case FeedbackIncorrect:
			e.state.IncorrectCount++
		case FeedbackPartial:
			e.state.PartialCount++
		}
	}

	return nil
}
