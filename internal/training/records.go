/*
Package training implements the adaptive learning loop: feedback
intake, weight adaptation, synonym and correction learning, periodic
retraining, and full state export/import.

All mutation is serialized through a single engine lock. The retrieval
path reads published snapshots (whole-value weight copies and immutable
synonym tables swapped atomically), so concurrent searches may observe
the pre- or post-update state but never a torn one.
*/
package training

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackKind classifies a feedback submission.
type FeedbackKind string

const (
	FeedbackCorrect   FeedbackKind = "correct"
	FeedbackIncorrect FeedbackKind = "incorrect"
	FeedbackPartial   FeedbackKind = "partial"
)

// Valid reports whether k is a known feedback kind.
func (k FeedbackKind) Valid() bool {
	switch k {
	case FeedbackCorrect, FeedbackIncorrect, FeedbackPartial:
		return true
	}
	return false
}

// Record is one feedback submission tied to a prior query+result pair.
// Records are append-only; they are never mutated after creation.
type Record struct {
	// ID is a UUID assigned at creation.
	ID string `json:"id"`

	// Query is the raw query text the feedback refers to.
	Query string `json:"query"`

	// EntryID is the knowledge entry the feedback rates.
	EntryID int64 `json:"entry_id"`

	// Kind is correct, incorrect, or partial.
	Kind FeedbackKind `json:"kind"`

	// ExpectedAnswer is the operator-supplied correction, only present
	// on incorrect feedback.
	ExpectedAnswer string `json:"expected_answer,omitempty"`

	// Timestamp is when the feedback was submitted (UTC).
	Timestamp time.Time `json:"timestamp"`
}

// newRecord creates a feedback record with a fresh id and timestamp.
func newRecord(query string, entryID int64, kind FeedbackKind, expectedAnswer string) Record {
	return Record{
		ID:             uuid.NewString(),
		Query:          query,
		EntryID:        entryID,
		Kind:           kind,
		ExpectedAnswer: expectedAnswer,
		Timestamp:      time.Now().UTC(),
	}
}
