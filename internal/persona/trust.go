package persona

import "github.com/fact-agent/fact-engine/internal/search"

// TrustEvent is the closed set of conversation events that move the
// trust score.
type TrustEvent string

const (
	EventAnsweredConfidently TrustEvent = "answered_confidently"
	EventAnsweredTentatively TrustEvent = "answered_tentatively"
	EventNoAnswer            TrustEvent = "no_answer"
	EventObjectionHandled    TrustEvent = "objection_handled"
	EventCallerEngaged       TrustEvent = "caller_engaged"
	EventCallerFrustrated    TrustEvent = "caller_frustrated"
)

// eventWeights is the explicit mapping table behind the weighted
// event sum.
var eventWeights = map[TrustEvent]float64{
	EventAnsweredConfidently: 8,
	EventAnsweredTentatively: 3,
	EventNoAnswer:            -6,
	EventObjectionHandled:    10,
	EventCallerEngaged:       5,
	EventCallerFrustrated:    -10,
}

const (
	trustBaseline = 50
	trustFloor    = 0
	trustCeiling  = 100
)

// TrustScore tracks rapport over one conversation as a bounded
// weighted event sum starting from a neutral baseline.
type TrustScore struct {
	score float64
}

// NewTrustScore starts at the neutral baseline.
func NewTrustScore() *TrustScore {
	return &TrustScore{score: trustBaseline}
}

// Record applies one event. Unknown events are ignored.
func (t *TrustScore) Record(event TrustEvent) {
	t.score += eventWeights[event]
	if t.score < trustFloor {
		t.score = trustFloor
	}
	if t.score > trustCeiling {
		t.score = trustCeiling
	}
}

// RecordAnswer maps a retrieval confidence to the corresponding trust
// event: the trust layer consumes confidence as one input to its own
// independent scoring.
func (t *TrustScore) RecordAnswer(confidence search.Confidence) {
	switch confidence {
	case search.ConfidenceHigh:
		t.Record(EventAnsweredConfidently)
	case search.ConfidenceMedium:
		t.Record(EventAnsweredTentatively)
	default:
		t.Record(EventNoAnswer)
	}
}

// Score returns the current trust score in [0,100].
func (t *TrustScore) Score() float64 {
	return t.score
}
