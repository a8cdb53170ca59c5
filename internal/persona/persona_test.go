package persona

import (
	"testing"

	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/search"
)

func TestDetect_PriceConscious(t *testing.T) {
	persona := Detect([]string{
		"That sounds expensive, what does it cost?",
		"Is there a payment plan?",
	})

	if persona != knowledge.PersonaPriceConscious {
		t.Errorf("expected price_conscious, got %q", persona)
	}
}

func TestDetect_TimePressured(t *testing.T) {
	persona := Detect([]string{
		"I need this done fast, how long does it take?",
		"My deadline is next month.",
	})

	if persona != knowledge.PersonaTimePressured {
		t.Errorf("expected time_pressured, got %q", persona)
	}
}

func TestDetect_NoSignal(t *testing.T) {
	persona := Detect([]string{"Hello, I have a question about contracting."})

	if persona != "" {
		t.Errorf("expected no persona, got %q", persona)
	}
}

func TestDetect_Empty(t *testing.T) {
	if persona := Detect(nil); persona != "" {
		t.Errorf("expected no persona for nil utterances, got %q", persona)
	}
}

func TestDetect_MajorityWins(t *testing.T) {
	persona := Detect([]string{
		"Is this legit? I want proof.",
		"I saw bad reviews, why should I trust you?",
		"How much does it cost?",
	})

	if persona != knowledge.PersonaSkepticalResearcher {
		t.Errorf("expected skeptical_researcher to win on count, got %q", persona)
	}
}

func TestTrustScore_Baseline(t *testing.T) {
	ts := NewTrustScore()
	if ts.Score() != trustBaseline {
		t.Errorf("expected baseline %d, got %f", trustBaseline, ts.Score())
	}
}

func TestTrustScore_EventsMove(t *testing.T) {
	ts := NewTrustScore()

	ts.Record(EventAnsweredConfidently)
	if ts.Score() <= trustBaseline {
		t.Error("expected confident answer to raise trust")
	}

	ts.Record(EventCallerFrustrated)
	ts.Record(EventCallerFrustrated)
	if ts.Score() >= trustBaseline {
		t.Error("expected frustration to lower trust below baseline")
	}
}

func TestTrustScore_Bounded(t *testing.T) {
	ts := NewTrustScore()
	for i := 0; i < 50; i++ {
		ts.Record(EventObjectionHandled)
	}
	if ts.Score() > trustCeiling {
		t.Errorf("expected score capped at %d, got %f", trustCeiling, ts.Score())
	}

	for i := 0; i < 100; i++ {
		ts.Record(EventCallerFrustrated)
	}
	if ts.Score() < trustFloor {
		t.Errorf("expected score floored at %d, got %f", trustFloor, ts.Score())
	}
}

func TestTrustScore_UnknownEventIgnored(t *testing.T) {
	ts := NewTrustScore()
	ts.Record(TrustEvent("bogus"))
	if ts.Score() != trustBaseline {
		t.Errorf("expected unknown event to be ignored, got %f", ts.Score())
	}
}

func TestTrustScore_RecordAnswer(t *testing.T) {
	high := NewTrustScore()
	high.RecordAnswer(search.ConfidenceHigh)

	low := NewTrustScore()
	low.RecordAnswer(search.ConfidenceLow)

	if high.Score() <= trustBaseline {
		t.Error("expected high confidence to raise trust")
	}
	if low.Score() >= trustBaseline {
		t.Error("expected no-answer to lower trust")
	}
}
