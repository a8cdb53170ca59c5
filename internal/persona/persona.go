/*
Package persona implements the persona-detection and trust-scoring
collaborators that sit beside the retrieval core.

Personas and trust events are closed vocabularies with explicit
mapping tables. The detector supplies the persona filter to search and
consumes result confidence; it never modifies retrieval state.
*/
package persona

import (
	"strings"

	"github.com/fact-agent/fact-engine/internal/knowledge"
)

// personaKeywords maps each persona to the utterance keywords that
// signal it. Substring matching against the lowercased utterance, same
// behavior as the original keyword lists but over a closed enum.
var personaKeywords = map[knowledge.Persona][]string{
	knowledge.PersonaPriceConscious: {
		"cheap", "cheapest", "afford", "expensive", "price", "cost",
		"budget", "payment plan", "discount",
	},
	knowledge.PersonaOverwhelmedVeteran: {
		"confusing", "complicated", "overwhelmed", "too much",
		"don't understand", "where do i start", "lost",
	},
	knowledge.PersonaSkepticalResearcher: {
		"proof", "guarantee", "scam", "legit", "reviews",
		"compare", "competitor", "why should i",
	},
	knowledge.PersonaTimePressured: {
		"fast", "fastest", "quickly", "deadline", "asap",
		"how long", "right away", "urgent",
	},
	knowledge.PersonaAmbitiousGrower: {
		"grow", "expand", "more states", "bigger jobs",
		"commercial", "scale", "second license",
	},
}

// detectionOrder fixes the tie-break when utterances signal several
// personas equally.
var detectionOrder = []knowledge.Persona{
	knowledge.PersonaPriceConscious,
	knowledge.PersonaTimePressured,
	knowledge.PersonaSkepticalResearcher,
	knowledge.PersonaOverwhelmedVeteran,
	knowledge.PersonaAmbitiousGrower,
}

// Detect returns the persona whose keywords match the utterances most
// often, or "" when nothing matches.
func Detect(utterances []string) knowledge.Persona {
	scores := make(map[knowledge.Persona]int, len(personaKeywords))

	for _, utterance := range utterances {
		lowered := strings.ToLower(utterance)
		for persona, keywords := range personaKeywords {
			for _, kw := range keywords {
				if strings.Contains(lowered, kw) {
					scores[persona]++
				}
			}
		}
	}

	var best knowledge.Persona
	bestScore := 0
	for _, persona := range detectionOrder {
		if scores[persona] > bestScore {
			best = persona
			bestScore = scores[persona]
		}
	}

	return best
}
