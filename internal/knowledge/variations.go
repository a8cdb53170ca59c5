package knowledge

import "strings"

// questionLeads are interrogative openers recognized when generating
// alternate phrasings. Longer prefixes come first so the most specific
// lead is stripped.
var questionLeads = []string{
	"how much does",
	"how much is",
	"how long does",
	"how long is",
	"how do i get",
	"how do i",
	"what does",
	"what is the",
	"what is",
	"what are",
	"do i need",
	"can i",
}

// maxVariations caps the number of generated phrasings per entry.
const maxVariations = 6

// Variations generates alternate phrasings of a canonical question by
// swapping its interrogative opener, so "What does a license cost?"
// also matches callers who ask "how much does a license cost".
func Variations(question string) []string {
	q := strings.ToLower(strings.TrimSpace(question))
	q = strings.TrimSuffix(q, "?")
	if q == "" {
		return nil
	}

	var core string
	var matched string
	for _, lead := range questionLeads {
		if strings.HasPrefix(q, lead+" ") {
			core = strings.TrimSpace(strings.TrimPrefix(q, lead))
			matched = lead
			break
		}
	}

	if core == "" {
		// No recognized opener: the bare question is its own variation.
		return []string{q}
	}

	variations := make([]string, 0, maxVariations)
	variations = append(variations, core)
	for _, lead := range questionLeads {
		if lead == matched {
			continue
		}
		variations = append(variations, lead+" "+core)
		if len(variations) >= maxVariations {
			break
		}
	}

	return variations
}
