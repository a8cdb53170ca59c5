/*
Package knowledge holds the knowledge-base data model and the in-memory
entry store the retrieval engine searches over.

Entries are loaded in bulk from the persistence layer at startup and
replaced whole on admin updates. They are never mutated while a search
is in flight.
*/
package knowledge

// Category is the closed vocabulary of knowledge categories.
type Category string

const (
	CategoryLicensing Category = "state_licensing_requirements"
	CategoryCost      Category = "cost"
	CategoryTimeline  Category = "timeline"
	CategoryExam      Category = "exam_process"
	CategoryObjection Category = "objection_handling"
	CategoryGeneral   Category = "general"
)

// KnownCategories lists every valid category value.
var KnownCategories = []Category{
	CategoryLicensing,
	CategoryCost,
	CategoryTimeline,
	CategoryExam,
	CategoryObjection,
	CategoryGeneral,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Persona labels the target audience of an entry. It is a ranking
// signal only, never an ownership or access-control concept.
type Persona string

const (
	PersonaPriceConscious      Persona = "price_conscious"
	PersonaOverwhelmedVeteran  Persona = "overwhelmed_veteran"
	PersonaSkepticalResearcher Persona = "skeptical_researcher"
	PersonaTimePressured       Persona = "time_pressured"
	PersonaAmbitiousGrower     Persona = "ambitious_grower"
)

// KnownPersonas lists every valid persona label.
var KnownPersonas = []Persona{
	PersonaPriceConscious,
	PersonaOverwhelmedVeteran,
	PersonaSkepticalResearcher,
	PersonaTimePressured,
	PersonaAmbitiousGrower,
}

// Priority is the ordinal tie-break hint on an entry.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Rank maps a priority to a comparable integer (higher wins ties).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}

// Entry is a single knowledge-base item.
type Entry struct {
	// ID is the stable identifier, immutable once created.
	ID int64 `json:"id"`

	// Question is the canonical natural-language question text.
	Question string `json:"question"`

	// Answer is returned verbatim to the caller.
	Answer string `json:"answer"`

	// Category is a coarse filter/boost signal.
	Category Category `json:"category"`

	// State is a two-letter region code; empty means not region-specific.
	State string `json:"state,omitempty"`

	// Tags are auxiliary keywords for matching.
	Tags []string `json:"tags,omitempty"`

	// Personas are the target-audience labels used for ranking boosts.
	Personas []Persona `json:"personas,omitempty"`

	// Priority is the tie-break boost hint.
	Priority Priority `json:"priority,omitempty"`

	// Difficulty is informational only.
	Difficulty string `json:"difficulty,omitempty"`

	// Variations are precomputed alternate phrasings of Question.
	// Populated by the store on insert when absent.
	Variations []string `json:"variations,omitempty"`
}

// HasPersona reports whether the entry targets the given persona.
func (e *Entry) HasPersona(p Persona) bool {
	for _, candidate := range e.Personas {
		if candidate == p {
			return true
		}
	}
	return false
}
