package search

import "sort"

// SynonymTable maps canonical terms to their learned surface forms
// (abbreviations, misspellings, alternate wording).
//
// A published table is immutable: the training engine clones, adds,
// and atomically swaps the pointer it hands to readers. That keeps the
// retrieval path lock-free and makes torn reads impossible.
type SynonymTable struct {
	canonical map[string][]string
	reverse   map[string]string
}

// NewSynonymTable creates an empty table.
func NewSynonymTable() *SynonymTable {
	return &SynonymTable{
		canonical: make(map[string][]string),
		reverse:   make(map[string]string),
	}
}

// DefaultSynonyms seeds the table with the domain abbreviations the
// original knowledge base shipped with.
func DefaultSynonyms() *SynonymTable {
	t := NewSynonymTable()
	seed := map[string][]string{
		"georgia":    {"ga"},
		"florida":    {"fl"},
		"california": {"ca"},
		"texas":      {"tx"},
		"license":    {"licence", "lisense", "licensing"},
		"contractor": {"builder", "tradesman"},
		"cost":       {"price", "pricing", "fee", "fees"},
		"exam":       {"test", "examination"},
		"requirements": {"prerequisites", "qualifications"},
	}
	for canonical, terms := range seed {
		for _, term := range terms {
			t.Add(canonical, term)
		}
	}
	return t
}

// Add maps a surface term to a canonical term. Returns false if the
// term is already mapped (mappings grow only, never silently change).
func (t *SynonymTable) Add(canonical, term string) bool {
	if canonical == "" || term == "" || canonical == term {
		return false
	}
	if _, exists := t.reverse[term]; exists {
		return false
	}
	t.reverse[term] = canonical
	t.canonical[canonical] = append(t.canonical[canonical], term)
	return true
}

// Canonical returns the canonical form of a surface term, if mapped.
func (t *SynonymTable) Canonical(term string) (string, bool) {
	c, ok := t.reverse[term]
	return c, ok
}

// Has reports whether term is known to the table, either as a surface
// form or as a canonical term with mappings.
func (t *SynonymTable) Has(term string) bool {
	if _, ok := t.reverse[term]; ok {
		return true
	}
	_, ok := t.canonical[term]
	return ok
}

// Len returns the number of learned surface terms.
func (t *SynonymTable) Len() int {
	return len(t.reverse)
}

// Clone returns a deep copy safe for mutation.
func (t *SynonymTable) Clone() *SynonymTable {
	out := NewSynonymTable()
	for canonical, terms := range t.canonical {
		out.canonical[canonical] = append([]string(nil), terms...)
	}
	for term, canonical := range t.reverse {
		out.reverse[term] = canonical
	}
	return out
}

// Map exports the table as canonical → sorted surface terms, the shape
// used by training export/import.
func (t *SynonymTable) Map() map[string][]string {
	out := make(map[string][]string, len(t.canonical))
	for canonical, terms := range t.canonical {
		sorted := append([]string(nil), terms...)
		sort.Strings(sorted)
		out[canonical] = sorted
	}
	return out
}

// SynonymTableFromMap rebuilds a table from its exported form.
func SynonymTableFromMap(m map[string][]string) *SynonymTable {
	t := NewSynonymTable()
	canonicals := make([]string, 0, len(m))
	for canonical := range m {
		canonicals = append(canonicals, canonical)
	}
	// Sorted insertion keeps reverse-mapping conflicts deterministic.
	sort.Strings(canonicals)
	for _, canonical := range canonicals {
		for _, term := range m[canonical] {
			t.Add(canonical, term)
		}
	}
	return t
}
