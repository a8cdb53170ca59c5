package knowledge

import (
	"sort"
	"sync"
)

// Store is the in-memory container of knowledge entries.
//
// The retrieval path only reads; admin updates replace whole entries
// under the write lock, so a search observes either the old or the new
// entry, never a partially updated one.
type Store struct {
	mu      sync.RWMutex
	entries map[int64]Entry
	nextID  int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[int64]Entry),
		nextID:  1,
	}
}

// Load replaces the store contents with the given entries (bulk import
// at startup). Entries without precomputed variations get them here.
func (s *Store) Load(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[int64]Entry, len(entries))
	for _, e := range entries {
		if e.Priority == "" {
			e.Priority = PriorityNormal
		}
		if len(e.Variations) == 0 {
			e.Variations = Variations(e.Question)
		}
		s.entries[e.ID] = e
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
}

// Put inserts or replaces an entry by id and returns the stored entry.
// An entry with ID 0 is assigned the next free id.
func (s *Store) Put(e Entry) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == 0 {
		e.ID = s.nextID
	}
	if e.ID >= s.nextID {
		s.nextID = e.ID + 1
	}
	if e.Priority == "" {
		e.Priority = PriorityNormal
	}
	if len(e.Variations) == 0 {
		e.Variations = Variations(e.Question)
	}

	s.entries[e.ID] = e
	return e
}

// Get returns the entry with the given id.
func (s *Store) Get(id int64) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	return e, ok
}

// Delete removes an entry by id.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}

// Entries returns a snapshot of all entries ordered by id, so that
// iteration order is deterministic across searches.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
