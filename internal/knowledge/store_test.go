package knowledge

import (
	"sync"
	"testing"
)

func TestStore_PutAssignsID(t *testing.T) {
	store := NewStore()

	first := store.Put(Entry{Question: "Q1?", Answer: "A1"})
	second := store.Put(Entry{Question: "Q2?", Answer: "A2"})

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("expected sequential ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestStore_PutDefaults(t *testing.T) {
	store := NewStore()

	stored := store.Put(Entry{Question: "What is the licensing fee?", Answer: "A"})

	if stored.Priority != PriorityNormal {
		t.Errorf("expected default priority normal, got %s", stored.Priority)
	}
	if len(stored.Variations) == 0 {
		t.Error("expected variations to be generated")
	}
}

func TestStore_PutReplaceKeepsID(t *testing.T) {
	store := NewStore()
	original := store.Put(Entry{Question: "Q?", Answer: "old"})

	updated := store.Put(Entry{ID: original.ID, Question: "Q?", Answer: "new"})

	if updated.ID != original.ID {
		t.Errorf("expected id %d preserved, got %d", original.ID, updated.ID)
	}
	got, ok := store.Get(original.ID)
	if !ok || got.Answer != "new" {
		t.Errorf("expected replaced entry, got %+v (ok=%v)", got, ok)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", store.Len())
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore()
	if _, ok := store.Get(42); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()
	entry := store.Put(Entry{Question: "Q?", Answer: "A"})

	if !store.Delete(entry.ID) {
		t.Error("expected delete to succeed")
	}
	if store.Delete(entry.ID) {
		t.Error("expected second delete to fail")
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", store.Len())
	}
}

func TestStore_LoadReplacesContents(t *testing.T) {
	store := NewStore()
	store.Put(Entry{Question: "stale?", Answer: "stale"})

	store.Load([]Entry{
		{ID: 10, Question: "Q10?", Answer: "A10"},
		{ID: 5, Question: "Q5?", Answer: "A5"},
	})

	if store.Len() != 2 {
		t.Fatalf("expected 2 entries after load, got %d", store.Len())
	}
	if _, ok := store.Get(10); !ok {
		t.Error("expected loaded entry 10")
	}

	// Next insert must not collide with loaded ids.
	fresh := store.Put(Entry{Question: "new?", Answer: "new"})
	if fresh.ID != 11 {
		t.Errorf("expected id 11 after loading up to 10, got %d", fresh.ID)
	}
}

func TestStore_EntriesSortedByID(t *testing.T) {
	store := NewStore()
	store.Load([]Entry{
		{ID: 3, Question: "c?", Answer: "c"},
		{ID: 1, Question: "a?", Answer: "a"},
		{ID: 2, Question: "b?", Answer: "b"},
	})

	entries := store.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i].ID <= entries[i-1].ID {
			t.Fatalf("entries not sorted: %d after %d", entries[i].ID, entries[i-1].ID)
		}
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	store.Put(Entry{Question: "Q?", Answer: "A"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Entries()
				store.Get(1)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Put(Entry{ID: 1, Question: "Q?", Answer: "A"})
			}
		}()
	}
	wg.Wait()
}

func TestPriority_Rank(t *testing.T) {
	if PriorityHigh.Rank() <= PriorityNormal.Rank() {
		t.Error("expected high > normal")
	}
	if PriorityNormal.Rank() <= PriorityLow.Rank() {
		t.Error("expected normal > low")
	}
	if Priority("bogus").Rank() != PriorityLow.Rank() {
		t.Error("expected unknown priority to rank as low")
	}
}

func TestEntry_HasPersona(t *testing.T) {
	entry := Entry{Personas: []Persona{PersonaPriceConscious}}

	if !entry.HasPersona(PersonaPriceConscious) {
		t.Error("expected persona to be present")
	}
	if entry.HasPersona(PersonaTimePressured) {
		t.Error("did not expect persona to be present")
	}
}
