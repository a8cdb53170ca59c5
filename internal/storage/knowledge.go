package storage

import (
	"fmt"

	"github.com/fact-agent/fact-engine/internal/knowledge"
)

// LoadEntries returns every knowledge entry, ordered by id.
func (s *SQLiteStore) LoadEntries() ([]knowledge.Entry, error) {
	if !s.enabled || s.db == nil {
		return []knowledge.Entry{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, question, answer, category, state, tags, personas,
		       priority, difficulty, variations
		FROM knowledge_entries
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge entries: %w", err)
	}
	defer rows.Close()

	var entries []knowledge.Entry
	for rows.Next() {
		var e knowledge.Entry
		var category, tags, personas, priority, variations string

		if err := rows.Scan(
			&e.ID,
			&e.Question,
			&e.Answer,
			&category,
			&e.State,
			&tags,
			&personas,
			&priority,
			&e.Difficulty,
			&variations,
		); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge entry: %w", err)
		}

		e.Category = knowledge.Category(category)
		e.Priority = knowledge.Priority(priority)
		e.Tags = jsonToList(tags)
		e.Variations = jsonToList(variations)
		for _, p := range jsonToList(personas) {
			e.Personas = append(e.Personas, knowledge.Persona(p))
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read knowledge entries: %w", err)
	}

	return entries, nil
}

// UpsertEntry inserts or replaces an entry by id. ID 0 inserts a new
// row and returns the entry with its assigned id.
func (s *SQLiteStore) UpsertEntry(e knowledge.Entry) (knowledge.Entry, error) {
	if !s.enabled || s.db == nil {
		return e, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	personas := make([]string, 0, len(e.Personas))
	for _, p := range e.Personas {
		personas = append(personas, string(p))
	}

	if e.ID == 0 {
		result, err := s.db.Exec(`
			INSERT INTO knowledge_entries
				(question, answer, category, state, tags, personas, priority, difficulty, variations)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			e.Question, e.Answer, string(e.Category), e.State,
			listToJSON(e.Tags), listToJSON(personas),
			string(e.Priority), e.Difficulty, listToJSON(e.Variations),
		)
		if err != nil {
			return e, fmt.Errorf("failed to insert knowledge entry: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return e, fmt.Errorf("failed to read inserted entry id: %w", err)
		}
		e.ID = id
		return e, nil
	}

	_, err := s.db.Exec(`
		INSERT INTO knowledge_entries
			(id, question, answer, category, state, tags, personas, priority, difficulty, variations, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			category = excluded.category,
			state = excluded.state,
			tags = excluded.tags,
			personas = excluded.personas,
			priority = excluded.priority,
			difficulty = excluded.difficulty,
			variations = excluded.variations,
			updated_at = CURRENT_TIMESTAMP
	`,
		e.ID, e.Question, e.Answer, string(e.Category), e.State,
		listToJSON(e.Tags), listToJSON(personas),
		string(e.Priority), e.Difficulty, listToJSON(e.Variations),
	)
	if err != nil {
		return e, fmt.Errorf("failed to upsert knowledge entry: %w", err)
	}

	return e, nil
}

// DeleteEntry removes an entry by id.
func (s *SQLiteStore) DeleteEntry(id int64) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM knowledge_entries WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete knowledge entry: %w", err)
	}
	return nil
}
