package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fact-agent/fact-engine/internal/logger"
	"github.com/fact-agent/fact-engine/internal/training"
	"go.uber.org/zap"
)

// AppendFeedback appends one feedback record to the training log.
// Append-only; records are never updated.
func (s *SQLiteStore) AppendFeedback(rec training.Record) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO feedback_log (id, query, entry_id, kind, expected_answer, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		rec.ID, rec.Query, rec.EntryID, string(rec.Kind),
		rec.ExpectedAnswer, rec.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		logger.Warn("failed to append feedback record", zap.Error(err))
	}

	return nil
}

// LoadFeedback returns the full feedback log, oldest first.
func (s *SQLiteStore) LoadFeedback() ([]training.Record, error) {
	if !s.enabled || s.db == nil {
		return []training.Record{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, query, entry_id, kind, expected_answer, timestamp
		FROM feedback_log
		ORDER BY timestamp, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback log: %w", err)
	}
	defer rows.Close()

	var records []training.Record
	for rows.Next() {
		var rec training.Record
		var kind, timestampStr string

		if err := rows.Scan(&rec.ID, &rec.Query, &rec.EntryID, &kind,
			&rec.ExpectedAnswer, &timestampStr); err != nil {
			logger.Warn("failed to scan feedback row", zap.Error(err))
			continue
		}

		rec.Kind = training.FeedbackKind(kind)
		rec.Timestamp, err = time.Parse(time.RFC3339, timestampStr)
		if err != nil {
			logger.Warn("failed to parse feedback timestamp", zap.Error(err))
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}

// SaveState persists the full training snapshot (single row, replaced
// whole). Implements training.Persister.
func (s *SQLiteStore) SaveState(snap training.Snapshot) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal training snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO training_state (id, snapshot, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			snapshot = excluded.snapshot,
			updated_at = CURRENT_TIMESTAMP
	`, string(data))
	if err != nil {
		logger.Warn("failed to save training state", zap.Error(err))
	}

	return nil
}

// LoadTrainingState returns the persisted snapshot, or nil when no
// state has been saved yet.
func (s *SQLiteStore) LoadTrainingState() (*training.Snapshot, error) {
	if !s.enabled || s.db == nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var data string
	err := s.db.QueryRow("SELECT snapshot FROM training_state WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		// No row yet is the normal first-run case.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load training state: %w", err)
	}

	var snap training.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to parse training snapshot: %w", err)
	}

	return &snap, nil
}
