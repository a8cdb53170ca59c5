/*
Package storage migrations: schema definitions and JSON serialization
helpers for list-valued columns.
*/
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/fact-agent/fact-engine/internal/logger"
	"go.uber.org/zap"
)

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

// runMigrations executes database schema migrations in order.
func (s *SQLiteStore) runMigrations() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.getCurrentMigrationVersion()
	if err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "initial_schema", up: s.migration001InitialSchema},
	}

	for _, m := range migrations {
		if version < m.version {
			logger.Info("running migration", zap.Int("version", m.version), zap.String("name", m.name))
			if err := m.up(); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
			if err := s.setMigrationVersion(m.version, m.name); err != nil {
				return err
			}
		}
	}

	return nil
}

// createMigrationsTable creates the schema_migrations table.
func (s *SQLiteStore) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`
	_, err := s.db.Exec(query)
	return err
}

// getCurrentMigrationVersion returns the highest applied migration version.
func (s *SQLiteStore) getCurrentMigrationVersion() (int, error) {
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// setMigrationVersion records a migration as applied.
func (s *SQLiteStore) setMigrationVersion(version int, name string) error {
	_, err := s.db.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", version, name)
	return err
}

// migration001InitialSchema creates the initial database schema.
func (s *SQLiteStore) migration001InitialSchema() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS knowledge_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category TEXT NOT NULL,
			state TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			personas TEXT NOT NULL DEFAULT '[]',
			priority TEXT NOT NULL DEFAULT 'normal',
			difficulty TEXT NOT NULL DEFAULT '',
			variations TEXT NOT NULL DEFAULT '[]',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create knowledge_entries table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_knowledge_entries_category
		ON knowledge_entries(category)
	`); err != nil {
		return fmt.Errorf("failed to create knowledge category index: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_knowledge_entries_state
		ON knowledge_entries(state)
	`); err != nil {
		return fmt.Errorf("failed to create knowledge state index: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS feedback_log (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			entry_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			expected_answer TEXT NOT NULL DEFAULT '',
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create feedback_log table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_feedback_log_timestamp
		ON feedback_log(timestamp)
	`); err != nil {
		return fmt.Errorf("failed to create feedback timestamp index: %w", err)
	}

	// Single-row table: the full training snapshot as JSON.
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS training_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			snapshot TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create training_state table: %w", err)
	}

	return nil
}

// listToJSON serializes a string slice for storage.
func listToJSON(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		logger.Warn("failed to marshal list column", zap.Error(err))
		return "[]"
	}
	return string(data)
}

// jsonToList parses a stored JSON array back to a string slice.
func jsonToList(jsonStr string) []string {
	var list []string
	if err := json.Unmarshal([]byte(jsonStr), &list); err != nil {
		logger.Warn("failed to parse list column", zap.Error(err))
		return nil
	}
	return list
}
