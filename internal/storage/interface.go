/*
Package storage implements the SQLite persistence layer behind the
knowledge store and the training engine.

The database lives at ~/.fact-engine/knowledge.db by default and uses
modernc.org/sqlite (a pure Go, CGo-free implementation). If the
database cannot be opened, the store degrades gracefully: reads return
empty sets and writes become logged no-ops, so the engine keeps
serving from memory.
*/
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/logger"
	"github.com/fact-agent/fact-engine/internal/training"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// Store defines the persistence operations the engine depends on.
type Store interface {
	// Init opens the database and runs migrations.
	Init() error

	// LoadEntries returns every knowledge entry, ordered by id.
	LoadEntries() ([]knowledge.Entry, error)

	// UpsertEntry inserts or replaces an entry by id and returns the
	// stored entry (with its assigned id on insert).
	UpsertEntry(e knowledge.Entry) (knowledge.Entry, error)

	// DeleteEntry removes an entry by id.
	DeleteEntry(id int64) error

	// AppendFeedback appends one feedback record to the training log.
	AppendFeedback(rec training.Record) error

	// LoadFeedback returns the full feedback log, oldest first.
	LoadFeedback() ([]training.Record, error)

	// SaveState persists the full training snapshot.
	SaveState(snap training.Snapshot) error

	// LoadTrainingState returns the persisted snapshot, or nil if none
	// has been saved yet.
	LoadTrainingState() (*training.Snapshot, error)

	// Close closes the database connection.
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
}

// DefaultDBPath returns ~/.fact-engine/knowledge.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".fact-engine", "knowledge.db"), nil
}

// NewStore creates a SQLite store at the given path. An empty path
// uses the default location. If the home directory cannot be resolved
// the store is disabled but operations will not fail.
func NewStore(dbPath string) *SQLiteStore {
	if dbPath == "" {
		var err error
		dbPath, err = DefaultDBPath()
		if err != nil {
			logger.Warn("storage disabled", zap.Error(err))
			return &SQLiteStore{enabled: false}
		}
	}
	return &SQLiteStore{dbPath: dbPath, enabled: true}
}

// Init opens the database and runs migrations. If initialization
// fails, storage is disabled and subsequent operations become no-ops
// (graceful degradation).
func (s *SQLiteStore) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		dbDir := filepath.Dir(s.dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.enabled = false
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.enabled = false
			logger.Warn("storage disabled", zap.Error(initErr))
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.enabled = false
			logger.Warn("storage disabled", zap.Error(initErr))
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.enabled = false
			logger.Warn("storage disabled", zap.Error(initErr))
			return
		}
	})

	return initErr
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}
