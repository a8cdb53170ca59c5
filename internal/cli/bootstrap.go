/*
Package cli implements the fact-engine command-line interface.

Each command is created by a New*Cmd() factory and wired onto the root
command in cmd/fact-engine. Commands that need the full engine share
the bootstrap in this file: configuration, logger, storage, knowledge
store, training engine, retriever.
*/
package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fact-agent/fact-engine/internal/config"
	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/logger"
	"github.com/fact-agent/fact-engine/internal/search"
	"github.com/fact-agent/fact-engine/internal/storage"
	"github.com/fact-agent/fact-engine/internal/training"
)

// runtime bundles the collaborators a command operates on.
type runtime struct {
	cfg       *config.Config
	db        *storage.SQLiteStore
	store     *knowledge.Store
	engine    *training.Engine
	retriever *search.Retriever
}

// buildRuntime loads configuration, initializes logging and storage,
// and assembles the engine. Storage failures degrade to in-memory
// operation rather than aborting, matching the persistence layer's
// graceful-degradation contract.
func buildRuntime(configPath string) (*runtime, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db := storage.NewStore(cfg.Database.Path)
	if err := db.Init(); err != nil {
		logger.Warn("continuing without persistence", zap.Error(err))
	}

	store := knowledge.NewStore()
	entries, err := db.LoadEntries()
	if err != nil {
		logger.Warn("failed to load knowledge entries", zap.Error(err))
	} else {
		store.Load(entries)
	}

	engine := training.NewEngine(store, cfg.Training, db)
	snap, err := db.LoadTrainingState()
	if err != nil {
		logger.Warn("failed to load training state", zap.Error(err))
	} else if snap != nil {
		if err := engine.Restore(*snap); err != nil {
			logger.Warn("persisted training state rejected, starting fresh", zap.Error(err))
		}
	}

	retriever := search.NewRetrieverWithConfig(store, engine, cfg.RetrieverConfig())

	return &runtime{
		cfg:       cfg,
		db:        db,
		store:     store,
		engine:    engine,
		retriever: retriever,
	}, nil
}

// close flushes logs and releases storage.
func (r *runtime) close() {
	logger.Sync()
	if err := r.db.Close(); err != nil {
		fmt.Printf("warning: failed to close database: %v\n", err)
	}
}
