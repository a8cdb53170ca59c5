/*
Package server exposes the retrieval and training engines over HTTP for
webhook integrations.

Endpoints:

	POST /webhook/search        — ranked knowledge retrieval
	POST /webhook/feedback      — feedback submission
	GET  /training/status       — training state report
	GET  /training/suggestions  — synonym/category suggestions
	GET  /health                — liveness probe
	GET  /metrics               — Prometheus metrics
*/
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/fact-agent/fact-engine/internal/config"
	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/logger"
	"github.com/fact-agent/fact-engine/internal/metrics"
	"github.com/fact-agent/fact-engine/internal/persona"
	"github.com/fact-agent/fact-engine/internal/search"
	"github.com/fact-agent/fact-engine/internal/training"
	"github.com/fact-agent/fact-engine/internal/version"
)

// Server wires the knowledge store, retriever, and training engine into
// a fiber application.
type Server struct {
	app       *fiber.App
	store     *knowledge.Store
	retriever *search.Retriever
	engine    *training.Engine
	cfg       config.ServerConfig

	// trust tracks per-conversation rapport for callers that send a
	// conversation id with their searches.
	trustMu sync.Mutex
	trust   map[string]*persona.TrustScore
}

// New builds the HTTP server around already-constructed collaborators.
func New(store *knowledge.Store, retriever *search.Retriever, engine *training.Engine, cfg config.ServerConfig) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "fact-engine " + version.Version,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:       app,
		store:     store,
		retriever: retriever,
		engine:    engine,
		cfg:       cfg,
		trust:     make(map[string]*persona.TrustScore),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Post("/webhook/search", s.handleSearch)
	s.app.Post("/webhook/feedback", s.handleFeedback)
	s.app.Get("/training/status", s.handleTrainingStatus)
	s.app.Get("/training/suggestions", s.handleTrainingSuggestions)
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/metrics", metrics.Handler())
}

// Listen starts serving on the configured host and port. Blocks until
// Shutdown is called or the listener fails.
func (s *Server) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	logger.Info("webhook server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server, letting in-flight requests
// finish.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
