package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fact-agent/fact-engine/internal/logger"
	"github.com/fact-agent/fact-engine/internal/metrics"
	"github.com/fact-agent/fact-engine/internal/server"
)

// NewServeCmd creates the 'serve' command that runs the webhook server.
func NewServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook HTTP server",
		Long: `Start the fact-engine webhook server.

Endpoints:
  POST /webhook/search        - ranked knowledge retrieval
  POST /webhook/feedback      - feedback submission
  GET  /training/status       - training state report
  GET  /training/suggestions  - synonym/category suggestions
  GET  /health                - liveness probe
  GET  /metrics               - Prometheus metrics`,
		Example: `  # Run with the default config (~/.fact-engine.json)
  fact-engine serve

  # Run with an explicit config file
  fact-engine serve --config ./fact-engine.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	return cmd
}

// runServe assembles the engine, starts the server, and shuts down
// gracefully on SIGINT/SIGTERM.
func runServe(configPath string) error {
	rt, err := buildRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	metrics.Register()
	metrics.KnowledgeEntries.Set(float64(rt.store.Len()))

	srv := server.New(rt.store, rt.retriever, rt.engine, rt.cfg.Server)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Listen()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
