/*
Package main is the entry point for the fact-engine CLI.

fact-engine is a knowledge retrieval and adaptive-learning engine for
contractor-licensing sales conversations: fuzzy search over a curated
knowledge base, confidence-bucketed answers, and a feedback loop that
adapts scoring weights, synonyms, and corrections over time.

Usage:
  fact-engine [command]

Available Commands:
  serve       Run the webhook HTTP server
  search      Search the knowledge base
  add         Add knowledge entries
  list        List knowledge entries
  remove      Remove a knowledge entry
  feedback    Submit feedback on a search result
  train       Inspect and manage the training engine
  benchmark   Benchmark retrieval latency and quality
  version     Print version information
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fact-agent/fact-engine/internal/cli"
	"github.com/fact-agent/fact-engine/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fact-engine",
		Short: "Knowledge retrieval and adaptive learning for licensing sales calls",
		Long: `fact-engine answers contractor-licensing questions from a curated
knowledge base and learns from feedback.

The retrieval pipeline normalizes the query (synonym expansion,
stopword removal), fuzzy-matches it against question, answer, keyword,
and variation fields, combines the field scores with learned weights
and metadata boosts, and returns ranked results with confidence
buckets. Feedback adapts the weights, grows the synonym table, and
learns query corrections.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewSearchCmd())
	rootCmd.AddCommand(cli.NewAddCmd())
	rootCmd.AddCommand(cli.NewListCmd())
	rootCmd.AddCommand(cli.NewRemoveCmd())
	rootCmd.AddCommand(cli.NewFeedbackCmd())
	rootCmd.AddCommand(cli.NewTrainCmd())
	rootCmd.AddCommand(cli.NewBenchmarkCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
