package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fact-agent/fact-engine/internal/benchmark"
)

// NewBenchmarkCmd creates the 'benchmark' command that measures
// retrieval latency and answer quality over the loaded knowledge base.
func NewBenchmarkCmd() *cobra.Command {
	var (
		configPath string
		probesFile string
		iterations int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark retrieval latency and answer quality",
		Example: `  fact-engine benchmark
  fact-engine benchmark --iterations 500
  fact-engine benchmark --probes ./probes.json --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			if rt.store.Len() == 0 {
				return fmt.Errorf("knowledge base is empty - add entries before benchmarking")
			}

			var probes []benchmark.Probe
			if probesFile != "" {
				data, err := os.ReadFile(probesFile)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", probesFile, err)
				}
				if err := json.Unmarshal(data, &probes); err != nil {
					return fmt.Errorf("failed to parse %s: %w", probesFile, err)
				}
			}

			report := benchmark.Run(rt.retriever, rt.store.Len(), probes, iterations)

			if asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal report: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Print(benchmark.FormatReport(report))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&probesFile, "probes", "", "JSON file with probe queries")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Runs per probe")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}
