package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/search"
)

// NewSearchCmd creates the 'search' command for querying the knowledge
// base from the terminal.
func NewSearchCmd() *cobra.Command {
	var (
		configPath string
		state      string
		category   string
		persona    string
		limit      int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the knowledge base",
		Long: `Run a query through the full retrieval pipeline and print the
ranked results with per-field scores and confidence.`,
		Example: `  fact-engine search "how much does a georgia license cost"

  # Filtered search
  fact-engine search "license requirements" --state GA --category cost

  # Machine-readable output
  fact-engine search "exam prep" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			query := args[0]
			for _, extra := range args[1:] {
				query += " " + extra
			}

			filters := search.Filters{
				State:    state,
				Category: knowledge.Category(category),
				Persona:  knowledge.Persona(persona),
			}
			if limit <= 0 {
				limit = rt.cfg.Search.DefaultLimit
			}

			results := rt.retriever.Search(query, filters, limit)

			if asJSON {
				data, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal results: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(results) == 0 {
				fmt.Println("No results (knowledge base is empty).")
				return nil
			}

			for i, res := range results {
				fmt.Printf("%d. [%s] %.3f  %s\n", i+1, res.Confidence, res.Score, res.Question)
				fmt.Printf("   %s\n", res.Answer)
				fmt.Printf("   fields: question=%.2f answer=%.2f keyword=%.2f variation=%.2f (entry %d)\n",
					res.Fields.Question, res.Fields.Answer, res.Fields.Keyword, res.Fields.Variation,
					res.EntryID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&state, "state", "", "State filter (two-letter code)")
	cmd.Flags().StringVar(&category, "category", "", "Category filter")
	cmd.Flags().StringVar(&persona, "persona", "", "Persona filter")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}
