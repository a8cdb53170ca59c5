package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fact-agent/fact-engine/internal/knowledge"
)

// NewListCmd creates the 'list' command.
func NewListCmd() *cobra.Command {
	var (
		configPath string
		category   string
		state      string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge entries",
		Example: `  fact-engine list
  fact-engine list --category cost --state GA
  fact-engine list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			entries := rt.store.Entries()
			filtered := entries[:0:0]
			for _, e := range entries {
				if category != "" && e.Category != knowledge.Category(category) {
					continue
				}
				if state != "" && !strings.EqualFold(e.State, state) {
					continue
				}
				filtered = append(filtered, e)
			}

			if asJSON {
				data, err := json.MarshalIndent(filtered, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal entries: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(filtered) == 0 {
				fmt.Println("No entries.")
				return nil
			}

			for _, e := range filtered {
				fmt.Printf("%4d  [%s", e.ID, e.Category)
				if e.State != "" {
					fmt.Printf("/%s", e.State)
				}
				fmt.Printf("] %s\n", e.Question)
			}
			fmt.Printf("\n%d entries\n", len(filtered))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&state, "state", "", "Filter by state code")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")

	return cmd
}
