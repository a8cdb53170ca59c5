package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewTrainCmd creates the 'train' command group: status, retrain,
// export, import, suggest.
func NewTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Inspect and manage the training engine",
	}

	cmd.AddCommand(newTrainStatusCmd())
	cmd.AddCommand(newTrainRetrainCmd())
	cmd.AddCommand(newTrainExportCmd())
	cmd.AddCommand(newTrainImportCmd())
	cmd.AddCommand(newTrainSuggestCmd())

	return cmd
}

func newTrainStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current training state",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			state := rt.engine.State()
			fmt.Printf("phase:            %s\n", state.Phase)
			fmt.Printf("feedback:         %d (correct=%d incorrect=%d partial=%d)\n",
				state.TotalFeedback, state.CorrectCount, state.IncorrectCount, state.PartialCount)
			fmt.Printf("accuracy:         %.2f (target %.2f)\n", state.Accuracy, state.TargetAccuracy)
			fmt.Printf("learned synonyms: %d\n", state.LearnedSynonyms)
			fmt.Printf("learned patterns: %d\n", state.LearnedPatterns)
			fmt.Printf("weights:          question=%.3f answer=%.3f keyword=%.3f variation=%.3f\n",
				state.Weights.Question, state.Weights.Answer,
				state.Weights.Keyword, state.Weights.Variation)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	return cmd
}

func newTrainRetrainCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "retrain",
		Short: "Trigger a bulk readjustment pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			state := rt.engine.Retrain()
			fmt.Printf("✓ Retrain complete (accuracy %.2f, target %.2f)\n",
				state.Accuracy, state.TargetAccuracy)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	return cmd
}

func newTrainExportCmd() *cobra.Command {
	var (
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the training state as JSON",
		Example: `  fact-engine train export --output training.json
  fact-engine train export > training.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			data, err := rt.engine.Export()
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("✓ Exported training state to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func newTrainImportCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a previously exported training state",
		Long: `Replace the current training state with an exported snapshot.
All-or-nothing: a malformed snapshot is rejected and the current state
is preserved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.engine.Import(data); err != nil {
				return err
			}
			if err := rt.db.SaveState(rt.engine.Snapshot()); err != nil {
				return fmt.Errorf("imported but failed to persist: %w", err)
			}

			state := rt.engine.State()
			fmt.Printf("✓ Imported training state (%d feedback records, %d synonyms)\n",
				state.TotalFeedback, state.LearnedSynonyms)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	return cmd
}

func newTrainSuggestCmd() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show suggested synonym mappings and weak categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			suggestions := rt.engine.Suggestions()

			if asJSON {
				data, err := json.MarshalIndent(suggestions, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal suggestions: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(suggestions.Synonyms) == 0 && len(suggestions.Categories) == 0 {
				fmt.Println("No suggestions yet - not enough feedback.")
				return nil
			}

			if len(suggestions.Synonyms) > 0 {
				fmt.Println("Synonym candidates:")
				for _, s := range suggestions.Synonyms {
					fmt.Printf("  %s -> %s (seen %d times in failed queries)\n",
						s.Term, s.Canonical, s.Occurrences)
				}
			}
			if len(suggestions.Categories) > 0 {
				fmt.Println("Weak categories:")
				for _, c := range suggestions.Categories {
					fmt.Printf("  %s: %.0f%% failure rate over %d feedback records\n",
						c.Category, c.FailureRate*100, c.Feedback)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print suggestions as JSON")
	return cmd
}
