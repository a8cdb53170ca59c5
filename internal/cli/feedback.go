package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fact-agent/fact-engine/internal/training"
)

// NewFeedbackCmd creates the 'feedback' command for submitting one
// feedback record from the terminal.
func NewFeedbackCmd() *cobra.Command {
	var (
		configPath     string
		query          string
		entryID        int64
		kind           string
		expectedAnswer string
	)

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Submit feedback on a search result",
		Long: `Record whether a returned answer was correct, incorrect, or
partially correct. Feedback drives weight adaptation, synonym learning,
and (with --expected) correction learning.`,
		Example: `  fact-engine feedback --query "how much is a GA license" --entry 3 --kind correct

  # Incorrect answer with the expected one, so a correction can be learned
  fact-engine feedback --query "renewal deadline" --entry 7 --kind incorrect \
    --expected "Georgia licenses renew every two years..."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query is required")
			}

			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			err = rt.engine.SubmitFeedback(query, entryID, training.FeedbackKind(kind), expectedAnswer)
			if err != nil {
				return err
			}

			state := rt.engine.State()
			fmt.Printf("✓ Feedback recorded (%d total, accuracy %.2f)\n",
				state.TotalFeedback, state.Accuracy)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVarP(&query, "query", "q", "", "The query that was searched")
	cmd.Flags().Int64VarP(&entryID, "entry", "e", 0, "The entry id that was returned")
	cmd.Flags().StringVarP(&kind, "kind", "k", "correct", "Feedback kind: correct, incorrect, partial")
	cmd.Flags().StringVar(&expectedAnswer, "expected", "", "The answer that should have been returned")

	return cmd
}
