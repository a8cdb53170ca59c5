package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the 'remove' command.
func NewRemoveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "remove [id]",
		Short:   "Remove a knowledge entry by id",
		Example: `  fact-engine remove 12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			rt, err := buildRuntime(configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			if !rt.store.Delete(id) {
				return fmt.Errorf("entry %d not found", id)
			}
			if err := rt.db.DeleteEntry(id); err != nil {
				return fmt.Errorf("failed to delete entry: %w", err)
			}

			fmt.Printf("✓ Removed entry %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	return cmd
}
