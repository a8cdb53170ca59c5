package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fact-agent/fact-engine/internal/version"
)

// NewVersionCmd creates the 'version' command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fact-engine %s\n", version.GetVersion())
		},
	}
}
