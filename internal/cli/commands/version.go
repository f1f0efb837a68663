package commands

import (
	"fmt"

	"github.com/leapstack-labs/csvcode/internal/snippet"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display csvcode version and the library targeted by generated code.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "csvcode v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generates Python import code for %s\n", snippet.Library)
		},
	}
}
