package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display reportview version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reportview v%s\n", version)
			if commit != "" && commit != "unknown" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commit %s\n", commit)
			}
		},
	}
}
