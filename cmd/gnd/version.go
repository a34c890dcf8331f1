package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/govnews-dashboard-tui/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version %s\n", version.Name, version.GetVersion())
			fmt.Fprintf(out, "  commit: %s\n", version.GetCommit())
			fmt.Fprintf(out, "  built:  %s\n", version.GetDate())
		},
	}
}
