package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/launchdeck/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version output needs neither config nor logging, so a broken
		// config file cannot hide it.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "launchdeck %s\ncommit: %s\nbuilt: %s\n",
				version.GetVersion(), version.GetGitCommit(), version.GetBuildDate())
			return err
		},
	}
}
