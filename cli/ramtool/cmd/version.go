package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramkit/ramkit/internal/debug"
)

// set with -ldflags "-X github.com/ramkit/ramkit/cli/ramtool/cmd.version=..."
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the ramtool version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line := "ramtool " + version
			if bi, ok := debug.ReadBuildInfo(); ok {
				line += " (" + bi.String() + ")"
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}
}
