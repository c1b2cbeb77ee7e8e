package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modu-ai/stackgen/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stackgen version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stackgen %s\n", version.GetFullVersion())
			return err
		},
	}
}
