package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/modu-ai/stackgen/internal/config"
	"github.com/modu-ai/stackgen/pkg/version"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
)

// NewRootCmd builds the stackgen command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stackgen",
		Short: "Scaffold a full-stack TypeScript monorepo",
		Long: `stackgen generates a TypeScript monorepo from a set of compatible choices:
frontend apps, a backend framework and runtime, database and ORM, auth,
addons and examples. Incompatible combinations are rejected before any
file is written.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if deps != nil {
				return nil
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			noColor, _ := cmd.Flags().GetBool("no-color")
			InitDependencies(cmd.ErrOrStderr(), verbose, noColor)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("stackgen %s\n", version.GetFullVersion()))
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().String("config", "", "Defaults file (default: $XDG_CONFIG_HOME/stackgen/config.yaml)")

	root.AddCommand(newCreateCmd(), newVersionCmd())
	return root
}

// @MX:ANCHOR: [AUTO] Execute is the main entry point for the stackgen CLI
// @MX:REASON: [AUTO] called from cmd/stackgen/main.go; its return value is the process exit code
// Execute runs the command tree and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, formatError(err))
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an error to the process exit code: validation errors exit
// with 2, everything else with 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ve *config.ValidationError
	if errors.As(err, &ve) {
		return ExitValidation
	}
	return ExitFailure
}

func formatError(err error) string {
	msg := "Error: " + err.Error()
	if d := GetDeps(); d != nil && d.Theme != nil {
		return d.Theme.Failure().Render(msg)
	}
	return msg
}
