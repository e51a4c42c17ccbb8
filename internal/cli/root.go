package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/convoyhq/convoy/pkg/buildinfo"
	"github.com/convoyhq/convoy/pkg/config"
)

// Execute runs the convoy CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (plan,
// analyze, export, plans, serve), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		cfgPath string
	)

	root := &cobra.Command{
		Use:          "convoy",
		Short:        "Convoy computes safe publish orders for multi-repo workspaces",
		Long:         `Convoy builds a dependency graph from the package manifests in your repositories, detects cycles that would make publishing impossible, and computes the order in which packages can be safely published.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultFilename, "path to convoy.toml")

	root.AddCommand(newPlanCmd(&cfgPath))
	root.AddCommand(newAnalyzeCmd(&cfgPath))
	root.AddCommand(newExportCmd(&cfgPath))
	root.AddCommand(newPlansCmd(&cfgPath))
	root.AddCommand(newServeCmd(&cfgPath))

	return root.ExecuteContext(ctx)
}
