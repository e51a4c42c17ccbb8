package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convoyhq/convoy/pkg/config"
	"github.com/convoyhq/convoy/pkg/errors"
	"github.com/convoyhq/convoy/pkg/graph"
)

// newAnalyzeCmd creates the analyze command: report graph health
// without computing an order.
func newAnalyzeCmd(cfgPath *string) *cobra.Command {
	var (
		jsonOut bool
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report dependency cycles, wildcard ranges, and missing peers",
		Long: `Analyze builds the dependency graph once and reports its findings:
production and dev-only cycles, wildcard version ranges, and peer
dependencies that resolve to no package in the workspace.

Findings are advisory. With --strict, production cycles make the
command exit non-zero, which is the useful mode for CI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			manifests, err := newLoader(cfg).Load(ctx)
			if err != nil {
				return err
			}
			g := graph.New(manifests)
			report := g.Analyze()
			prog.done(fmt.Sprintf("analyzed %d package(s)", g.Len()))

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Print(renderReport(report))
			}

			if strict && report.Blocking() {
				return errors.New(errors.ErrCodeInternal, "%d production cycle(s) found", len(report.ProductionCycles))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when production cycles are found")

	return cmd
}
