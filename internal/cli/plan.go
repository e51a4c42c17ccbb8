package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convoyhq/convoy/pkg/config"
	"github.com/convoyhq/convoy/pkg/graph"
	"github.com/convoyhq/convoy/pkg/manifest"
	"github.com/convoyhq/convoy/pkg/plan"
)

// newPlanCmd creates the plan command: compute the publish order for
// the configured workspaces.
func newPlanCmd(cfgPath *string) *cobra.Command {
	var (
		jsonOut  bool
		refresh  bool
		save     bool
		selectPk bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the publish order for the workspace",
		Long: `Plan scans the configured repositories for package manifests, builds
the dependency graph, and computes a publish order in which every
package is published after all of its production and peer
dependencies. Dev dependencies are excluded from ordering, so
dev-only cycles do not block the plan.

The run repeats load-and-order until the manifests stop changing
between iterations, bounded by max_iterations in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			c, err := openCache(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			var loader manifest.Loader = newLoader(cfg)
			if selectPk {
				loader, err = selectPackages(ctx, loader)
				if err != nil {
					return err
				}
				if loader == nil {
					printInfo("no packages selected")
					return nil
				}
			}

			prog := newProgress(logger)
			runner := plan.NewRunner(c, logger)
			p, err := runner.Execute(ctx, loader, plan.Options{
				MaxIterations: cfg.MaxIterations,
				CacheTTL:      cfg.Cache.TTL.Duration(),
				Refresh:       refresh,
			})
			if err != nil {
				if p != nil {
					fmt.Print(renderReport(p.Report))
				}
				return err
			}
			prog.done(fmt.Sprintf("planned %d package(s) in %d iteration(s)", len(p.Order), p.Iterations))

			if save {
				if err := savePlan(cmd, cfg, p); err != nil {
					return err
				}
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}

			fmt.Print(renderReport(p.Report))
			fmt.Print(renderOrder(p))
			if p.Cached {
				printInfo("plan served from cache (%s)", shortHash(p.SnapshotHash))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the plan as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the plan cache")
	cmd.Flags().BoolVar(&save, "save", false, "archive the plan in the configured store")
	cmd.Flags().BoolVar(&selectPk, "select", false, "interactively choose which packages to plan")

	return cmd
}

// savePlan archives a plan in the configured store backend.
func savePlan(cmd *cobra.Command, cfg config.Config, p *plan.Plan) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if st == nil {
		printWarning("no store backend configured, plan not archived")
		return nil
	}
	defer st.Close(ctx)

	if err := st.Save(ctx, p); err != nil {
		return err
	}
	printSuccess("archived plan %s", p.ID)
	return nil
}

// shortHash trims a snapshot hash for display.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// selectPackages runs the interactive picker over the loader's
// packages and returns a loader filtered to the chosen names. Returns
// nil when the selection is empty or the picker was cancelled.
func selectPackages(ctx context.Context, loader manifest.Loader) (manifest.Loader, error) {
	manifests, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	g := graph.New(manifests)
	names, err := runPicker(g.Names())
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	return newFilterLoader(loader, names), nil
}
