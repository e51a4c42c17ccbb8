package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convoyhq/convoy/pkg/config"
	"github.com/convoyhq/convoy/pkg/errors"
	"github.com/convoyhq/convoy/pkg/store"
)

// newPlansCmd creates the plans command group for browsing the plan
// archive.
func newPlansCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse archived plans",
		Long: `Plans lists, shows, and deletes plans archived with 'plan --save'.
Requires a store backend in the config (file or mongo).`,
	}

	cmd.AddCommand(newPlansListCmd(cfgPath))
	cmd.AddCommand(newPlansShowCmd(cfgPath))
	cmd.AddCommand(newPlansDeleteCmd(cfgPath))

	return cmd
}

// requireStore opens the configured store, failing when archiving is
// disabled.
func requireStore(ctx context.Context, cfgPath string) (store.Store, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	st, err := openStore(ctx, cfg, loggerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no store backend configured, set [store] in %s", cfgPath)
	}
	return st, nil
}

func newPlansListCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := requireStore(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			summaries, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				printInfo("no archived plans")
				return nil
			}
			for _, s := range summaries {
				status := styleSuccess.Render("ok")
				if s.Blocked {
					status = styleError.Render("blocked")
				}
				fmt.Printf("%s  %s  %3d pkg  %s  %s\n",
					styleValue.Render(s.ID),
					s.CreatedAt,
					s.Packages,
					status,
					styleDim.Render(shortHash(s.SnapshotHash)))
			}
			return nil
		},
	}
}

func newPlansShowCmd(cfgPath *string) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an archived plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := requireStore(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			p, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			printInfo("plan %s, created %s, %d iteration(s)", p.ID, p.CreatedAt.Format("2006-01-02 15:04:05"), p.Iterations)
			fmt.Print(renderReport(p.Report))
			fmt.Print(renderOrder(p))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the plan as JSON")
	return cmd
}

func newPlansDeleteCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := requireStore(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("deleted plan %s", args[0])
			return nil
		},
	}
}
