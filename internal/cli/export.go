package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convoyhq/convoy/pkg/config"
	"github.com/convoyhq/convoy/pkg/errors"
	"github.com/convoyhq/convoy/pkg/graph"
	"github.com/convoyhq/convoy/pkg/render"
)

// newExportCmd creates the export command: serialize the dependency
// graph snapshot to JSON, DOT, or SVG.
func newExportCmd(cfgPath *string) *cobra.Command {
	var (
		format   string
		out      string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dependency graph as JSON, DOT, or SVG",
		Long: `Export builds the dependency graph and writes its snapshot in the
chosen format. JSON is the canonical machine-readable form; DOT and
SVG render the graph for humans, with dev edges dashed and private
packages shaded.`,
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

			var data []byte
			switch format {
			case "json":
				data, err = graph.MarshalSnapshot(g)
			case "dot":
				data = []byte(render.ToDOT(g.Snapshot(), render.Options{Detailed: detailed}))
			case "svg":
				dot := render.ToDOT(g.Snapshot(), render.Options{Detailed: detailed})
				data, err = render.RenderSVG(ctx, dot)
			default:
				err = errors.New(errors.ErrCodeUnsupported, "unknown export format: %s", format)
			}
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("exported %d package(s) as %s", g.Len(), format))

			if out == "" || out == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
			}
			printSuccess("wrote %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, dot, svg")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include versions in node labels")

	return cmd
}
