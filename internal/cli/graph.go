package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurospin/distmeta/pkg/render/depgraph"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// graphCommand creates the graph command for dependency graph rendering.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [manifest]",
		Short: "Render the declared dependencies as a graph",
		Long:  `Graph renders the manifest's requires and extra-requires declarations as a dependency graph: DOT source, or SVG/PNG via Graphviz. Extra-requires groups appear as dashed clusters.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := c.loadManifest(args)
			if err != nil {
				return err
			}

			dot := depgraph.ToDOT(d, depgraph.Options{Detailed: detailed})

			var data []byte
			switch format {
			case formatDOT:
				data = []byte(dot)
			case formatSVG:
				data, err = depgraph.RenderSVG(dot)
			case formatPNG:
				data, err = depgraph.RenderPNG(dot)
			default:
				return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", format)
			}
			if err != nil {
				return err
			}

			path := output
			if path == "" && format != formatDOT {
				path = strings.ToLower(d.Name) + "_deps." + format
			}

			out, err := outputWriter(path)
			if err != nil {
				return err
			}
			defer out.Close()

			if _, err := out.Write(data); err != nil {
				return err
			}
			if path != "" && path != "-" {
				printSuccess("Rendered dependency graph")
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot (default), svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot, <name>_deps.<ext> otherwise)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include version constraints in node labels")

	return cmd
}
