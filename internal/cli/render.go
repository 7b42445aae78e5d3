package cli

import (
	"github.com/spf13/cobra"

	"github.com/neurospin/distmeta/pkg/render"
)

// renderCommand creates the render command for exporting metadata.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Render a manifest as PKG-INFO, JSON, or TOML",
		Long:  `Render loads a manifest and writes the metadata in one of the formats packaging tools consume: PKG-INFO metadata headers, PyPI-style JSON, or the TOML manifest format.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := c.loadManifest(args)
			if err != nil {
				return err
			}

			out, err := outputWriter(output)
			if err != nil {
				return err
			}
			defer out.Close()

			if format == formatPyPI {
				err = render.WritePyPIJSON(out, d)
			} else {
				err = render.Write(out, d, format)
			}
			if err != nil {
				return err
			}
			if output != "" && output != "-" {
				printSuccess("Rendered %s metadata", format)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatPKGInfo, "output format: pkg-info (default), json, toml, pypi")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// formatPyPI renders the PyPI-style JSON document rather than the
// manifest-shaped JSON.
const formatPyPI = "pypi"
