package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurospin/distmeta/pkg/manifest"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Validate a manifest and report every problem",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := manifestPath(args)

			p, err := manifest.Detect(path, manifest.Parsers()...)
			if err != nil {
				return err
			}
			d, err := p.Parse(path)
			if err != nil {
				return err
			}

			problems := d.Problems()
			if len(problems) == 0 {
				printSuccess("%s is valid", path)
				return nil
			}

			printError("%s has %d problem(s)", path, len(problems))
			for _, p := range problems {
				printDetail("%v", p)
			}
			return fmt.Errorf("validation failed")
		},
	}
}
