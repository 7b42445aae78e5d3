package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurospin/distmeta/pkg/descriptor"
)

// showCommand creates the show command for inspecting a manifest.
func (c *CLI) showCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "show [manifest]",
		Short: "Show the metadata declared in a manifest",
		Long:  `Show loads a manifest, validates it, and prints the resulting distribution metadata. Defaults to ` + "`distmeta.toml`" + ` in the current directory when no manifest is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, path, err := c.loadManifest(args)
			if err != nil {
				return err
			}

			if interactive {
				return runBrowser(d)
			}

			printShow(d, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse fields interactively")

	return cmd
}

// printShow prints the descriptor as a styled key-value listing.
func printShow(d *descriptor.Descriptor, path string) {
	printInfo("%s %s", StyleTitle.Render(d.Name), StyleHighlight.Render(d.VersionString()))
	printDetail("manifest: %s", path)
	printNewline()

	printKeyValue("Summary", strings.TrimSpace(d.Summary))
	printKeyValue("Organisation", d.Organisation)
	printKeyValue("Maintainer", contact(d.Maintainer, d.MaintainerEmail))
	printKeyValue("Author", contact(d.Author, d.AuthorEmail))
	printKeyValue("License", d.LicenseID())
	printKeyValue("Homepage", StyleLink.Render(d.URL))
	if d.DownloadURL != "" {
		printKeyValue("Download", StyleLink.Render(d.DownloadURL))
	}
	if d.ExtraName != "" {
		printKeyValue(d.ExtraName, StyleLink.Render(d.ExtraURL))
	}
	if platforms := d.PlatformList(); len(platforms) > 0 {
		printKeyValue("Platforms", strings.Join(platforms, ", "))
	}
	printKeyValue("Release", boolLabel(d.Release))

	if len(d.Classifiers) > 0 {
		printNewline()
		printInfo("Classifiers")
		for _, cl := range d.Classifiers {
			printDetail("%s", cl)
		}
	}

	if len(d.Requires) > 0 {
		printNewline()
		printInfo("Requires")
		for _, req := range d.Requires {
			printDetail("%s", req)
		}
	}

	for _, group := range sortedGroups(d.ExtraRequires) {
		printNewline()
		printInfo("Extra requires [%s]", group)
		for _, req := range d.ExtraRequires[group] {
			printDetail("%s", req)
		}
	}
}

func contact(name, email string) string {
	name = strings.TrimSpace(name)
	if email == "" {
		return name
	}
	if name == "" {
		return email
	}
	return name + " <" + email + ">"
}

func boolLabel(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// sortedGroups returns extra-requires group names in stable order.
func sortedGroups(extras map[string][]string) []string {
	groups := make([]string, 0, len(extras))
	for g := range extras {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}
