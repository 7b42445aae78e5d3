package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/neurospin/distmeta/pkg/descriptor"
)

// metadataVersion is the core-metadata version emitted in PKG-INFO output.
const metadataVersion = "2.1"

// WritePKGInfo renders the descriptor as PKG-INFO metadata headers,
// the key-value format package indexes read from distribution archives.
// The long description, if present, follows the headers as the body
// after a blank line.
func WritePKGInfo(w io.Writer, d *descriptor.Descriptor) error {
	var b strings.Builder

	field := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", key, value)
		}
	}

	field("Metadata-Version", metadataVersion)
	field("Name", d.Name)
	field("Version", d.VersionString())
	field("Summary", strings.TrimSpace(d.Summary))
	field("Home-page", d.URL)
	field("Download-URL", d.DownloadURL)
	field("Author", strings.TrimSpace(d.Author))
	field("Author-email", d.AuthorEmail)
	field("Maintainer", strings.TrimSpace(d.Maintainer))
	field("Maintainer-email", d.MaintainerEmail)
	field("License", d.License)
	if d.ExtraName != "" && d.ExtraURL != "" {
		field("Project-URL", fmt.Sprintf("%s, %s", d.ExtraName, d.ExtraURL))
	}
	for _, p := range d.PlatformList() {
		field("Platform", p)
	}
	for _, c := range d.Classifiers {
		field("Classifier", c)
	}
	for _, r := range d.Requires {
		field("Requires-Dist", r)
	}
	for _, group := range sortedGroups(d.ExtraRequires) {
		field("Provides-Extra", group)
		for _, r := range d.ExtraRequires[group] {
			field("Requires-Dist", r+extraMarker(group))
		}
	}
	for _, p := range d.Provides {
		field("Provides", p)
	}

	if long := strings.TrimSpace(d.LongDescription); long != "" {
		b.WriteString("\n")
		b.WriteString(long)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// sortedGroups returns the extra-requires group names in stable order.
func sortedGroups(extras map[string][]string) []string {
	groups := make([]string, 0, len(extras))
	for g := range extras {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}
