// Package render exports distribution descriptors in the formats
// packaging tools and indexes consume: PKG-INFO metadata headers,
// PyPI-style JSON, and the TOML manifest format.
package render

import (
	"fmt"
	"io"

	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/errors"
)

// Output formats.
const (
	FormatPKGInfo = "pkg-info"
	FormatJSON    = "json"
	FormatTOML    = "toml"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatPKGInfo, FormatJSON, FormatTOML}
}

// Write renders the descriptor to w in the given format.
func Write(w io.Writer, d *descriptor.Descriptor, format string) error {
	switch format {
	case FormatPKGInfo:
		return WritePKGInfo(w, d)
	case FormatJSON:
		return WriteJSON(w, d)
	case FormatTOML:
		return WriteTOML(w, d)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (supported: %v)", format, Formats())
	}
}

// extraMarker renders the environment marker that scopes a dependency
// to an optional feature group, e.g. `; extra == "doc"`.
func extraMarker(group string) string {
	return fmt.Sprintf(`; extra == %q`, group)
}
