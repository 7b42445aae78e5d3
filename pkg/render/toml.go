package render

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/neurospin/distmeta/pkg/descriptor"
)

// WriteTOML renders the descriptor as a distmeta.toml manifest.
// The output round-trips through the manifest package.
func WriteTOML(w io.Writer, d *descriptor.Descriptor) error {
	return toml.NewEncoder(w).Encode(d)
}
