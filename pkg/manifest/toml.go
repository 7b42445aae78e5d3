package manifest

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/errors"
)

// TOML parses distmeta.toml manifests.
type TOML struct{}

func (t *TOML) Type() string { return "toml" }

func (t *TOML) Supports(name string) bool {
	return name == DefaultFilename || strings.HasSuffix(name, ".toml")
}

func (t *TOML) Parse(path string) (*descriptor.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d descriptor.Descriptor
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return &d, nil
}
