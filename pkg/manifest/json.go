package manifest

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/errors"
)

// JSON parses JSON manifests, the same shape `distmeta render --format json`
// produces, enabling round trips between the two formats.
type JSON struct{}

func (j *JSON) Type() string { return "json" }

func (j *JSON) Supports(name string) bool {
	return strings.HasSuffix(name, ".json")
}

func (j *JSON) Parse(path string) (*descriptor.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d descriptor.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return &d, nil
}
