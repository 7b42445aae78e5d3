// Package descriptor defines the distribution metadata record consumed
// by packaging tools: name, version triple, contacts, descriptions,
// URLs, license, classifiers, platforms, and dependency declarations.
//
// A Descriptor is assembled once, typically from a manifest file, and
// treated as read-only afterwards. It carries no behavior beyond
// validation and conversion; all packaging decisions belong to the
// consuming tool.
package descriptor

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/neurospin/distmeta/pkg/classifier"
	"github.com/neurospin/distmeta/pkg/errors"
	"github.com/neurospin/distmeta/pkg/specifier"
)

// Version is a three-component release version.
type Version struct {
	Major int `json:"major" toml:"major"`
	Minor int `json:"minor" toml:"minor"`
	Micro int `json:"micro" toml:"micro"`
}

// String composes the dotted version string, e.g. {0, 0, 1} -> "0.0.1".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}

// Validate checks that all components are non-negative.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Micro < 0 {
		return errors.New(errors.ErrCodeInvalidVersion, "negative version component in %d.%d.%d", v.Major, v.Minor, v.Micro)
	}
	return nil
}

// Descriptor holds the complete metadata record for one distribution.
//
// All fields are set at construction and read-only thereafter; a
// Descriptor is safe for concurrent reads. Use [Descriptor.Clone] when
// a caller needs a mutable copy.
type Descriptor struct {
	Name    string  `json:"name" toml:"name"`
	Version Version `json:"version" toml:"version"`

	// Contact metadata.
	Organisation    string `json:"organisation,omitempty" toml:"organisation"`
	Maintainer      string `json:"maintainer,omitempty" toml:"maintainer"`
	MaintainerEmail string `json:"maintainer_email,omitempty" toml:"maintainer_email"`
	Author          string `json:"author,omitempty" toml:"author"`
	AuthorEmail     string `json:"author_email,omitempty" toml:"author_email"`

	// Free-text documentation.
	Description     string `json:"description,omitempty" toml:"description"`
	LongDescription string `json:"long_description,omitempty" toml:"long_description"`
	Summary         string `json:"summary,omitempty" toml:"summary"`

	// Links.
	URL         string `json:"url,omitempty" toml:"url"`
	DownloadURL string `json:"download_url,omitempty" toml:"download_url"`
	ExtraName   string `json:"extra_name,omitempty" toml:"extra_name"`
	ExtraURL    string `json:"extra_url,omitempty" toml:"extra_url"`

	License     string   `json:"license,omitempty" toml:"license"`
	Classifiers []string `json:"classifiers,omitempty" toml:"classifiers"`

	// Platforms is a comma-separated platform list, e.g. "Linux,OSX".
	Platforms string `json:"platforms,omitempty" toml:"platforms"`

	// Release marks a release build as opposed to a development snapshot.
	Release bool `json:"release" toml:"release"`

	Provides      []string            `json:"provides,omitempty" toml:"provides"`
	Requires      []string            `json:"requires,omitempty" toml:"requires"`
	ExtraRequires map[string][]string `json:"extra_requires,omitempty" toml:"extra_requires"`
}

// VersionString returns the composed dotted version, e.g. "0.0.1".
func (d *Descriptor) VersionString() string {
	return d.Version.String()
}

// PlatformList splits the comma-separated Platforms field.
// Returns nil when no platforms are declared.
func (d *Descriptor) PlatformList() []string {
	if d.Platforms == "" {
		return nil
	}
	parts := strings.Split(d.Platforms, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RequiresSpecifiers parses every entry of Requires.
func (d *Descriptor) RequiresSpecifiers() ([]*specifier.Specifier, error) {
	return specifier.ParseAll(d.Requires)
}

// LicenseID returns a short license identifier, preferring the license
// classifier over the License field.
func (d *Descriptor) LicenseID() string {
	return classifier.License(d.License, d.Classifiers)
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	out := *d
	out.Classifiers = slices.Clone(d.Classifiers)
	out.Provides = slices.Clone(d.Provides)
	out.Requires = slices.Clone(d.Requires)
	if d.ExtraRequires != nil {
		out.ExtraRequires = make(map[string][]string, len(d.ExtraRequires))
		for k, v := range d.ExtraRequires {
			out.ExtraRequires[k] = slices.Clone(v)
		}
	}
	return &out
}

// Equal reports whether two descriptors carry identical field values.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !slices.Equal(d.Classifiers, other.Classifiers) ||
		!slices.Equal(d.Provides, other.Provides) ||
		!slices.Equal(d.Requires, other.Requires) {
		return false
	}
	if !maps.EqualFunc(d.ExtraRequires, other.ExtraRequires, slices.Equal) {
		return false
	}
	return d.Name == other.Name &&
		d.Version == other.Version &&
		d.Organisation == other.Organisation &&
		d.Maintainer == other.Maintainer &&
		d.MaintainerEmail == other.MaintainerEmail &&
		d.Author == other.Author &&
		d.AuthorEmail == other.AuthorEmail &&
		d.Description == other.Description &&
		d.LongDescription == other.LongDescription &&
		d.Summary == other.Summary &&
		d.URL == other.URL &&
		d.DownloadURL == other.DownloadURL &&
		d.ExtraName == other.ExtraName &&
		d.ExtraURL == other.ExtraURL &&
		d.License == other.License &&
		d.Platforms == other.Platforms &&
		d.Release == other.Release
}
