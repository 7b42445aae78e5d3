package render

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/neurospin/distmeta/pkg/descriptor"
)

// Document is the PyPI-style JSON representation of a descriptor, the
// same shape the /pypi/{name}/json registry endpoint serves.
type Document struct {
	Info Info `json:"info"`
}

// Info holds the metadata block of a PyPI-style JSON document.
type Info struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Summary         string            `json:"summary,omitempty"`
	Description     string            `json:"description,omitempty"`
	License         string            `json:"license,omitempty"`
	Author          string            `json:"author,omitempty"`
	AuthorEmail     string            `json:"author_email,omitempty"`
	Maintainer      string            `json:"maintainer,omitempty"`
	MaintainerEmail string            `json:"maintainer_email,omitempty"`
	HomePage        string            `json:"home_page,omitempty"`
	DownloadURL     string            `json:"download_url,omitempty"`
	Platform        string            `json:"platform,omitempty"`
	Classifiers     []string          `json:"classifiers,omitempty"`
	RequiresDist    []string          `json:"requires_dist,omitempty"`
	ProvidesExtra   []string          `json:"provides_extra,omitempty"`
	ProjectURLs     map[string]string `json:"project_urls,omitempty"`
}

// PyPI converts a descriptor into its PyPI-style JSON document.
// Extra-requires entries appear in requires_dist with the standard
// `extra == "group"` environment marker.
func PyPI(d *descriptor.Descriptor) *Document {
	info := Info{
		Name:            d.Name,
		Version:         d.VersionString(),
		Summary:         strings.TrimSpace(d.Summary),
		Description:     strings.TrimSpace(d.LongDescription),
		License:         d.License,
		Author:          strings.TrimSpace(d.Author),
		AuthorEmail:     d.AuthorEmail,
		Maintainer:      strings.TrimSpace(d.Maintainer),
		MaintainerEmail: d.MaintainerEmail,
		HomePage:        d.URL,
		DownloadURL:     d.DownloadURL,
		Platform:        d.Platforms,
		Classifiers:     d.Classifiers,
		RequiresDist:    append([]string(nil), d.Requires...),
	}

	for _, group := range sortedGroups(d.ExtraRequires) {
		info.ProvidesExtra = append(info.ProvidesExtra, group)
		for _, r := range d.ExtraRequires[group] {
			info.RequiresDist = append(info.RequiresDist, r+extraMarker(group))
		}
	}

	urls := make(map[string]string)
	if d.URL != "" {
		urls["Homepage"] = d.URL
	}
	if d.DownloadURL != "" {
		urls["Download"] = d.DownloadURL
	}
	if d.ExtraName != "" && d.ExtraURL != "" {
		urls[d.ExtraName] = d.ExtraURL
	}
	if len(urls) > 0 {
		info.ProjectURLs = urls
	}

	return &Document{Info: info}
}

// WriteJSON renders the descriptor as an indented JSON manifest, the
// same shape the manifest package reads back.
func WriteJSON(w io.Writer, d *descriptor.Descriptor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WritePyPIJSON renders the descriptor as a PyPI-style JSON document.
func WritePyPIJSON(w io.Writer, d *descriptor.Descriptor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(PyPI(d))
}
