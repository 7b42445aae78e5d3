// Package manifest loads distribution descriptors from local manifest
// files. A manifest is the single authoritative source of a project's
// metadata; the descriptor is constructed from it exactly once and
// treated as read-only afterwards.
package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/neurospin/distmeta/pkg/descriptor"
)

// DefaultFilename is the manifest name looked up when none is given.
const DefaultFilename = "distmeta.toml"

// Parser reads a descriptor from a manifest file.
type Parser interface {
	// Parse reads the manifest at path and returns the descriptor.
	Parse(path string) (*descriptor.Descriptor, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "toml", "json").
	Type() string
}

// Parsers returns all built-in manifest parsers.
func Parsers() []Parser {
	return []Parser{&TOML{}, &JSON{}}
}

// Detect finds a parser that supports the given file path.
// Returns an error if no parser matches.
func Detect(path string, parsers ...Parser) (Parser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unsupported manifest: %s", name)
}

// Load detects the manifest format, parses it, and validates the
// resulting descriptor. This is the construction path for descriptors:
// a Load that returns nil error yields a record that satisfies every
// structural invariant.
func Load(path string) (*descriptor.Descriptor, error) {
	p, err := Detect(path, Parsers()...)
	if err != nil {
		return nil, err
	}
	d, err := p.Parse(path)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
