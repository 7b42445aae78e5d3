// Package classifier handles trove classifiers, the "A :: B :: C"
// taxonomy strings package indexes use to categorize distributions
// (e.g. "Development Status :: 1 - Planning").
package classifier

import (
	"strings"

	"github.com/neurospin/distmeta/pkg/errors"
)

// Separator joins classifier segments.
const Separator = " :: "

// Classifier is a parsed trove classifier.
type Classifier struct {
	Segments []string // Taxonomy path segments, outermost first
}

// Parse splits a classifier string into its segments.
// Returns an error with code [errors.ErrCodeInvalidClassifier] if the
// string is empty or any segment is blank.
func Parse(s string) (*Classifier, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrCodeInvalidClassifier, "empty classifier")
	}
	parts := strings.Split(s, "::")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, errors.New(errors.ErrCodeInvalidClassifier, "classifier has empty segment: %q", s)
		}
		segments = append(segments, p)
	}
	return &Classifier{Segments: segments}, nil
}

// String returns the classifier in canonical " :: " joined form.
func (c *Classifier) String() string {
	return strings.Join(c.Segments, Separator)
}

// Category returns the outermost segment (e.g. "Development Status").
func (c *Classifier) Category() string {
	return c.Segments[0]
}

// Leaf returns the innermost segment (e.g. "1 - Planning").
func (c *Classifier) Leaf() string {
	return c.Segments[len(c.Segments)-1]
}

// ValidateAll parses every classifier string, returning the first error.
func ValidateAll(classifiers []string) error {
	for _, s := range classifiers {
		if _, err := Parse(s); err != nil {
			return err
		}
	}
	return nil
}

// License extracts a short license identifier from a license field and
// a classifier list. It prefers the license classifier (e.g.
// "License :: OSI Approved :: MIT License" -> "MIT License") and falls
// back to the license field when it is short enough to be an identifier
// rather than full license text.
func License(license string, classifiers []string) string {
	for _, s := range classifiers {
		if strings.HasPrefix(s, "License"+Separator) {
			parts := strings.Split(s, Separator)
			if len(parts) >= 2 {
				return parts[len(parts)-1]
			}
		}
	}

	if license != "" && len(license) < 100 && !strings.Contains(license, "\n") {
		return strings.TrimSpace(license)
	}

	if license != "" {
		firstLine := strings.TrimSpace(strings.Split(license, "\n")[0])
		if len(firstLine) < 50 {
			return firstLine
		}
	}

	return ""
}
