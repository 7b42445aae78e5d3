// Package specifier parses Python dependency specifiers.
//
// A specifier names a package together with optional version constraints
// and an optional environment marker, e.g.:
//
//	pandas>=0.19.2
//	nibabel>=2.3.1,<4.0
//	pywin32>=1.0; sys_platform == "win32"
//
// Package names are normalized following PEP 503 (lowercase, runs of
// "-", "_", "." collapsed to a single hyphen).
package specifier

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/neurospin/distmeta/pkg/errors"
)

// Op is a version comparison operator.
type Op string

// Comparison operators recognized in version constraints (PEP 440 subset).
const (
	OpEqual        Op = "=="
	OpNotEqual     Op = "!="
	OpGreaterEqual Op = ">="
	OpLessEqual    Op = "<="
	OpGreater      Op = ">"
	OpLess         Op = "<"
	OpCompatible   Op = "~="
)

var (
	nameRE       = regexp.MustCompile(`^\s*([A-Za-z0-9][-A-Za-z0-9._]*)`)
	constraintRE = regexp.MustCompile(`^(~=|==|!=|>=|<=|>|<)\s*([0-9][-0-9A-Za-z.*+!]*)$`)
	normalizeRE  = regexp.MustCompile(`[-_.]+`)
)

// Constraint is a single version comparison, e.g. ">=0.19.2".
type Constraint struct {
	Op      Op     // Comparison operator
	Version string // Version literal the operator compares against
}

// String returns the constraint in specifier syntax.
func (c Constraint) String() string {
	return string(c.Op) + c.Version
}

// Specifier is a parsed dependency declaration.
// The zero value is not valid; use [Parse].
type Specifier struct {
	Name        string       // Normalized package name (PEP 503)
	Raw         string       // Original package name as written
	Constraints []Constraint // Version constraints, in declaration order (may be empty)
	Marker      string       // Environment marker after ";" (may be empty)
}

// Parse parses a dependency specifier string.
//
// Returns an error with code [errors.ErrCodeInvalidSpecifier] if the
// string is empty, the name is malformed, or a constraint cannot be
// parsed. URL references (PEP 508 "name @ url") are not supported.
func Parse(s string) (*Specifier, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, errors.New(errors.ErrCodeInvalidSpecifier, "empty specifier")
	}

	var marker string
	if i := strings.Index(trimmed, ";"); i >= 0 {
		marker = strings.TrimSpace(trimmed[i+1:])
		trimmed = strings.TrimSpace(trimmed[:i])
	}

	m := nameRE.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpecifier, "invalid specifier: %q", s)
	}
	raw := m[1]
	rest := strings.TrimSpace(trimmed[len(m[0]):])

	spec := &Specifier{
		Name:   Normalize(raw),
		Raw:    raw,
		Marker: marker,
	}

	if rest == "" {
		return spec, nil
	}
	if strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")") {
		rest = strings.TrimSpace(rest[1 : len(rest)-1])
	}

	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		cm := constraintRE.FindStringSubmatch(part)
		if cm == nil {
			return nil, errors.New(errors.ErrCodeInvalidSpecifier, "invalid constraint %q in specifier %q", part, s)
		}
		spec.Constraints = append(spec.Constraints, Constraint{
			Op:      Op(cm[1]),
			Version: cm[2],
		})
	}

	return spec, nil
}

// String returns the specifier in canonical form: normalized name
// followed by comma-joined constraints and the marker, if any.
func (s *Specifier) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for i, c := range s.Constraints {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(c.String())
	}
	if s.Marker != "" {
		b.WriteString("; ")
		b.WriteString(s.Marker)
	}
	return b.String()
}

// Matches reports whether version satisfies every constraint.
// A specifier without constraints matches any version.
func (s *Specifier) Matches(version string) bool {
	for _, c := range s.Constraints {
		if !c.matches(version) {
			return false
		}
	}
	return true
}

func (c Constraint) matches(version string) bool {
	switch c.Op {
	case OpEqual:
		if strings.HasSuffix(c.Version, ".*") {
			return hasReleasePrefix(version, strings.TrimSuffix(c.Version, ".*"))
		}
		return CompareVersions(version, c.Version) == 0
	case OpNotEqual:
		if strings.HasSuffix(c.Version, ".*") {
			return !hasReleasePrefix(version, strings.TrimSuffix(c.Version, ".*"))
		}
		return CompareVersions(version, c.Version) != 0
	case OpGreaterEqual:
		return CompareVersions(version, c.Version) >= 0
	case OpLessEqual:
		return CompareVersions(version, c.Version) <= 0
	case OpGreater:
		return CompareVersions(version, c.Version) > 0
	case OpLess:
		return CompareVersions(version, c.Version) < 0
	case OpCompatible:
		// ~=X.Y.Z means >=X.Y.Z and ==X.Y.*
		segs := strings.Split(c.Version, ".")
		if len(segs) < 2 {
			return false
		}
		prefix := strings.Join(segs[:len(segs)-1], ".")
		return CompareVersions(version, c.Version) >= 0 && hasReleasePrefix(version, prefix)
	default:
		return false
	}
}

// hasReleasePrefix reports whether version starts with the given
// release segments, e.g. "1.4.2" has prefix "1.4" but not "1.40".
func hasReleasePrefix(version, prefix string) bool {
	vsegs := strings.Split(version, ".")
	psegs := strings.Split(prefix, ".")
	if len(psegs) > len(vsegs) {
		return false
	}
	for i, p := range psegs {
		if segmentCompare(vsegs[i], p) != 0 {
			return false
		}
	}
	return true
}

// CompareVersions compares two dotted version strings.
// Returns -1 if a < b, 0 if equal, +1 if a > b.
//
// Segments are compared numerically when both parse as integers and
// lexically otherwise. Missing trailing segments are treated as zero,
// so "1.0" equals "1.0.0".
func CompareVersions(a, b string) int {
	asegs := strings.Split(a, ".")
	bsegs := strings.Split(b, ".")
	n := max(len(asegs), len(bsegs))
	for i := range n {
		as, bs := "0", "0"
		if i < len(asegs) {
			as = asegs[i]
		}
		if i < len(bsegs) {
			bs = bsegs[i]
		}
		if cmp := segmentCompare(as, bs); cmp != 0 {
			return cmp
		}
	}
	return 0
}

func segmentCompare(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// Normalize returns the PEP 503 normalized form of a package name:
// lowercase with runs of "-", "_", "." collapsed to a single hyphen.
func Normalize(name string) string {
	return strings.ToLower(normalizeRE.ReplaceAllString(name, "-"))
}

// ParseAll parses a list of specifier strings, failing on the first
// invalid entry with its position included in the error.
func ParseAll(specs []string) ([]*Specifier, error) {
	out := make([]*Specifier, 0, len(specs))
	for i, s := range specs {
		spec, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("specifier %d: %w", i, err)
		}
		out = append(out, spec)
	}
	return out, nil
}
