// Package check verifies a descriptor's dependency declarations
// against a package registry: that each required package exists and
// that its latest release satisfies the declared version constraints.
package check

import (
	"context"
	"errors"
	"slices"

	"github.com/neurospin/distmeta/pkg/cache"
	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/registry/pypi"
	"github.com/neurospin/distmeta/pkg/specifier"
)

// Fetcher retrieves package metadata from a registry.
// *pypi.Client satisfies this interface.
type Fetcher interface {
	FetchPackage(ctx context.Context, pkg string, refresh bool) (*pypi.PackageInfo, error)
}

// Options configures a dependency check run.
type Options struct {
	Refresh       bool                 // Bypass cache for fresh registry data
	IncludeExtras bool                 // Also check extra-requires groups
	Logger        func(string, ...any) // Progress/error callback (optional)
}

// Result is the outcome for a single dependency declaration.
type Result struct {
	Raw       string               // Specifier as written in the descriptor
	Group     string               // Extra-requires group, empty for runtime deps
	Spec      *specifier.Specifier // Parsed specifier, nil if unparseable
	Found     bool                 // Whether the package exists in the registry
	Latest    string               // Latest version reported by the registry
	Satisfied bool                 // Whether Latest satisfies the constraints
	Err       error                // Parse or fetch error, nil on success
}

// Report collects the results of one check run.
type Report struct {
	Results []Result
}

// OK reports whether every dependency was found with its constraints
// satisfied by the latest release.
func (r *Report) OK() bool {
	for _, res := range r.Results {
		if res.Err != nil || !res.Found || !res.Satisfied {
			return false
		}
	}
	return true
}

// Run checks every requires entry of the descriptor against the
// registry. Failures on individual entries are recorded in the report
// rather than aborting the run.
func Run(ctx context.Context, d *descriptor.Descriptor, f Fetcher, opts Options) *Report {
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}

	report := &Report{}
	for _, raw := range d.Requires {
		report.Results = append(report.Results, checkOne(ctx, f, raw, "", opts))
	}
	if opts.IncludeExtras {
		for _, group := range sortedGroups(d.ExtraRequires) {
			for _, raw := range d.ExtraRequires[group] {
				report.Results = append(report.Results, checkOne(ctx, f, raw, group, opts))
			}
		}
	}
	return report
}

func checkOne(ctx context.Context, f Fetcher, raw, group string, opts Options) Result {
	res := Result{Raw: raw, Group: group}

	spec, err := specifier.Parse(raw)
	if err != nil {
		opts.Logger("parse failed: %s: %v", raw, err)
		res.Err = err
		return res
	}
	res.Spec = spec

	info, err := f.FetchPackage(ctx, spec.Name, opts.Refresh)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			opts.Logger("not on index: %s", spec.Name)
			return res
		}
		opts.Logger("fetch failed: %s: %v", spec.Name, err)
		res.Err = err
		return res
	}

	res.Found = true
	res.Latest = info.Version
	res.Satisfied = spec.Matches(info.Version)
	return res
}

// sortedGroups returns group names in stable order so reports are
// deterministic.
func sortedGroups(extras map[string][]string) []string {
	groups := make([]string, 0, len(extras))
	for g := range extras {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}
