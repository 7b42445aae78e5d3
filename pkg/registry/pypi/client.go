// Package pypi provides access to the PyPI package registry API.
package pypi

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/neurospin/distmeta/pkg/cache"
	"github.com/neurospin/distmeta/pkg/classifier"
	"github.com/neurospin/distmeta/pkg/registry"
	"github.com/neurospin/distmeta/pkg/specifier"
)

var (
	depRE    = regexp.MustCompile(`^([a-zA-Z0-9_-]+)`)
	markerRE = regexp.MustCompile(`;\s*(.+)`)
	skipRE   = regexp.MustCompile(`extra|dev|test`)
)

// PackageInfo holds metadata for a Python package from PyPI.
//
// Package names are normalized following PEP 503. Dependencies list
// only runtime dependencies; extras, dev, and test deps are excluded.
// This struct is safe for concurrent reads after construction.
type PackageInfo struct {
	Name         string            // Normalized package name
	Version      string            // Latest version string
	Dependencies []string          // Direct runtime dependencies, normalized names
	Classifiers  []string          // Trove classifiers
	ProjectURLs  map[string]string // Project URLs from metadata (may be nil)
	HomePage     string            // Homepage URL (may be empty)
	Summary      string            // Short package description (may be empty)
	License      string            // Short license identifier (may be empty)
	Author       string            // Author name (may be empty)
}

// Client provides access to the PyPI package registry API.
// It handles HTTP requests with caching and automatic retries.
// All methods are safe for concurrent use.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a PyPI client with the given cache backend.
// Responses are cached for ttl; use cache.NewNullCache() to disable caching.
func NewClient(backend cache.Cache, ttl time.Duration) *Client {
	return &Client{
		Client:  registry.NewClient(backend, "pypi:", ttl, nil),
		baseURL: "https://pypi.org/pypi",
	}
}

// FetchPackage retrieves metadata for a Python package from PyPI.
//
// The pkg parameter is normalized automatically. If refresh is true,
// the cache is bypassed and a fresh API call is made.
//
// Returns [cache.ErrNotFound] if the package doesn't exist and
// [cache.ErrNetwork] for HTTP failures.
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = specifier.Normalize(pkg)

	var info PackageInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		return err
	}

	urls := make(map[string]string, len(data.Info.ProjectURLs))
	for k, v := range data.Info.ProjectURLs {
		if s, ok := v.(string); ok {
			urls[k] = s
		}
	}

	*info = PackageInfo{
		Name:         specifier.Normalize(data.Info.Name),
		Version:      data.Info.Version,
		Summary:      data.Info.Summary,
		License:      classifier.License(data.Info.License, data.Info.Classifiers),
		Classifiers:  data.Info.Classifiers,
		Dependencies: extractDeps(data.Info.RequiresDist),
		ProjectURLs:  urls,
		HomePage:     data.Info.HomePage,
		Author:       data.Info.Author,
	}
	return nil
}

// extractDeps filters requires_dist down to runtime dependencies,
// dropping entries whose environment marker scopes them to extras,
// dev, or test installs.
func extractDeps(requires []string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, req := range requires {
		if m := markerRE.FindStringSubmatch(req); len(m) > 1 && skipRE.MatchString(m[1]) {
			continue
		}
		if m := depRE.FindStringSubmatch(req); len(m) > 1 {
			dep := specifier.Normalize(m[1])
			if !seen[dep] {
				seen[dep] = true
				deps = append(deps, dep)
			}
		}
	}
	return deps
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	Summary      string         `json:"summary"`
	License      string         `json:"license"`
	Classifiers  []string       `json:"classifiers"`
	RequiresDist []string       `json:"requires_dist"`
	ProjectURLs  map[string]any `json:"project_urls"`
	HomePage     string         `json:"home_page"`
	Author       string         `json:"author"`
}
