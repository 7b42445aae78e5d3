// Package cli implements the distmeta command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/neurospin/distmeta/pkg/buildinfo"
	"github.com/neurospin/distmeta/pkg/cache"
	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/manifest"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "distmeta"

	// defaultCacheTTL is how long registry responses stay cached.
	defaultCacheTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "distmeta",
		Short:        "Distmeta manages Python distribution metadata",
		Long:         `Distmeta loads distribution metadata from manifest files, validates it, renders it in the formats packaging tools consume, checks declared dependencies against PyPI, and serves stored descriptors over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.showCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Manifest Loading
// =============================================================================

// manifestPath resolves the manifest argument: explicit path if given,
// otherwise the default manifest name in the current directory.
func manifestPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return manifest.DefaultFilename
}

// loadManifest loads and validates the descriptor from the manifest.
func (c *CLI) loadManifest(args []string) (*descriptor.Descriptor, string, error) {
	path := manifestPath(args)
	c.Logger.Debug("loading manifest", "path", path)
	d, err := manifest.Load(path)
	if err != nil {
		return nil, path, err
	}
	return d, path, nil
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache selects the cache backend for registry lookups: null when
// disabled, Redis when an address is given, file cache otherwise.
func newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/distmeta/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputWriter opens the output target: stdout when path is empty.
func outputWriter(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
