package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurospin/distmeta/pkg/check"
	"github.com/neurospin/distmeta/pkg/registry/pypi"
)

// checkCommand creates the check command for verifying dependencies
// against PyPI.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		refresh   bool
		noCache   bool
		redisAddr string
		extras    bool
	)

	cmd := &cobra.Command{
		Use:   "check [manifest]",
		Short: "Check declared dependencies against PyPI",
		Long:  `Check verifies that every dependency declared in the manifest exists on PyPI and that its latest release satisfies the declared version constraints. Registry responses are cached locally; use --refresh to bypass the cache.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := c.loadManifest(args)
			if err != nil {
				return err
			}

			backend, err := newCache(cmd.Context(), noCache, redisAddr)
			if err != nil {
				return fmt.Errorf("cache setup: %w", err)
			}
			defer backend.Close()

			client := pypi.NewClient(backend, defaultCacheTTL)
			report := check.Run(cmd.Context(), d, client, check.Options{
				Refresh:       refresh,
				IncludeExtras: extras,
				Logger:        c.Logger.Debugf,
			})

			printReport(report)
			if !report.OK() {
				return fmt.Errorf("dependency check failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and fetch fresh registry data")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "use a Redis cache at host:port instead of the file cache")
	cmd.Flags().BoolVar(&extras, "extras", false, "also check extra-requires groups")

	return cmd
}

// printReport prints one line per checked dependency.
func printReport(report *check.Report) {
	for _, res := range report.Results {
		label := res.Raw
		if res.Group != "" {
			label = fmt.Sprintf("[%s] %s", res.Group, res.Raw)
		}

		switch {
		case res.Err != nil:
			printError("%s (%v)", label, res.Err)
		case !res.Found:
			printWarning("%s (not on index)", label)
		case !res.Satisfied:
			printError("%s (latest %s does not satisfy constraints)", label, res.Latest)
		default:
			printSuccess("%s (latest %s)", label, res.Latest)
		}
	}

	printNewline()
	if report.OK() {
		printSuccess("All %d dependencies satisfied", len(report.Results))
	} else {
		printWarning("%d dependencies checked, some failed", len(report.Results))
	}
}
