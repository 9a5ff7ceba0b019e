package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/leveling/pkg/cache"
)

// cacheCommand groups maintenance of the local file cache. A Redis cache
// selected by LEVELING_REDIS_URL is managed with Redis tooling instead.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local layout cache",
	}

	var expired bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached layouts and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runCacheClear(expired)
		},
	}
	clearCmd.Flags().BoolVar(&expired, "expired", false, "only remove expired or unreadable entries")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return err
		},
	}

	cmd.AddCommand(clearCmd, pathCmd)
	return cmd
}

func (c *CLI) runCacheClear(expiredOnly bool) error {
	if os.Getenv(redisURLEnv) != "" {
		printWarning("%s is set; only the local cache is cleared", redisURLEnv)
	}

	dir, err := cacheDir()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		printInfo("Cache is empty")
		return nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}

	remove, what := fc.Clear, "cached entries"
	if expiredOnly {
		remove, what = fc.Prune, "expired entries"
	}
	n, err := remove()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Removed %d %s", n, what)
	printDetail("Directory: %s", dir)
	return nil
}
