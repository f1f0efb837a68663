package commands

import (
	"fmt"

	"github.com/leapstack-labs/csvcode/internal/cache"
	"github.com/leapstack-labs/csvcode/internal/cli/config"
	"github.com/leapstack-labs/csvcode/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewCacheCommand creates the cache command with its subcommands.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the dialect cache",
		Long: `Detected dialects are cached per file content so repeated runs on an
unchanged file skip detection. The cache lives at cache_path and is
bypassed with --no-cache.`,
	}

	cmd.AddCommand(newCacheClearCommand())
	cmd.AddCommand(newCacheInfoCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetConfig(cmd.Context())
			store, err := cache.Open(cfg.CachePath)
			if err != nil {
				return fmt.Errorf("failed to open dialect cache: %w", err)
			}
			defer func() { _ = store.Close() }()

			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached dialect(s)\n", n)
			return nil
		},
	}
}

func newCacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where the dialect cache is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetConfig(cmd.Context())
			r := output.NewRenderer(cmd.OutOrStdout(), output.ModeTable, cfg.Color)

			store, err := cache.Open(cfg.CachePath)
			if err != nil {
				return fmt.Errorf("failed to open dialect cache: %w", err)
			}
			defer func() { _ = store.Close() }()

			version, err := store.Version()
			if err != nil {
				return err
			}
			n, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}

			r.Printf("%s %s\n", r.Muted("path:   "), cfg.CachePath)
			r.Printf("%s %d\n", r.Muted("schema: "), version)
			r.Printf("%s %d\n", r.Muted("entries:"), n)
			if cfg.NoCache {
				r.Println(r.Notice("caching is disabled (no_cache)"))
			}
			return nil
		},
	}
}
