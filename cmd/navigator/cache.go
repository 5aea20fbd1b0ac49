package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrypster/navigator/internal/storage"
)

func newCacheCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage cached briefings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "key [identifier]",
		Short: "Print the cache key for a profile identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), storage.CacheKey(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached briefings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openConfiguredCache(cmd, global)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			entries, err := cache.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cached briefings")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tUPDATED\tSIZE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", e.Key, e.UpdatedAt.Format(time.RFC3339), e.Size)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [key-or-identifier]",
		Short: "Remove a cached briefing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openConfiguredCache(cmd, global)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			key := resolveKey(args[0])
			if err := cache.Delete(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", key)
			return nil
		},
	})

	cmd.AddCommand(newCachePruneCmd(global))
	return cmd
}

func newCachePruneCmd(global *globalOptions) *cobra.Command {
	var (
		maxAge time.Duration
		keep   int
	)
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove old cached briefings",
		Long: `Remove cached briefings older than --max-age, then keep at most --keep
of the remaining, newest first. Flags default to cache.max_age and
cache.max_entries from the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.load()
			if err != nil {
				return err
			}
			policy := storage.RetentionPolicy{MaxAge: cfg.Cache.MaxAge, MaxEntries: cfg.Cache.MaxEntries}
			if cmd.Flags().Changed("max-age") {
				policy.MaxAge = maxAge
			}
			if cmd.Flags().Changed("keep") {
				policy.MaxEntries = keep
			}
			if policy.MaxAge == 0 && policy.MaxEntries == 0 {
				return fmt.Errorf("%w: set --max-age or --keep", storage.ErrInvalidInput)
			}

			cache, err := openConfiguredCache(cmd, global)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			res, err := storage.Prune(cmd.Context(), cache, policy, time.Now())
			for _, key := range res.Removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d, kept %d, freed %d bytes\n", len(res.Removed), res.Kept, res.BytesFreed)
			return err
		},
	}
	prune.Flags().DurationVar(&maxAge, "max-age", 0, "Remove briefings older than this, e.g. 720h")
	prune.Flags().IntVar(&keep, "keep", 0, "Keep at most this many briefings")
	return prune
}

// resolveKey accepts either a cache key or a profile identifier.
func resolveKey(arg string) string {
	if storage.ValidateKey(arg) == nil {
		return arg
	}
	return storage.CacheKey(arg)
}

func openConfiguredCache(cmd *cobra.Command, global *globalOptions) (storage.BriefingCache, error) {
	cfg, err := global.load()
	if err != nil {
		return nil, err
	}
	cache, err := openCache(cmd.Context(), cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if cache == nil {
		return nil, fmt.Errorf("%w: cache backend is %q", storage.ErrInvalidInput, cfg.Cache.Backend)
	}
	return cache, nil
}
