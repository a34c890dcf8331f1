package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/j-veylop/govnews-dashboard-tui/internal/db"
)

var errNoDatabase = errors.New("snapshot store is disabled (DATABASE_PATH is empty)")

// NewCacheCmd creates the cache command and its subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Show the stored copy of the dataset",
		Long: `Show the copy of the last successful load kept in the snapshot store.

The dashboard falls back to this copy when the dataset source cannot be reached.`,
		Args: cobra.NoArgs,
		RunE: runCacheInfo,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "vacuum",
		Short: "Compact the snapshot store",
		Args:  cobra.NoArgs,
		RunE:  runCacheVacuum,
	})

	return cmd
}

func openStore(cmd *cobra.Command) (*db.DB, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	if cfg.DatabasePath == "" {
		return nil, "", errNoDatabase
	}
	store, err := db.New(cfg.DatabasePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open snapshot store: %w", err)
	}
	return store, cfg.SourceName(), nil
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	store, source, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "database: %s\n", store.Path())
	fmt.Fprintf(out, "source:   %s\n", source)

	info, err := store.LatestSnapshotInfo(source)
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Fprintln(out, "stored:   none")
		return nil
	}
	fmt.Fprintf(out, "stored:   %s articles, fetched %s (%s)\n",
		humanize.Comma(int64(info.ArticleCount)),
		info.FetchedAt.Local().Format("2006-01-02 15:04"),
		humanize.Time(info.FetchedAt))
	return nil
}

func runCacheVacuum(cmd *cobra.Command, _ []string) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	before := fileSize(store.Path())
	if err := store.Vacuum(); err != nil {
		return fmt.Errorf("failed to vacuum snapshot store: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "compacted %s: %s -> %s\n", store.Path(),
		humanize.Bytes(uint64(before)), humanize.Bytes(uint64(fileSize(store.Path()))))
	return nil
}

func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
