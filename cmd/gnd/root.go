package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/j-veylop/govnews-dashboard-tui/internal/app"
	"github.com/j-veylop/govnews-dashboard-tui/internal/config"
	"github.com/j-veylop/govnews-dashboard-tui/internal/logger"
	"github.com/j-veylop/govnews-dashboard-tui/internal/services"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/tabs/agencies"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/tabs/articles"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/tabs/overview"
	"github.com/j-veylop/govnews-dashboard-tui/internal/version"
)

// NewRootCmd creates the root command. Without a subcommand it starts the TUI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gnd",
		Short: "Explore government news articles by agency and time",
		Long: `gnd is a terminal dashboard for a dataset of government news articles.

It loads the dataset once per cache window, then lets you filter by agency
and date range, bucket article counts by year, month, ISO week or day, and
rank the agencies that publish the most.

Configuration is read from the environment and from .env files in the
current directory or the XDG config directory (govnews-dashboard/.env).

Keys:
  1-4, tab        switch tabs (Overview, Agencies, Articles, Info)
  g               cycle granularity
  [ ] { }         move the range start / end
  + - < >         resize / slide the rank window
  space, a        toggle an agency / select all (Agencies tab)
  e, E            export Markdown / JSON report
  r               reload the dataset
  ?               help`,
		Version:       version.GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	cmd.PersistentFlags().String("file", "", "load the dataset from a local .jsonl, .json or .csv file (overrides DATASET_FILE)")
	cmd.Flags().String("export-dir", ".", "directory for reports exported from the dashboard")

	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewCacheCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		cfg.DatasetFile = file
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to LOG_FILE or nowhere.
	logCloser, err := logger.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()
	logger.Info("starting", "version", version.GetVersion(), "source", cfg.SourceName())

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)
	if dir, _ := cmd.Flags().GetString("export-dir"); dir != "" {
		model.SetExportDir(dir)
	}

	state := model.GetState()
	var store info.SnapshotStore
	if database := svcManager.Database(); database != nil {
		store = database
	}
	model.SetTabs([]app.Tab{
		overview.New(state),
		agencies.New(state),
		articles.New(state),
		info.New(state, cfg, store),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.Quit())
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
