package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/j-veylop/govnews-dashboard-tui/internal/logger"
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
	"github.com/j-veylop/govnews-dashboard-tui/internal/report"
	"github.com/j-veylop/govnews-dashboard-tui/internal/services"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute a query and print it as Markdown or JSON",
		Long: `Load the dataset, run a single query and write the result.

Flags that are not given keep the dashboard defaults: the configured range
start up to the latest article, the default granularity and the top-N
agencies.`,
		Example: `  gnd report
  gnd report -f json -g week --start 2024-01-01 --end 2024-06-30
  gnd report --agency mec --agency saude -o report.md
  gnd report --from 11 -n 10`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", string(report.FormatMarkdown), "output format: markdown or json")
	flags.StringP("output", "o", "", "write the report to a file instead of stdout")
	flags.String("start", "", "first day of the range (YYYY-MM-DD)")
	flags.String("end", "", "last day of the range (YYYY-MM-DD)")
	flags.StringP("granularity", "g", "", "bucket size: year, month, week or day")
	flags.IntP("top", "n", 0, "number of ranked agencies to include")
	flags.Int("from", 1, "first ranking position to include")
	flags.StringArray("agency", nil, "restrict to an agency (repeatable)")
	flags.Int("max-articles", 50, "article rows to list; 0 lists all")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	format, err := report.ParseFormat(mustString(cmd, "format"))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logCloser, err := logger.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() { _ = mgr.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap, err := mgr.Load(ctx)
	if err != nil {
		return err
	}
	if fetchErr := mgr.Loader().LastError(); fetchErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: using stored copy from %s: %v\n",
			snap.FetchedAt.Format(time.DateTime), fetchErr)
	}

	q, err := reportQuery(cmd, mgr.DefaultQuery(snap), cfg.DefaultTopN)
	if err != nil {
		return err
	}

	result, err := mgr.Query(ctx, q)
	if err != nil {
		return err
	}

	r := report.New(snap, result, time.Now())
	r.MaxArticles, _ = cmd.Flags().GetInt("max-articles")

	return writeReport(cmd, format, r)
}

// reportQuery applies the flags that were set on top of the default query.
// Without --top the window keeps its width, or topN when the default window
// is empty.
func reportQuery(cmd *cobra.Command, q models.Query, topN int) (models.Query, error) {
	flags := cmd.Flags()

	if flags.Changed("start") {
		t, err := parseDay(mustString(cmd, "start"))
		if err != nil {
			return q, fmt.Errorf("invalid --start: %w", err)
		}
		q.Criteria.Start = t
	}
	if flags.Changed("end") {
		t, err := parseDay(mustString(cmd, "end"))
		if err != nil {
			return q, fmt.Errorf("invalid --end: %w", err)
		}
		q.Criteria.End = t
	}
	if err := q.Criteria.Validate(); err != nil {
		return q, err
	}

	if flags.Changed("granularity") {
		g, err := models.ParseGranularity(mustString(cmd, "granularity"))
		if err != nil {
			return q, err
		}
		q.Granularity = g
	}

	if flags.Changed("agency") {
		q.Criteria.Agencies, _ = flags.GetStringArray("agency")
	}

	if flags.Changed("from") || flags.Changed("top") {
		from, _ := flags.GetInt("from")
		if from < 1 {
			return q, fmt.Errorf("--from must be at least 1, got %d", from)
		}
		top := q.Window.To - q.Window.From + 1
		if flags.Changed("top") {
			top, _ = flags.GetInt("top")
		} else if top < 1 {
			top = topN
		}
		if top < 1 {
			return q, fmt.Errorf("--top must be at least 1, got %d", top)
		}
		q.Window = models.RankWindow{From: from, To: from + top - 1}
	}

	return q, nil
}

func writeReport(cmd *cobra.Command, format report.Format, r *report.Report) error {
	var out io.Writer = cmd.OutOrStdout()

	path := mustString(cmd, "output")
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	w, err := report.NewWriter(format, out)
	if err != nil {
		return err
	}
	if err := w.Write(r); err != nil {
		return err
	}

	if path != "" {
		logger.Info("report written", "path", path, "format", string(format))
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
	}
	return nil
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

func mustString(cmd *cobra.Command, name string) string {
	s, _ := cmd.Flags().GetString(name)
	return s
}

