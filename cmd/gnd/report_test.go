package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
	"github.com/j-veylop/govnews-dashboard-tui/internal/report"
)

type reportJSON struct {
	Query struct {
		Start       string   `json:"start"`
		End         string   `json:"end"`
		Granularity string   `json:"granularity"`
		Agencies    []string `json:"agencies"`
		RankFrom    int      `json:"rank_from"`
		RankTo      int      `json:"rank_to"`
	} `json:"query"`
	Ranking []struct {
		Agency string `json:"agency"`
		Rank   int    `json:"rank"`
		Count  int    `json:"count"`
	} `json:"ranking"`
	Timeline []struct {
		Label string `json:"label"`
		Count int    `json:"count"`
	} `json:"timeline"`
	Articles []struct {
		Agency string `json:"agency"`
	} `json:"articles"`
	Matched   int  `json:"matched"`
	Truncated bool `json:"truncated"`
}

func runJSONReport(t *testing.T, args ...string) reportJSON {
	t.Helper()
	out, _, err := execute(t, append([]string{"report", "-f", "json"}, args...)...)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	var r reportJSON
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	return r
}

func rankedAgencies(r reportJSON) []string {
	agencies := make([]string, len(r.Ranking))
	for i, a := range r.Ranking {
		agencies[i] = a.Agency
	}
	return agencies
}

func TestNewReportCmd(t *testing.T) {
	cmd := NewReportCmd()

	if cmd.Use != "report" {
		t.Errorf("Use = %q, want report", cmd.Use)
	}

	flags := []struct {
		name      string
		shorthand string
	}{
		{"format", "f"},
		{"output", "o"},
		{"start", ""},
		{"end", ""},
		{"granularity", "g"},
		{"top", "n"},
		{"from", ""},
		{"agency", ""},
		{"max-articles", ""},
	}
	for _, f := range flags {
		flag := cmd.Flags().Lookup(f.name)
		if flag == nil {
			t.Errorf("missing --%s flag", f.name)
			continue
		}
		if flag.Shorthand != f.shorthand {
			t.Errorf("--%s shorthand = %q, want %q", f.name, flag.Shorthand, f.shorthand)
		}
	}
}

func TestReportQuery_EmptyDefaultWindow(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want models.RankWindow
	}{
		{"from keeps the configured width", []string{"--from", "2"}, models.RankWindow{From: 2, To: 4}},
		{"top overrides", []string{"--from", "2", "--top", "1"}, models.RankWindow{From: 2, To: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewReportCmd()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}
			// Default query of a dataset with no agencies.
			q := models.Query{Window: models.RankWindow{From: 1, To: 0}}

			got, err := reportQuery(cmd, q, 3)
			if err != nil {
				t.Fatalf("reportQuery failed: %v", err)
			}
			if got.Window != tt.want {
				t.Errorf("Window = %+v, want %+v", got.Window, tt.want)
			}
		})
	}
}

func TestReport_Defaults(t *testing.T) {
	setupEnv(t)

	r := runJSONReport(t)

	if r.Query.Start != "2010-01-01" || r.Query.End != "2024-04-02" {
		t.Errorf("range = %s..%s, want 2010-01-01..2024-04-02", r.Query.Start, r.Query.End)
	}
	if r.Query.Granularity != "month" {
		t.Errorf("granularity = %q, want month", r.Query.Granularity)
	}
	if r.Matched != 6 {
		t.Errorf("matched = %d, want 6", r.Matched)
	}
	if got := rankedAgencies(r); len(got) != 2 || got[0] != "mec" || got[1] != "saude" {
		t.Errorf("ranking = %v, want [mec saude]", got)
	}
	if len(r.Timeline) != 4 {
		t.Errorf("expected 4 monthly buckets, got %d", len(r.Timeline))
	}
	if len(r.Articles) != 5 {
		t.Errorf("expected 5 articles from the ranked agencies, got %d", len(r.Articles))
	}
}

func TestReport_Flags(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name        string
		args        []string
		wantMatched int
		wantRanking []string
		wantBuckets int
	}{
		{
			name:        "date range",
			args:        []string{"--start", "2024-03-01", "--end", "2024-03-31"},
			wantMatched: 3,
			wantRanking: []string{"agu", "mec"},
			wantBuckets: 1,
		},
		{
			name:        "yearly buckets",
			args:        []string{"-g", "year"},
			wantMatched: 6,
			wantRanking: []string{"mec", "saude"},
			wantBuckets: 1,
		},
		{
			name:        "agency filter",
			args:        []string{"--agency", "agu", "--agency", "saude"},
			wantMatched: 3,
			wantRanking: []string{"saude", "agu"},
			wantBuckets: 2,
		},
		{
			name:        "rank window",
			args:        []string{"--from", "2", "-n", "2"},
			wantMatched: 6,
			wantRanking: []string{"saude", "agu"},
			wantBuckets: 4,
		},
		{
			name:        "top only",
			args:        []string{"-n", "1"},
			wantMatched: 6,
			wantRanking: []string{"mec"},
			wantBuckets: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runJSONReport(t, tt.args...)

			if r.Matched != tt.wantMatched {
				t.Errorf("matched = %d, want %d", r.Matched, tt.wantMatched)
			}
			got := rankedAgencies(r)
			if strings.Join(got, ",") != strings.Join(tt.wantRanking, ",") {
				t.Errorf("ranking = %v, want %v", got, tt.wantRanking)
			}
			if len(r.Timeline) != tt.wantBuckets {
				t.Errorf("buckets = %d, want %d", len(r.Timeline), tt.wantBuckets)
			}
		})
	}
}

func TestReport_MaxArticles(t *testing.T) {
	setupEnv(t)

	r := runJSONReport(t, "--max-articles", "2")
	if len(r.Articles) != 2 {
		t.Errorf("expected 2 articles, got %d", len(r.Articles))
	}
	if !r.Truncated {
		t.Error("expected truncated to be set")
	}
}

func TestReport_Errors(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown format", []string{"-f", "xml"}, report.ErrUnknownFormat},
		{"bad granularity", []string{"-g", "quarter"}, models.ErrInvalidGranularity},
		{"reversed range", []string{"--start", "2024-03-01", "--end", "2024-02-01"}, models.ErrInvalidDateRange},
		{"bad date", []string{"--start", "01/03/2024"}, nil},
		{"zero top", []string{"-n", "0"}, nil},
		{"zero from", []string{"--from", "0"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append([]string{"report"}, tt.args...)...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReport_MarkdownToFile(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "report.md")

	out, stderr, err := execute(t, "report", "-o", path)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty when writing to a file, got %q", out)
	}
	if !strings.Contains(stderr, path) {
		t.Errorf("stderr should name the output file, got %q", stderr)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	for _, want := range []string{"mec", "saude"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestReport_FileFlagOverridesEnv(t *testing.T) {
	path := setupEnv(t)
	t.Setenv("DATASET_FILE", filepath.Join(t.TempDir(), "missing.jsonl"))

	r := runJSONReport(t, "--file", path)
	if r.Matched != 6 {
		t.Errorf("matched = %d, want 6", r.Matched)
	}
}
