package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/govnews-dashboard-tui/internal/logger"
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

const (
	// DefaultEndpoint is the public datasets-server host.
	DefaultEndpoint = "https://datasets-server.huggingface.co"

	// MaxPageSize is the largest page the rows API serves.
	MaxPageSize = 100

	defaultConcurrency    = 8
	defaultRequestTimeout = 30 * time.Second
	maxErrorBody          = 512
)

// HuggingFaceConfig configures a HuggingFaceSource.
type HuggingFaceConfig struct {
	HTTPClient  *http.Client
	Endpoint    string
	Dataset     string
	Config      string
	Split       string
	Token       string
	PageSize    int
	Concurrency int
	// Timeout bounds each page request when HTTPClient is nil. The whole
	// download is bounded only by the Fetch context.
	Timeout time.Duration
}

// HuggingFaceSource reads a dataset split page by page from the
// Hugging Face datasets-server rows API.
type HuggingFaceSource struct {
	client      *http.Client
	endpoint    string
	dataset     string
	config      string
	split       string
	token       string
	pageSize    int
	concurrency int
}

type rowsResponse struct {
	Rows []struct {
		Row    map[string]any `json:"row"`
		RowIdx int            `json:"row_idx"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// NewHuggingFaceSource creates a source, filling in defaults for zero fields.
func NewHuggingFaceSource(cfg HuggingFaceConfig) *HuggingFaceSource {
	s := &HuggingFaceSource{
		client:      cfg.HTTPClient,
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		dataset:     cfg.Dataset,
		config:      cfg.Config,
		split:       cfg.Split,
		token:       cfg.Token,
		pageSize:    cfg.PageSize,
		concurrency: cfg.Concurrency,
	}
	if s.client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		s.client = &http.Client{Timeout: timeout}
	}
	if s.endpoint == "" {
		s.endpoint = DefaultEndpoint
	}
	if s.config == "" {
		s.config = "default"
	}
	if s.split == "" {
		s.split = "train"
	}
	if s.pageSize <= 0 || s.pageSize > MaxPageSize {
		s.pageSize = MaxPageSize
	}
	if s.concurrency <= 0 {
		s.concurrency = defaultConcurrency
	}
	return s
}

// Name returns "hf://<dataset>/<config>/<split>".
func (s *HuggingFaceSource) Name() string {
	return fmt.Sprintf("hf://%s/%s/%s", s.dataset, s.config, s.split)
}

// Fetch downloads the first page to learn the row count, then the remaining
// pages concurrently. Rows keep their dataset order.
func (s *HuggingFaceSource) Fetch(ctx context.Context) (models.Dataset, error) {
	first, err := s.fetchPage(ctx, 0)
	if err != nil {
		return nil, err
	}

	total := max(first.NumRowsTotal, len(first.Rows))
	articles := make(models.Dataset, total)
	s.fill(articles, 0, first)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for offset := len(first.Rows); offset < total && len(first.Rows) > 0; offset += s.pageSize {
		g.Go(func() error {
			page, err := s.fetchPage(gctx, offset)
			if err != nil {
				return err
			}
			s.fill(articles, offset, page)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("fetched dataset", "source", s.Name(), "rows", total)
	return articles, nil
}

// fill decodes a page into its slots. Pages write disjoint ranges.
func (s *HuggingFaceSource) fill(dst models.Dataset, offset int, page *rowsResponse) {
	for i, r := range page.Rows {
		idx := r.RowIdx
		if idx < offset || idx >= len(dst) {
			idx = offset + i
		}
		if idx >= len(dst) {
			continue
		}
		dst[idx] = decodeRow(r.Row)
	}
}

func (s *HuggingFaceSource) fetchPage(ctx context.Context, offset int) (*rowsResponse, error) {
	q := url.Values{}
	q.Set("dataset", s.dataset)
	q.Set("config", s.config)
	q.Set("split", s.split)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("length", strconv.Itoa(s.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/rows?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("rows offset %d: status %d: %s", offset, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var page rowsResponse
	if err := dec.Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to parse rows offset %d: %w", offset, err)
	}
	return &page, nil
}
