package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// FileSource reads a local dataset export. JSON files may hold one object per
// line or a single top-level array; CSV files need a header row.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Fetch reads and decodes the whole file.
func (s *FileSource) Fetch(ctx context.Context) (models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".csv":
		return decodeCSV(bytes.NewReader(data))
	case ".json", ".jsonl", ".ndjson":
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported dataset file %q", filepath.Base(s.path))
	}
}

func decodeJSON(data []byte) (models.Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var rows []map[string]any
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
		articles := make(models.Dataset, 0, len(rows))
		for _, row := range rows {
			articles = append(articles, decodeRow(row))
		}
		return articles, nil
	}

	articles := make(models.Dataset, 0)
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(text))
		dec.UseNumber()
		var row map[string]any
		if err := dec.Decode(&row); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		articles = append(articles, decodeRow(row))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan JSON lines: %w", err)
	}
	return articles, nil
}

func decodeCSV(r io.Reader) (models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Dataset{}, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	articles := make(models.Dataset, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		row := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		articles = append(articles, decodeRow(row))
	}
	return articles, nil
}
