package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// timeLayout is how timestamps are written. It sorts lexically and is
// understood by SQLite's date functions.
const timeLayout = time.RFC3339Nano

var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 +0000 UTC",
}

func parseTimeString(s string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SnapshotInfo describes a stored snapshot without its articles.
type SnapshotInfo struct {
	FetchedAt    time.Time
	Source       string
	ID           int64
	ArticleCount int
}

// SaveSnapshot stores snap as the latest copy for its source and removes
// older copies of the same source.
func (db *DB) SaveSnapshot(snap *models.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot is nil")
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (source, fetched_at, article_count) VALUES (?, ?, ?)`,
		snap.Source, snap.FetchedAt.UTC().Format(timeLayout), len(snap.Articles),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (snapshot_id, position, agency, published_at, title, url, category, extra)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare article insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, a := range snap.Articles {
		var extra sql.NullString
		if len(a.Extra) > 0 {
			raw, err := json.Marshal(a.Extra)
			if err != nil {
				return fmt.Errorf("failed to encode article metadata: %w", err)
			}
			extra = sql.NullString{String: string(raw), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			snapshotID, i, a.Agency, a.PublishedAt.Format(timeLayout),
			a.Title, a.URL, a.Category, extra,
		); err != nil {
			return fmt.Errorf("failed to insert article %d: %w", i, err)
		}
	}

	if err := pruneSnapshots(ctx, tx, snap.Source, snapshotID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func pruneSnapshots(ctx context.Context, tx *sql.Tx, source string, keepID int64) error {
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM articles WHERE snapshot_id IN (
			SELECT id FROM snapshots WHERE source = ? AND id <> ?
		)`, source, keepID); err != nil {
		return fmt.Errorf("failed to prune articles: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE source = ? AND id <> ?`, source, keepID); err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return nil
}

// LatestSnapshotInfo returns metadata for the newest snapshot of source, or nil if there is none.
func (db *DB) LatestSnapshotInfo(source string) (*SnapshotInfo, error) {
	var info SnapshotInfo
	var fetchedAt string
	err := db.QueryRowContext(context.Background(), `
		SELECT id, source, fetched_at, article_count
		FROM snapshots
		WHERE source = ?
		ORDER BY id DESC
		LIMIT 1
	`, source).Scan(&info.ID, &info.Source, &fetchedAt, &info.ArticleCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	if t, ok := parseTimeString(fetchedAt); ok {
		info.FetchedAt = t
	}
	return &info, nil
}

// LatestSnapshot loads the newest stored snapshot of source, or nil if there is none.
func (db *DB) LatestSnapshot(source string) (*models.Snapshot, error) {
	info, err := db.LatestSnapshotInfo(source)
	if err != nil || info == nil {
		return nil, err
	}

	rows, err := db.QueryContext(context.Background(), `
		SELECT agency, published_at, title, url, category, extra
		FROM articles
		WHERE snapshot_id = ?
		ORDER BY position
	`, info.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make(models.Dataset, 0, info.ArticleCount)
	for rows.Next() {
		var a models.Article
		var publishedAt string
		var title, url, category, extra sql.NullString
		if err := rows.Scan(&a.Agency, &publishedAt, &title, &url, &category, &extra); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		t, ok := parseTimeString(publishedAt)
		if !ok {
			return nil, fmt.Errorf("invalid stored timestamp %q", publishedAt)
		}
		a.PublishedAt = t
		a.Title = title.String
		a.URL = url.String
		a.Category = category.String
		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &a.Extra); err != nil {
				return nil, fmt.Errorf("failed to decode article metadata: %w", err)
			}
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Source:    info.Source,
		FetchedAt: info.FetchedAt,
		Articles:  articles,
	}, nil
}
