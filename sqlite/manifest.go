package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

// Compile-time interface verification.
var _ scrapper.ManifestService = (*ManifestService)(nil)

// ManifestService implements scrapper.ManifestService using SQLite.
type ManifestService struct {
	db *DB
}

// NewManifestService creates a new ManifestService.
func NewManifestService(db *DB) *ManifestService {
	return &ManifestService{db: db}
}

// CreateCrawl registers a new crawl run and assigns its ID.
func (s *ManifestService) CreateCrawl(ctx context.Context, crawl *scrapper.Crawl) error {
	if err := crawl.Validate(); err != nil {
		return err
	}

	crawl.ID = uuid.New().String()
	if crawl.StartedAt.IsZero() {
		crawl.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawls (id, root_url, output_dir, started_at)
		VALUES (?, ?, ?, ?)
	`, crawl.ID, crawl.RootURL, crawl.OutputDir, crawl.StartedAt.Format(time.RFC3339))

	return err
}

// FinishCrawl stamps the end time and final counters on a crawl.
func (s *ManifestService) FinishCrawl(ctx context.Context, id string, saved, failed int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE crawls SET finished_at = ?, saved = ?, failed = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), saved, failed, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return scrapper.Errorf(scrapper.ENOTFOUND, "crawl not found")
	}
	return nil
}

// FindCrawls returns recorded crawls, most recent first.
func (s *ManifestService) FindCrawls(ctx context.Context, limit, offset int) ([]*scrapper.Crawl, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, root_url, output_dir, started_at, finished_at, saved, failed
		FROM crawls
		ORDER BY started_at DESC
	`)
	appendPagination(&query, &args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crawls := []*scrapper.Crawl{}
	for rows.Next() {
		var c scrapper.Crawl
		var startedAt, finishedAt string

		if err := rows.Scan(&c.ID, &c.RootURL, &c.OutputDir, &startedAt, &finishedAt, &c.Saved, &c.Failed); err != nil {
			return nil, err
		}

		if c.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if finishedAt != "" {
			if c.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
				return nil, err
			}
		}

		crawls = append(crawls, &c)
	}
	return crawls, rows.Err()
}

// RecordFile records one saved file and assigns its ID.
func (s *ManifestService) RecordFile(ctx context.Context, file *scrapper.SavedFile) error {
	if err := file.Validate(); err != nil {
		return err
	}

	file.ID = uuid.New().String()
	if file.SavedAt.IsZero() {
		file.SavedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_files (id, crawl_id, url, path, kind, size, content_hash, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, file.ID, file.CrawlID, file.URL, file.Path, file.Kind, file.Size, file.ContentHash,
		file.SavedAt.Format(time.RFC3339))

	return err
}

// FindSavedFiles returns saved files matching the filter.
func (s *ManifestService) FindSavedFiles(ctx context.Context, filter scrapper.SavedFileFilter) ([]*scrapper.SavedFile, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, crawl_id, url, path, kind, size, content_hash, saved_at FROM saved_files WHERE 1=1")

	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, *filter.Kind)
	}

	query.WriteString(" ORDER BY saved_at ASC, path ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []*scrapper.SavedFile{}
	for rows.Next() {
		var f scrapper.SavedFile
		var savedAt string

		if err := rows.Scan(&f.ID, &f.CrawlID, &f.URL, &f.Path, &f.Kind, &f.Size, &f.ContentHash, &savedAt); err != nil {
			return nil, err
		}
		if f.SavedAt, err = parseRFC3339(savedAt, "saved_at"); err != nil {
			return nil, err
		}

		files = append(files, &f)
	}
	return files, rows.Err()
}

// FindCrawlByID retrieves a crawl by ID.
// Returns ENOTFOUND if the crawl does not exist.
func (s *ManifestService) FindCrawlByID(ctx context.Context, id string) (*scrapper.Crawl, error) {
	var c scrapper.Crawl
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, root_url, output_dir, started_at, finished_at, saved, failed
		FROM crawls
		WHERE id = ?
	`, id).Scan(&c.ID, &c.RootURL, &c.OutputDir, &startedAt, &finishedAt, &c.Saved, &c.Failed)

	if err == sql.ErrNoRows {
		return nil, scrapper.Errorf(scrapper.ENOTFOUND, "crawl not found")
	}
	if err != nil {
		return nil, err
	}

	if c.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if c.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
