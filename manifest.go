package scrapper

import (
	"context"
	"time"
)

// File kinds recorded in the crawl manifest.
const (
	FileKindPage     = "page"
	FileKindResource = "resource"
)

// Crawl represents one mirroring run.
type Crawl struct {
	ID         string
	RootURL    string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time // zero until the run finishes
	Saved      int
	Failed     int
}

// Validate returns EINVALID if the crawl has missing or invalid fields.
func (c *Crawl) Validate() error {
	if c.RootURL == "" {
		return Errorf(EINVALID, "Crawl root URL is required.")
	}
	if c.OutputDir == "" {
		return Errorf(EINVALID, "Crawl output directory is required.")
	}
	return nil
}

// SavedFile represents one file written to disk during a crawl.
type SavedFile struct {
	ID          string
	CrawlID     string
	URL         string
	Path        string // local path relative to the output directory root
	Kind        string // FileKindPage or FileKindResource
	Size        int
	ContentHash string
	SavedAt     time.Time
}

// Validate returns EINVALID if the saved file has missing or invalid fields.
func (f *SavedFile) Validate() error {
	if f.CrawlID == "" {
		return Errorf(EINVALID, "SavedFile crawl ID is required.")
	}
	if f.URL == "" {
		return Errorf(EINVALID, "SavedFile URL is required.")
	}
	if f.Path == "" {
		return Errorf(EINVALID, "SavedFile path is required.")
	}
	if f.Kind != FileKindPage && f.Kind != FileKindResource {
		return Errorf(EINVALID, "SavedFile kind must be %q or %q.", FileKindPage, FileKindResource)
	}
	return nil
}

// SavedFileFilter selects saved files in FindSavedFiles.
type SavedFileFilter struct {
	CrawlID *string
	Kind    *string

	Limit  int
	Offset int
}

// ManifestService records crawl runs and the files they saved.
// The manifest is bookkeeping only: the crawler treats every manifest
// failure as observational and never lets it affect the crawl itself.
type ManifestService interface {
	// CreateCrawl registers a new crawl run and assigns its ID.
	CreateCrawl(ctx context.Context, crawl *Crawl) error

	// FinishCrawl stamps the end time and final counters on a crawl.
	// Returns ENOTFOUND if the crawl does not exist.
	FinishCrawl(ctx context.Context, id string, saved, failed int) error

	// FindCrawls returns recorded crawls, most recent first.
	FindCrawls(ctx context.Context, limit, offset int) ([]*Crawl, error)

	// RecordFile records one saved file and assigns its ID.
	RecordFile(ctx context.Context, file *SavedFile) error

	// FindSavedFiles returns saved files matching the filter.
	FindSavedFiles(ctx context.Context, filter SavedFileFilter) ([]*SavedFile, error)
}
