package mock

import (
	"context"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

var _ scrapper.ManifestService = (*ManifestService)(nil)

// ManifestService is a mock implementation of scrapper.ManifestService.
type ManifestService struct {
	CreateCrawlFn    func(ctx context.Context, crawl *scrapper.Crawl) error
	FinishCrawlFn    func(ctx context.Context, id string, saved, failed int) error
	FindCrawlsFn     func(ctx context.Context, limit, offset int) ([]*scrapper.Crawl, error)
	RecordFileFn     func(ctx context.Context, file *scrapper.SavedFile) error
	FindSavedFilesFn func(ctx context.Context, filter scrapper.SavedFileFilter) ([]*scrapper.SavedFile, error)
}

func (s *ManifestService) CreateCrawl(ctx context.Context, crawl *scrapper.Crawl) error {
	return s.CreateCrawlFn(ctx, crawl)
}

func (s *ManifestService) FinishCrawl(ctx context.Context, id string, saved, failed int) error {
	return s.FinishCrawlFn(ctx, id, saved, failed)
}

func (s *ManifestService) FindCrawls(ctx context.Context, limit, offset int) ([]*scrapper.Crawl, error) {
	return s.FindCrawlsFn(ctx, limit, offset)
}

func (s *ManifestService) RecordFile(ctx context.Context, file *scrapper.SavedFile) error {
	return s.RecordFileFn(ctx, file)
}

func (s *ManifestService) FindSavedFiles(ctx context.Context, filter scrapper.SavedFileFilter) ([]*scrapper.SavedFile, error) {
	return s.FindSavedFilesFn(ctx, filter)
}
