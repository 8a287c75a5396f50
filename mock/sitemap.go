package mock

import (
	"context"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

var _ scrapper.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of scrapper.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
