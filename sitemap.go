package scrapper

import "context"

// SitemapService discovers seed URLs from a site's sitemap.
type SitemapService interface {
	// DiscoverURLs fetches /sitemap.xml relative to baseURL and returns
	// the page URLs it lists. Sitemap indexes are resolved recursively.
	// Returns an empty slice (not nil) when the site has no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
