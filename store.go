package scrapper

import (
	"context"
	"path"
)

// PageFileName derives the file name for a page from its URL path:
// the last path segment, or "index.html" when the path is empty.
func PageFileName(urlPath string) string {
	name := path.Base(urlPath)
	if name == "/" || name == "." || name == "" {
		return "index.html"
	}
	return name
}

// PageStore persists fetched pages and resources under an output root.
// The on-disk tree doubles as the crawl's visited index: a page path that
// was already saved is never written again.
type PageStore interface {
	// SavePage writes a page's content into dir. The file name is derived
	// from the last segment of urlPath, or "index.html" when the path is
	// empty. Returns false without writing if the same file was already
	// saved; callers must treat false as "already visited" and stop
	// descending.
	SavePage(ctx context.Context, dir, urlPath string, content []byte) (saved bool, err error)

	// SaveResource writes raw resource bytes to path unconditionally,
	// creating intermediate directories as needed. Resources are not
	// deduplicated; a shared resource reached from two pages is written
	// twice and the last write wins.
	SaveResource(ctx context.Context, path string, data []byte) error
}
