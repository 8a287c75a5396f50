// Package http provides HTTP-based implementations of scrapper.Fetcher and
// scrapper.SitemapService for retrieving pages, resources and sitemaps.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

// DefaultFetchTimeout is the default timeout for a single HTTP request.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "LibraryScrapper/1.0"

// Ensure Fetcher implements scrapper.Fetcher at compile time.
var _ scrapper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages and resources using plain HTTP requests.
// Each URL gets exactly one attempt; retry policy is the caller's concern.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Download retrieves the raw bytes from the given URL.
func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	return f.get(ctx, url)
}

// get performs a single GET request. The context is checked once before
// the request is issued; an in-flight request is aborted when the context
// is canceled because it is bound to the request.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, scrapper.Errorf(scrapper.ECANCELED, "fetch %s: %v", url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, scrapper.Errorf(scrapper.EINVALID, "invalid URL %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, scrapper.Errorf(scrapper.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, scrapper.Errorf(scrapper.ENOTFOUND, "HTTP 404 for %s", url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, scrapper.Errorf(scrapper.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, scrapper.Errorf(scrapper.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return body, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
