package scrapper

import "context"

// Fetcher retrieves pages and raw resources over the network.
type Fetcher interface {
	// Fetch performs a single GET for an HTML page and returns the body.
	// The context controls timeout and cancellation; it is checked before
	// the request is issued. No retries are attempted.
	// Returns ENOTFOUND for HTTP 404, EUNAVAILABLE for transport errors
	// and other non-2xx statuses.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Download performs a single GET and returns the raw body bytes
	// without any parsing. Error semantics match Fetch.
	Download(ctx context.Context, url string) ([]byte, error)

	// Close releases client resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
