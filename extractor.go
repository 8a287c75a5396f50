package scrapper

import "context"

// ResourceRef is a followable reference extracted from a page element.
// Only relative references (no scheme or host component) are ever produced;
// absolute URLs are skipped at extraction time so the crawl can never leave
// the root's host implicitly.
type ResourceRef struct {
	// Tag is the lower-cased element name the reference came from.
	Tag string

	// Attr is the attribute the value was read from ("href" or "src").
	Attr string

	// Value is the raw attribute value, always a relative URL.
	Value string

	// IsPage is true iff the reference came from an anchor element and
	// should be recursed into as an HTML page rather than downloaded
	// verbatim.
	IsPage bool
}

// RefExtractor extracts followable references from HTML.
type RefExtractor interface {
	// ExtractRefs parses the HTML and returns references in document
	// order. The context is polled between elements and between rule
	// checks; on cancellation the references discovered so far are
	// returned without error.
	// Returns EINVALID if the HTML cannot be parsed.
	ExtractRefs(ctx context.Context, html string) ([]ResourceRef, error)
}
