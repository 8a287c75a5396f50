// Package goquery provides DOM-based reference extraction using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

// followRule describes one (tag, attribute) pair that yields a followable
// reference.
type followRule struct {
	tag    string
	attr   string
	isPage bool
}

// followRules is the fixed, ordered rule table. A link element only
// matches when its rel attribute equals "stylesheet".
var followRules = []followRule{
	{tag: "a", attr: "href", isPage: true},
	{tag: "link", attr: "href"},
	{tag: "script", attr: "src"},
	{tag: "img", attr: "src"},
}

// Ensure Extractor implements scrapper.RefExtractor at compile time.
var _ scrapper.RefExtractor = (*Extractor)(nil)

// Extractor extracts followable references from HTML using the fixed
// rule table above.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractRefs parses the HTML and returns references in document order.
// The context is polled between elements and between rule checks; on
// cancellation the references discovered so far are returned without error,
// so a canceled extraction yields a shorter list rather than a failure.
func (e *Extractor) ExtractRefs(ctx context.Context, rawHTML string) ([]scrapper.ResourceRef, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, scrapper.Errorf(scrapper.EINVALID, "failed to parse HTML: %v", err)
	}

	var refs []scrapper.ResourceRef
	doc.Find("a, link, script, img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if ctx.Err() != nil {
			return false
		}
		for _, rule := range followRules {
			if ctx.Err() != nil {
				return false
			}
			if ref, ok := matchRule(sel.Nodes[0], rule); ok {
				refs = append(refs, ref)
			}
		}
		return true
	})

	return refs, nil
}

// MatchElement checks a single element node against the rule table and
// returns the reference it yields, if any. It is a pure function of the
// node and the fixed rule table.
func MatchElement(n *html.Node) (scrapper.ResourceRef, bool) {
	for _, rule := range followRules {
		if ref, ok := matchRule(n, rule); ok {
			return ref, true
		}
	}
	return scrapper.ResourceRef{}, false
}

// matchRule applies one rule to an element node.
func matchRule(n *html.Node, rule followRule) (scrapper.ResourceRef, bool) {
	if n == nil || n.Type != html.ElementNode {
		return scrapper.ResourceRef{}, false
	}
	if !strings.EqualFold(n.Data, rule.tag) {
		return scrapper.ResourceRef{}, false
	}
	if rule.tag == "link" && !strings.EqualFold(attrValue(n, "rel"), "stylesheet") {
		return scrapper.ResourceRef{}, false
	}

	val := strings.TrimSpace(attrValue(n, rule.attr))
	if val == "" || !isRelative(val) {
		return scrapper.ResourceRef{}, false
	}

	return scrapper.ResourceRef{
		Tag:    rule.tag,
		Attr:   rule.attr,
		Value:  val,
		IsPage: rule.isPage,
	}, true
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// isRelative reports whether ref has no scheme and no host component.
// Scheme-relative references ("//host/x") carry a host and are rejected.
func isRelative(ref string) bool {
	if strings.HasPrefix(ref, "//") {
		return false
	}
	if i := strings.Index(ref, ":"); i >= 0 {
		// A colon before any slash, query or fragment means a scheme
		// (http:, mailto:, javascript:, tel:).
		rest := ref[:i]
		if !strings.ContainsAny(rest, "/?#") {
			return false
		}
	}
	return true
}
