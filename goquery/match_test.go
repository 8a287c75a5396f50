package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/AlexDevFx/LibraryScrapper/goquery"
)

// findElement returns the first element node with the given tag.
func findElement(t *testing.T, rawHTML, tag string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(rawHTML))
	require.NoError(t, err)

	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == tag {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	require.NotNil(t, found, "no <%s> element in %q", tag, rawHTML)
	return found
}

func TestMatchElement(t *testing.T) {
	t.Parallel()

	t.Run("anchor yields a page reference", func(t *testing.T) {
		t.Parallel()

		n := findElement(t, `<a href="/x">x</a>`, "a")
		ref, ok := goquery.MatchElement(n)

		require.True(t, ok)
		assert.True(t, ref.IsPage)
		assert.Equal(t, "/x", ref.Value)
	})

	t.Run("icon link yields nothing", func(t *testing.T) {
		t.Parallel()

		n := findElement(t, `<link rel="icon" href="a.ico">`, "link")
		_, ok := goquery.MatchElement(n)

		assert.False(t, ok)
	})

	t.Run("plain div yields nothing", func(t *testing.T) {
		t.Parallel()

		n := findElement(t, `<div>hello</div>`, "div")
		_, ok := goquery.MatchElement(n)

		assert.False(t, ok)
	})
}
