package crawl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlexDevFx/LibraryScrapper/crawl"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int
		want  string
	}{
		{bytes: 0, want: "0 B"},
		{bytes: 512, want: "512 B"},
		{bytes: 1024, want: "1.0 KB"},
		{bytes: 1536, want: "1.5 KB"},
		{bytes: 2 * 1024 * 1024, want: "2.0 MB"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crawl.FormatBytes(tt.bytes))
		})
	}
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://x/a", crawl.TruncateURL("http://x/a", 20))
	assert.Equal(t, "...e.com/books/page2.html", crawl.TruncateURL("http://example.com/books/page2.html", 25))
	assert.Equal(t, "", crawl.TruncateURL("http://x/a", 0))
	assert.Equal(t, "htt", crawl.TruncateURL("http://x/a", 3))
}
