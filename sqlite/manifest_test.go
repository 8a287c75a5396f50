package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
	"github.com/AlexDevFx/LibraryScrapper/sqlite"
)

// MustOpenDB opens an in-memory database for testing.
func MustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func mustCreateCrawl(t *testing.T, s *sqlite.ManifestService, startedAt time.Time) *scrapper.Crawl {
	t.Helper()

	c := &scrapper.Crawl{
		RootURL:   "http://example.com/",
		OutputDir: "/tmp/mirror",
		StartedAt: startedAt,
	}
	require.NoError(t, s.CreateCrawl(context.Background(), c))
	return c
}

func TestManifestService_CreateCrawl(t *testing.T) {
	t.Parallel()

	t.Run("assigns an ID and persists", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewManifestService(MustOpenDB(t))
		c := mustCreateCrawl(t, s, time.Now().UTC())
		require.NotEmpty(t, c.ID)

		got, err := s.FindCrawlByID(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.RootURL, got.RootURL)
		assert.Equal(t, c.OutputDir, got.OutputDir)
		assert.True(t, got.FinishedAt.IsZero())
	})

	t.Run("rejects a crawl without a root URL", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewManifestService(MustOpenDB(t))
		err := s.CreateCrawl(context.Background(), &scrapper.Crawl{OutputDir: "/tmp/mirror"})
		require.Error(t, err)
		assert.Equal(t, scrapper.EINVALID, scrapper.ErrorCode(err))
	})
}

func TestManifestService_FinishCrawl(t *testing.T) {
	t.Parallel()

	t.Run("stamps end time and counters", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewManifestService(MustOpenDB(t))
		c := mustCreateCrawl(t, s, time.Now().UTC())

		require.NoError(t, s.FinishCrawl(context.Background(), c.ID, 12, 3))

		got, err := s.FindCrawlByID(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, got.Saved)
		assert.Equal(t, 3, got.Failed)
		assert.False(t, got.FinishedAt.IsZero())
	})

	t.Run("unknown crawl returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewManifestService(MustOpenDB(t))
		err := s.FinishCrawl(context.Background(), "no-such-id", 0, 0)
		require.Error(t, err)
		assert.Equal(t, scrapper.ENOTFOUND, scrapper.ErrorCode(err))
	})
}

func TestManifestService_FindCrawls(t *testing.T) {
	t.Parallel()

	s := sqlite.NewManifestService(MustOpenDB(t))
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	oldest := mustCreateCrawl(t, s, base)
	middle := mustCreateCrawl(t, s, base.Add(time.Hour))
	newest := mustCreateCrawl(t, s, base.Add(2*time.Hour))

	t.Run("most recent first", func(t *testing.T) {
		crawls, err := s.FindCrawls(context.Background(), 0, 0)
		require.NoError(t, err)
		require.Len(t, crawls, 3)
		assert.Equal(t, newest.ID, crawls[0].ID)
		assert.Equal(t, middle.ID, crawls[1].ID)
		assert.Equal(t, oldest.ID, crawls[2].ID)
	})

	t.Run("limit and offset paginate", func(t *testing.T) {
		crawls, err := s.FindCrawls(context.Background(), 1, 1)
		require.NoError(t, err)
		require.Len(t, crawls, 1)
		assert.Equal(t, middle.ID, crawls[0].ID)
	})
}

func TestManifestService_RecordFile(t *testing.T) {
	t.Parallel()

	t.Run("assigns an ID and persists", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewManifestService(MustOpenDB(t))
		c := mustCreateCrawl(t, s, time.Now().UTC())

		f := &scrapper.SavedFile{
			CrawlID:     c.ID,
			URL:         "http://example.com/style.css",
			Path:        "css/style.css",
			Kind:        scrapper.FileKindResource,
			Size:        17,
			ContentHash: "deadbeefdeadbeef",
		}
		require.NoError(t, s.RecordFile(context.Background(), f))
		require.NotEmpty(t, f.ID)

		files, err := s.FindSavedFiles(context.Background(), scrapper.SavedFileFilter{CrawlID: &c.ID})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, f.URL, files[0].URL)
		assert.Equal(t, f.Path, files[0].Path)
		assert.Equal(t, f.Size, files[0].Size)
		assert.Equal(t, f.ContentHash, files[0].ContentHash)
	})

	t.Run("rejects a file without a crawl ID", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewManifestService(MustOpenDB(t))
		err := s.RecordFile(context.Background(), &scrapper.SavedFile{
			URL:  "http://example.com/",
			Path: "index.html",
			Kind: scrapper.FileKindPage,
		})
		require.Error(t, err)
		assert.Equal(t, scrapper.EINVALID, scrapper.ErrorCode(err))
	})
}

func TestManifestService_FindSavedFiles(t *testing.T) {
	t.Parallel()

	s := sqlite.NewManifestService(MustOpenDB(t))
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	first := mustCreateCrawl(t, s, base)
	second := mustCreateCrawl(t, s, base.Add(time.Hour))

	record := func(crawlID, path, kind string, savedAt time.Time) {
		t.Helper()
		require.NoError(t, s.RecordFile(ctx, &scrapper.SavedFile{
			CrawlID: crawlID,
			URL:     "http://example.com/" + path,
			Path:    path,
			Kind:    kind,
			SavedAt: savedAt,
		}))
	}

	record(first.ID, "index.html", scrapper.FileKindPage, base.Add(time.Second))
	record(first.ID, "css/style.css", scrapper.FileKindResource, base.Add(2*time.Second))
	record(second.ID, "index.html", scrapper.FileKindPage, base.Add(time.Hour))

	t.Run("filters by crawl", func(t *testing.T) {
		files, err := s.FindSavedFiles(ctx, scrapper.SavedFileFilter{CrawlID: &first.ID})
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "index.html", files[0].Path)
		assert.Equal(t, "css/style.css", files[1].Path)
	})

	t.Run("filters by kind", func(t *testing.T) {
		kind := scrapper.FileKindResource
		files, err := s.FindSavedFiles(ctx, scrapper.SavedFileFilter{Kind: &kind})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "css/style.css", files[0].Path)
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		files, err := s.FindSavedFiles(ctx, scrapper.SavedFileFilter{})
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("limit applies", func(t *testing.T) {
		files, err := s.FindSavedFiles(ctx, scrapper.SavedFileFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})
}

func TestManifestService_FindCrawlByID_NotFound(t *testing.T) {
	t.Parallel()

	s := sqlite.NewManifestService(MustOpenDB(t))
	_, err := s.FindCrawlByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, scrapper.ENOTFOUND, scrapper.ErrorCode(err))
}
