package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMain returns a Main with the manifest in a temp location.
func newMain(t *testing.T) *Main {
	t.Helper()

	m := &Main{DBPath: filepath.Join(t.TempDir(), "scrapper.db")}
	t.Cleanup(func() {
		require.NoError(t, m.Close())
	})
	return m
}

func runCLI(t *testing.T, m *Main, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestMain_Run(t *testing.T) {
	t.Run("no arguments is an error", func(t *testing.T) {
		_, err := runCLI(t, newMain(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("unknown command is an error", func(t *testing.T) {
		_, err := runCLI(t, newMain(t), "frobnicate")
		require.Error(t, err)
	})

	t.Run("mirror requires a URL argument", func(t *testing.T) {
		_, err := runCLI(t, newMain(t), "mirror")
		require.Error(t, err)
	})
}

func TestMirrorCommand(t *testing.T) {
	pages := map[string]string{
		"/": `<html><head>
			<link rel="stylesheet" href="style.css">
		</head><body>
			<a href="about.html">About</a>
		</body></html>`,
		"/about.html": `<html><body>About.</body></html>`,
		"/style.css":  `body {}`,
	}
	newServer := func() *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, ok := pages[r.URL.Path]
			if !ok {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(body))
		}))
	}

	t.Run("mirrors a site and reports the summary", func(t *testing.T) {
		srv := newServer()
		defer srv.Close()

		out := filepath.Join(t.TempDir(), "mirror")
		stdout, err := runCLI(t, newMain(t), "mirror", srv.URL+"/", "-o", out)

		require.NoError(t, err)
		assert.Contains(t, stdout, "Done. Saved 3 files")
		assert.FileExists(t, filepath.Join(out, "index.html"))
		assert.FileExists(t, filepath.Join(out, "about.html"))
		assert.FileExists(t, filepath.Join(out, "style.css"))
	})

	t.Run("quiet suppresses per-file progress", func(t *testing.T) {
		srv := newServer()
		defer srv.Close()

		out := filepath.Join(t.TempDir(), "mirror")
		stdout, err := runCLI(t, newMain(t), "mirror", srv.URL+"/", "-o", out, "-q")

		require.NoError(t, err)
		assert.NotContains(t, stdout, "saved "+filepath.Join(out, "index.html"))
		assert.Contains(t, stdout, "Done.")
	})

	t.Run("unreachable root fails the run", func(t *testing.T) {
		srv := newServer()
		srv.Close()

		out := filepath.Join(t.TempDir(), "mirror")
		_, err := runCLI(t, newMain(t), "mirror", srv.URL+"/", "-o", out)
		require.Error(t, err)
	})
}

func TestListingCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>home</body></html>`))
	}))
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "scrapper.db")
	mirror := &Main{DBPath: dbPath}
	out := filepath.Join(t.TempDir(), "mirror")
	_, err := runCLI(t, mirror, "mirror", srv.URL+"/", "-o", out, "-q")
	require.NoError(t, err)
	require.NoError(t, mirror.Close())

	t.Run("crawls lists the recorded run", func(t *testing.T) {
		m := &Main{DBPath: dbPath}
		defer m.Close()

		stdout, err := runCLI(t, m, "crawls")
		require.NoError(t, err)
		assert.Contains(t, stdout, srv.URL+"/")
	})

	t.Run("files lists the saved files of the most recent crawl", func(t *testing.T) {
		m := &Main{DBPath: dbPath}
		defer m.Close()

		stdout, err := runCLI(t, m, "files")
		require.NoError(t, err)
		assert.Contains(t, stdout, "index.html")
	})

	t.Run("files rejects an unknown kind", func(t *testing.T) {
		m := &Main{DBPath: dbPath}
		defer m.Close()

		_, err := runCLI(t, m, "files", "--kind", "video")
		require.Error(t, err)
	})
}
