// Package fs provides filesystem-backed persistence for mirrored pages
// and resources.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

// Ensure Store implements scrapper.PageStore at compile time.
var _ scrapper.PageStore = (*Store)(nil)

// Store persists pages and resources under the filesystem. The on-disk
// tree is the crawl's durable visited index; Store additionally keeps an
// in-memory set of claimed page paths so that two concurrent visits
// discovering the same page cannot both pass the existence check and
// write. Resources are written unconditionally.
type Store struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{claimed: make(map[string]struct{})}
}

// SavePage writes a page's content into dir under a name derived from
// urlPath. It returns false without writing when the same path was already
// claimed or a file already exists there; callers treat false as "already
// visited" and stop descending. Distinct URLs that collide on the same
// path are deliberately treated as already visited.
func (s *Store) SavePage(ctx context.Context, dir, urlPath string, content []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, scrapper.Errorf(scrapper.ECANCELED, "save page: %v", err)
	}

	full := filepath.Clean(filepath.Join(dir, scrapper.PageFileName(urlPath)))

	if !s.claim(full) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		s.release(full)
		return false, scrapper.Errorf(scrapper.EINTERNAL, "create directory for %s: %v", full, err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		s.release(full)
		return false, scrapper.Errorf(scrapper.EINTERNAL, "write page %s: %v", full, err)
	}
	return true, nil
}

// SaveResource writes resource bytes to path unconditionally, creating
// intermediate directories as needed. A resource referenced from two
// different pages is written twice; the last write wins.
func (s *Store) SaveResource(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return scrapper.Errorf(scrapper.ECANCELED, "save resource: %v", err)
	}

	full := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return scrapper.Errorf(scrapper.EINTERNAL, "create directory for %s: %v", full, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return scrapper.Errorf(scrapper.EINTERNAL, "write resource %s: %v", full, err)
	}
	return nil
}

// claim marks a page path as taken. The check-and-insert is atomic under
// the mutex, closing the race two concurrent visits to the same path would
// otherwise have between the existence check and the write. A path whose
// file already exists on disk (e.g. from an earlier run) is also claimed.
func (s *Store) claim(full string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := claimKey(full)
	if _, ok := s.claimed[key]; ok {
		return false
	}
	if _, err := os.Stat(full); err == nil {
		s.claimed[key] = struct{}{}
		return false
	}
	s.claimed[key] = struct{}{}
	return true
}

// release undoes a claim after a failed write so a later visit may retry
// the path.
func (s *Store) release(full string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.claimed, claimKey(full))
}

// claimKey canonicalizes a path for the claimed set.
func claimKey(full string) string {
	return filepath.ToSlash(full)
}
