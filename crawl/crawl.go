// Package crawl provides the recursive mirroring orchestration.
// It coordinates fetching, persistence and reference extraction, and
// dispatches every discovered sub-page and resource as its own concurrent
// unit of work.
package crawl

import (
	"context"
	"encoding/hex"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

// Crawler orchestrates the recursive mirroring of a site.
type Crawler struct {
	Fetcher   scrapper.Fetcher
	Extractor scrapper.RefExtractor
	Store     scrapper.PageStore

	// Manifest, if set, records the run and every saved file. Manifest
	// failures are logged and never affect the crawl.
	Manifest scrapper.ManifestService

	// Logger receives per-branch failure and progress logs.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Concurrency bounds the number of simultaneous network operations.
	// Zero or negative means unbounded fan-out: every discovered link or
	// resource becomes an independently scheduled goroutine.
	Concurrency int

	// Progress, if set, is called once per successful save and once when
	// the run finishes.
	Progress ProgressFunc
}

// Job describes one mirroring run.
type Job struct {
	// RootURL is the page the crawl starts from. A failure to fetch it
	// aborts the whole run.
	RootURL string

	// Seeds are additional start pages (e.g. from a sitemap). Seed
	// failures are logged, not fatal.
	Seeds []string

	// OutputDir is the existing output root the mirrored tree is
	// written under.
	OutputDir string
}

// Result holds the outcome of a run.
type Result struct {
	Saved  int
	Failed int
	Bytes  int
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressSaved ProgressType = iota
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a run. Count is the monotonically
// increasing number of successfully saved files across the whole crawl.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Path  string
	Count int
	Err   error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// runState is the per-run shared state. Counters are atomic; completion
// order across branches is unspecified.
type runState struct {
	crawlID   string
	outputDir string
	saved     atomic.Int64
	failed    atomic.Int64
	bytes     atomic.Int64
	sem       *semaphore.Weighted
}

// Run mirrors the site rooted at job.RootURL into job.OutputDir and blocks
// until every spawned page visit and resource download has completed.
// Branch failures are isolated and only counted; the sole error that
// propagates is a failure to fetch the root page itself.
func (c *Crawler) Run(ctx context.Context, job Job) (*Result, error) {
	if _, err := url.Parse(job.RootURL); err != nil {
		return nil, scrapper.Errorf(scrapper.EINVALID, "invalid root URL %q: %v", job.RootURL, err)
	}

	st := &runState{
		outputDir: job.OutputDir,
	}
	if c.Concurrency > 0 {
		st.sem = semaphore.NewWeighted(int64(c.Concurrency))
	}

	if c.Manifest != nil {
		crawl := &scrapper.Crawl{
			RootURL:   job.RootURL,
			OutputDir: job.OutputDir,
			StartedAt: time.Now().UTC(),
		}
		if err := c.Manifest.CreateCrawl(ctx, crawl); err != nil {
			c.logger().Warn("manifest: create crawl failed", "error", err)
		} else {
			st.crawlID = crawl.ID
		}
	}

	rootErr := c.visit(ctx, st, job.RootURL, job.OutputDir, true)

	if rootErr == nil && len(job.Seeds) > 0 {
		var g errgroup.Group
		for _, seed := range job.Seeds {
			seed := seed
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				return c.visit(ctx, st, seed, job.OutputDir, false)
			})
		}
		_ = g.Wait()
	}

	result := &Result{
		Saved:  int(st.saved.Load()),
		Failed: int(st.failed.Load()),
		Bytes:  int(st.bytes.Load()),
	}

	if c.Manifest != nil && st.crawlID != "" {
		if err := c.Manifest.FinishCrawl(ctx, st.crawlID, result.Saved, result.Failed); err != nil {
			c.logger().Warn("manifest: finish crawl failed", "error", err)
		}
	}

	if rootErr != nil {
		return nil, rootErr
	}

	if c.Progress != nil {
		c.Progress(ProgressEvent{Type: ProgressFinished, Count: result.Saved})
	}

	return result, nil
}

// visit runs the state machine for one page: fetch, persist, extract,
// dispatch children, await. The visit only completes once every directly
// spawned child has completed, which recursively makes the whole crawl
// complete exactly when the root visit returns.
//
// Only the root visit returns its fetch error; every other failure is
// logged and terminates just this branch.
func (c *Crawler) visit(ctx context.Context, st *runState, pageURL, dir string, isRoot bool) error {
	html, err := c.fetchPage(ctx, st, pageURL)
	if err != nil {
		c.fail(st, pageURL, err)
		if isRoot {
			return err
		}
		return nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		c.fail(st, pageURL, scrapper.Errorf(scrapper.EINVALID, "invalid page URL %q: %v", pageURL, err))
		return nil
	}

	saved, err := c.Store.SavePage(ctx, dir, base.Path, []byte(html))
	if err != nil {
		c.fail(st, pageURL, err)
		return nil
	}
	if !saved {
		// Already visited: the subtree is pruned here. This is the
		// cycle guard that terminates crawls over cyclic link graphs.
		return nil
	}
	c.saved(ctx, st, pageURL, filepath.Join(dir, scrapper.PageFileName(base.Path)), scrapper.FileKindPage, []byte(html))

	refs, err := c.Extractor.ExtractRefs(ctx, html)
	if err != nil {
		c.logger().Warn("extract refs failed", "url", pageURL, "error", err)
		return nil
	}

	var g errgroup.Group
	for _, ref := range refs {
		if ctx.Err() != nil {
			// Stop dispatching; children already spawned are still
			// awaited below.
			break
		}

		rel, err := url.Parse(ref.Value)
		if err != nil {
			c.logger().Warn("skipping unparsable reference", "page", pageURL, "ref", ref.Value)
			continue
		}
		target := base.ResolveReference(rel).String()

		if ref.IsPage {
			childDir := filepath.Join(dir, filepath.FromSlash(path.Dir(rel.Path)))
			g.Go(func() error {
				return c.visit(ctx, st, target, childDir, false)
			})
		} else {
			dest := filepath.Join(dir, filepath.FromSlash(ref.Value))
			g.Go(func() error {
				c.download(ctx, st, target, dest)
				return nil
			})
		}
	}
	_ = g.Wait()

	return nil
}

// download fetches one resource and writes it to dest. Any failure is
// isolated to this unit.
func (c *Crawler) download(ctx context.Context, st *runState, resURL, dest string) {
	data, err := c.fetchBytes(ctx, st, resURL)
	if err != nil {
		c.fail(st, resURL, err)
		return
	}
	if err := c.Store.SaveResource(ctx, dest, data); err != nil {
		c.fail(st, resURL, err)
		return
	}
	c.saved(ctx, st, resURL, dest, scrapper.FileKindResource, data)
}

// fetchPage retrieves a page body, honoring the concurrency gate.
func (c *Crawler) fetchPage(ctx context.Context, st *runState, pageURL string) (string, error) {
	release, err := c.acquire(ctx, st)
	if err != nil {
		return "", err
	}
	defer release()
	return c.Fetcher.Fetch(ctx, pageURL)
}

// fetchBytes retrieves raw resource bytes, honoring the concurrency gate.
func (c *Crawler) fetchBytes(ctx context.Context, st *runState, resURL string) ([]byte, error) {
	release, err := c.acquire(ctx, st)
	if err != nil {
		return nil, err
	}
	defer release()
	return c.Fetcher.Download(ctx, resURL)
}

// acquire gates network operations in the bounded-concurrency variant.
// With no limit configured it is a no-op.
func (c *Crawler) acquire(ctx context.Context, st *runState) (func(), error) {
	if st.sem == nil {
		return func() {}, nil
	}
	if err := st.sem.Acquire(ctx, 1); err != nil {
		return nil, scrapper.Errorf(scrapper.ECANCELED, "acquire worker: %v", err)
	}
	return func() { st.sem.Release(1) }, nil
}

// saved updates counters, fires the progress callback and records the
// file in the manifest.
func (c *Crawler) saved(ctx context.Context, st *runState, srcURL, fullPath, kind string, content []byte) {
	count := st.saved.Add(1)
	st.bytes.Add(int64(len(content)))

	if c.Progress != nil {
		c.Progress(ProgressEvent{
			Type:  ProgressSaved,
			URL:   srcURL,
			Path:  fullPath,
			Count: int(count),
		})
	}

	if c.Manifest == nil || st.crawlID == "" {
		return
	}
	relPath, err := filepath.Rel(st.outputDir, fullPath)
	if err != nil {
		relPath = fullPath
	}
	file := &scrapper.SavedFile{
		CrawlID:     st.crawlID,
		URL:         srcURL,
		Path:        filepath.ToSlash(relPath),
		Kind:        kind,
		Size:        len(content),
		ContentHash: hashContent(content),
	}
	if err := c.Manifest.RecordFile(ctx, file); err != nil {
		c.logger().Warn("manifest: record file failed", "url", srcURL, "error", err)
	}
}

// fail updates the failure counter, logs and fires the progress callback.
func (c *Crawler) fail(st *runState, srcURL string, err error) {
	st.failed.Add(1)
	c.logger().Warn("branch failed", "url", srcURL, "code", scrapper.ErrorCode(err), "error", err)
	if c.Progress != nil {
		c.Progress(ProgressEvent{
			Type:  ProgressFailed,
			URL:   srcURL,
			Count: int(st.saved.Load()),
			Err:   err,
		})
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content []byte) string {
	h := xxhash.Sum64(content)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
