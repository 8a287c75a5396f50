package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlexDevFx/LibraryScrapper/crawl"
)

// Run executes the mirror command: wipe and recreate the output directory,
// arm the deadline, optionally gather sitemap seeds, and run the crawl.
func (c *MirrorCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	// Start from a clean output root every run; the on-disk tree is the
	// crawl's visited index, so leftovers would prune new visits.
	if err := os.RemoveAll(c.Out); err != nil {
		return fmt.Errorf("failed to clear output directory %q: %w", c.Out, err)
	}
	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", c.Out, err)
	}

	var seeds []string
	if c.Sitemap {
		urls, err := deps.Sitemaps.DiscoverURLs(ctx, c.URL)
		if err != nil {
			deps.Logger.Warn("sitemap discovery failed", "url", c.URL, "error", err)
		} else {
			seeds = urls
			deps.Logger.Info("sitemap seeds discovered", "count", len(seeds))
		}
	}

	defer deps.Crawler.Fetcher.Close()

	if !c.Quiet {
		deps.Crawler.Progress = func(event crawl.ProgressEvent) {
			switch event.Type {
			case crawl.ProgressSaved:
				fmt.Fprintf(deps.Stdout, "[%d] saved %s\n", event.Count, event.Path)
			case crawl.ProgressFailed:
				fmt.Fprintf(deps.Stdout, "[%d] failed %s: %s\n", event.Count, crawl.TruncateURL(event.URL, 80), event.Err)
			}
		}
	}

	result, err := deps.Crawler.Run(ctx, crawl.Job{
		RootURL:   c.URL,
		Seeds:     seeds,
		OutputDir: c.Out,
	})
	if err != nil {
		return fmt.Errorf("failed to mirror %s: %w", c.URL, err)
	}

	if ctx.Err() != nil {
		fmt.Fprintf(deps.Stdout, "Stopped early; files saved so far are kept in %s\n", c.Out)
	}
	fmt.Fprintf(deps.Stdout, "Done. Saved %d files (%s), %d failed.\n",
		result.Saved, crawl.FormatBytes(result.Bytes), result.Failed)

	return nil
}
