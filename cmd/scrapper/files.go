package main

import (
	"fmt"
	"text/tabwriter"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

// Run executes the files command, listing the files saved by one crawl.
func (c *FilesCmd) Run(deps *Dependencies) error {
	crawlID := c.Crawl
	if crawlID == "" {
		crawls, err := deps.Manifest.FindCrawls(deps.Ctx, 1, 0)
		if err != nil {
			return fmt.Errorf("failed to find latest crawl: %w", err)
		}
		if len(crawls) == 0 {
			fmt.Fprintln(deps.Stdout, "No crawls recorded.")
			return nil
		}
		crawlID = crawls[0].ID
	}

	filter := scrapper.SavedFileFilter{
		CrawlID: &crawlID,
		Limit:   c.Limit,
	}
	if c.Kind != "" {
		if c.Kind != scrapper.FileKindPage && c.Kind != scrapper.FileKindResource {
			return fmt.Errorf("invalid kind %q: must be %q or %q", c.Kind, scrapper.FileKindPage, scrapper.FileKindResource)
		}
		filter.Kind = &c.Kind
	}

	files, err := deps.Manifest.FindSavedFiles(deps.Ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintln(deps.Stdout, "No files recorded for this crawl.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tPATH\tSIZE\tURL")
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", f.Kind, f.Path, f.Size, f.URL)
	}
	return w.Flush()
}
