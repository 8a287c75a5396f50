package main

import (
	"fmt"
	"text/tabwriter"
	"time"
)

// Run executes the crawls command, listing recorded runs most recent first.
func (c *CrawlsCmd) Run(deps *Dependencies) error {
	crawls, err := deps.Manifest.FindCrawls(deps.Ctx, c.Limit, 0)
	if err != nil {
		return fmt.Errorf("failed to list crawls: %w", err)
	}

	if len(crawls) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawls recorded.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tROOT URL\tSAVED\tFAILED")
	for _, cr := range crawls {
		started := cr.StartedAt.Local().Format(time.DateTime)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", cr.ID, started, cr.RootURL, cr.Saved, cr.Failed)
	}
	return w.Flush()
}
