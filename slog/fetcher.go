// Package slog provides logging decorators for scrapper services.
package slog

import (
	"context"
	"log/slog"
	"time"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

// Ensure LoggingFetcher implements scrapper.Fetcher.
var _ scrapper.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging of every request.
type LoggingFetcher struct {
	next   scrapper.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next scrapper.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs URL, outcome and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	f.log("fetch page", url, len(html), begin, err)
	return html, err
}

// Download delegates to the wrapped fetcher and logs URL, outcome and duration.
func (f *LoggingFetcher) Download(ctx context.Context, url string) ([]byte, error) {
	begin := time.Now()
	data, err := f.next.Download(ctx, url)
	f.log("download resource", url, len(data), begin, err)
	return data, err
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func (f *LoggingFetcher) log(op, url string, size int, begin time.Time, err error) {
	if err != nil {
		f.logger.Debug(op,
			"url", url,
			"code", scrapper.ErrorCode(err),
			"duration", time.Since(begin),
			"error", err,
		)
		return
	}
	f.logger.Debug(op,
		"url", url,
		"bytes", size,
		"duration", time.Since(begin),
	)
}
