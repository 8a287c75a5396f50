package mock

import (
	"context"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

var _ scrapper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scrapper.Fetcher.
type Fetcher struct {
	FetchFn    func(ctx context.Context, url string) (string, error)
	DownloadFn func(ctx context.Context, url string) ([]byte, error)
	CloseFn    func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	return f.DownloadFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
