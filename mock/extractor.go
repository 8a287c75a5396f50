package mock

import (
	"context"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

var _ scrapper.RefExtractor = (*RefExtractor)(nil)

// RefExtractor is a mock implementation of scrapper.RefExtractor.
type RefExtractor struct {
	ExtractRefsFn func(ctx context.Context, html string) ([]scrapper.ResourceRef, error)
}

func (e *RefExtractor) ExtractRefs(ctx context.Context, html string) ([]scrapper.ResourceRef, error) {
	return e.ExtractRefsFn(ctx, html)
}
