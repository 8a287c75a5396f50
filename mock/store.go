package mock

import (
	"context"

	scrapper "github.com/AlexDevFx/LibraryScrapper"
)

var _ scrapper.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of scrapper.PageStore.
type PageStore struct {
	SavePageFn     func(ctx context.Context, dir, urlPath string, content []byte) (bool, error)
	SaveResourceFn func(ctx context.Context, path string, data []byte) error
}

func (s *PageStore) SavePage(ctx context.Context, dir, urlPath string, content []byte) (bool, error) {
	return s.SavePageFn(ctx, dir, urlPath, content)
}

func (s *PageStore) SaveResource(ctx context.Context, path string, data []byte) error {
	return s.SaveResourceFn(ctx, path, data)
}
