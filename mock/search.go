package mock

import (
	"context"

	"github.com/fwojciec/gendocsets"
)

var _ gendocsets.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of gendocsets.SearchService.
type SearchService struct {
	SearchFn  func(ctx context.Context, query string) ([]gendocsets.SearchResult, error)
	RelatedFn func(ctx context.Context, pagePath string) ([]gendocsets.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string) ([]gendocsets.SearchResult, error) {
	return s.SearchFn(ctx, query)
}

func (s *SearchService) Related(ctx context.Context, pagePath string) ([]gendocsets.SearchResult, error) {
	return s.RelatedFn(ctx, pagePath)
}
