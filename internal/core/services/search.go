package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/core/ports/driving"
	"github.com/docsift/docsift/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers plain semantic search queries against the vector
// store.
type SearchService struct {
	store driven.VectorStore
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.VectorStore) *SearchService {
	return &SearchService{store: store}
}

// Search validates the request, applies defaults and queries the store.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	req.ApplyDefaults()

	logger.Section("Search")
	logger.Debug("Query: %q, limit: %d, threshold: %.2f", req.Query, req.Limit, req.Threshold)

	results, err := s.store.Search(ctx, req.Query, req.Limit, req.Threshold)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Debug("Found %d results", len(results))
	return results, nil
}
