package driving

import (
	"context"

	"github.com/docsift/docsift/internal/core/domain"
)

// SearchService answers plain semantic search queries.
type SearchService interface {
	// Search validates the request, applies defaults and returns ranked
	// results. A blank query fails with domain.ErrEmptyQuery before any
	// external call.
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error)
}

// RagService answers questions with retrieval-augmented generation.
type RagService interface {
	// Ask retrieves relevant chunks and generates a grounded answer.
	// It never returns an error: all failures are folded into the
	// response's Success and ErrorMessage fields.
	Ask(ctx context.Context, req domain.RagSearchRequest) *domain.RagSearchResponse
}
