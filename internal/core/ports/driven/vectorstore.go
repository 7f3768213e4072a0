package driven

import (
	"context"

	"github.com/docsift/docsift/internal/core/domain"
)

// VectorStore persists document chunks as (vector, payload) points in a
// named collection and answers nearest-neighbour queries.
//
// Implementations are process-wide singletons and must be safe for
// concurrent use by multiple in-flight requests.
type VectorStore interface {
	// EnsureCollection idempotently creates the collection with the
	// embedding dimensionality and cosine distance. Must be called once
	// at startup before any Store or Search call; failure here is fatal.
	EnsureCollection(ctx context.Context) error

	// Store embeds any chunk that does not yet carry an embedding and
	// upserts the whole batch in one call. The upsert is all-or-nothing
	// from the caller's perspective: on error the caller cannot tell
	// which subset, if any, was persisted.
	Store(ctx context.Context, chunks []domain.DocumentChunk) error

	// Count returns the number of stored points.
	Count(ctx context.Context) (uint64, error)

	// Search embeds the query and returns up to limit results scoring at
	// or above threshold, best first. An empty collection returns no
	// results without issuing a remote nearest-neighbour query.
	Search(ctx context.Context, query string, limit int, threshold float32) ([]domain.SearchResult, error)

	// Close releases resources.
	Close() error
}
