package driven

import (
	"context"

	"github.com/docsift/docsift/internal/core/domain"
)

// DocumentRegistry records which files have been ingested. The vector
// store remains the source of truth for retrieval; the registry only
// serves listing and reporting.
type DocumentRegistry interface {
	// Record stores one ingest run.
	Record(ctx context.Context, doc domain.IngestedDocument) error

	// List returns all recorded ingests, most recent first.
	List(ctx context.Context) ([]domain.IngestedDocument, error)

	// Close releases resources.
	Close() error
}
