package driving

import (
	"context"

	"github.com/docsift/docsift/internal/core/domain"
)

// IngestService turns an uploaded PDF into stored, searchable chunks.
type IngestService interface {
	// IngestPDF extracts, chunks, embeds and stores the document.
	//
	// A document with zero extractable chunks returns a failed
	// UploadResponse together with domain.ErrNoContent; callers should
	// treat that as a client-visible outcome, not a server error. Any
	// other non-nil error means the document may be partially persisted
	// (the bulk upsert gives no partial-success detail).
	IngestPDF(ctx context.Context, data []byte, fileName string) (*domain.UploadResponse, error)
}
