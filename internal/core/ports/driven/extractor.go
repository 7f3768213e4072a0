package driven

import "context"

// PDFExtractor extracts raw per-page text from a PDF document.
// The extraction library is a black box behind this port.
type PDFExtractor interface {
	// ExtractPages returns the text of each page in order. Index 0 holds
	// page 1. Pages that yield no text are returned as empty strings so
	// page numbering stays aligned with the source document.
	ExtractPages(ctx context.Context, data []byte) ([]string, error)
}
