// Package pdf provides a PDF text extractor backed by ledongthuc/pdf.
// The library is treated as a black box producing raw per-page text.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.PDFExtractor = (*Extractor)(nil)

// Extractor extracts per-page plain text from PDF bytes.
type Extractor struct{}

// NewExtractor creates a new PDF extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPages returns the text of each page in order. A page the library
// cannot decode is returned as an empty string so page numbering stays
// aligned; the chunker skips blank pages anyway.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("Failed to extract text from page %d: %v", i, err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}
