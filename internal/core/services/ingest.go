package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docsift/docsift/internal/chunker"
	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/core/ports/driving"
	"github.com/docsift/docsift/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestService = (*IngestionService)(nil)

// IngestionService drives the chunking pipeline: extract per-page text,
// chunk it, then embed and store the whole batch.
type IngestionService struct {
	extractor    driven.PDFExtractor
	store        driven.VectorStore
	registry     driven.DocumentRegistry
	maxChunkSize int
}

// NewIngestionService creates a new ingestion service. The registry is
// optional (can be nil); extractor and store are required.
func NewIngestionService(
	extractor driven.PDFExtractor,
	store driven.VectorStore,
	registry driven.DocumentRegistry,
	maxChunkSize int,
) *IngestionService {
	if maxChunkSize <= 0 {
		maxChunkSize = chunker.DefaultMaxChunkSize
	}
	return &IngestionService{
		extractor:    extractor,
		store:        store,
		registry:     registry,
		maxChunkSize: maxChunkSize,
	}
}

// IngestPDF extracts, chunks, embeds and stores one document.
func (s *IngestionService) IngestPDF(ctx context.Context, data []byte, fileName string) (*domain.UploadResponse, error) {
	if len(data) == 0 {
		return &domain.UploadResponse{
			Success: false,
			Message: "no file provided",
		}, domain.ErrInvalidInput
	}

	logger.Section("Ingestion")
	logger.Info("Processing PDF upload: %s (%d bytes)", fileName, len(data))

	pages, err := s.extractor.ExtractPages(ctx, data)
	if err != nil {
		return &domain.UploadResponse{
			Success: false,
			Message: "failed to extract text from PDF",
		}, fmt.Errorf("extract %s: %w", fileName, err)
	}
	logger.Debug("Extracted %d pages", len(pages))

	chunks := chunker.ChunkPages(pages, fileName, s.maxChunkSize)
	if len(chunks) == 0 {
		logger.Warn("No extractable text in %s", fileName)
		return &domain.UploadResponse{
			Success: false,
			Message: "no text content found in PDF",
		}, domain.ErrNoContent
	}
	logger.Debug("Produced %d chunks", len(chunks))

	if err := s.store.Store(ctx, chunks); err != nil {
		return &domain.UploadResponse{
			Success: false,
			Message: "failed to store document in vector database",
		}, fmt.Errorf("store %s: %w", fileName, err)
	}

	s.record(ctx, fileName, len(pages), len(chunks))

	return &domain.UploadResponse{
		Success:         true,
		Message:         fmt.Sprintf("Successfully processed %d text chunks from %s", len(chunks), fileName),
		ChunksProcessed: len(chunks),
	}, nil
}

// record writes the ingest run to the registry. Registry failures are
// logged, never surfaced: the vector store is the source of truth.
func (s *IngestionService) record(ctx context.Context, fileName string, pages, chunks int) {
	if s.registry == nil {
		return
	}
	err := s.registry.Record(ctx, domain.IngestedDocument{
		ID:         uuid.New().String(),
		FileName:   fileName,
		Pages:      pages,
		Chunks:     chunks,
		IngestedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("Failed to record ingest of %s: %v", fileName, err)
	}
}
