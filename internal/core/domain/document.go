package domain

import "time"

// DocumentChunk is the smallest retrievable unit of an ingested document.
// Chunks are created per page, given an embedding just before storage and
// are immutable once persisted.
type DocumentChunk struct {
	// ID is the store-assigned point identifier, empty until stored.
	ID string

	// Content is the chunk text. Non-empty, bounded by the chunker's
	// maximum chunk size (soft bound, see chunker.Split).
	Content string

	// FileName is the name of the source PDF.
	FileName string

	// PageNumber is the 1-indexed page this chunk came from.
	PageNumber int

	// ChunkIndex is the 0-based position within the page's chunk list.
	ChunkIndex int

	// CreatedAt is the ingestion timestamp.
	CreatedAt time.Time

	// Embedding is the vector representation, populated just before
	// storage. Nil until then.
	Embedding []float32
}

// IngestedDocument is a registry record of one processed upload.
type IngestedDocument struct {
	// ID is a generated identifier for the ingest run.
	ID string

	// FileName is the name of the uploaded PDF.
	FileName string

	// Pages is the number of pages the extractor reported.
	Pages int

	// Chunks is the number of chunks stored for this file.
	Chunks int

	// IngestedAt is when ingestion completed.
	IngestedAt time.Time
}

// UploadResponse reports the outcome of one document ingestion.
type UploadResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ChunksProcessed int    `json:"chunksProcessed"`
}
