package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a blank search query. Rejected before any
	// external call is made.
	ErrEmptyQuery = errors.New("search query cannot be empty")

	// ErrNoContent indicates a document produced zero extractable chunks.
	// This is a client-visible outcome, not a server failure.
	ErrNoContent = errors.New("no text content found in PDF")

	// ErrStoreUnavailable indicates the vector store rejected an operation.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrEmbeddingFailed indicates the embedding provider returned no
	// usable vector. Embeddings are load-bearing for every downstream
	// operation, so this is always a hard failure.
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)
