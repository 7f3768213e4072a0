// Package memory provides an in-process vector store for tests and
// development. It does exact cosine scoring over a slice; it is a stand-in
// for Qdrant, not an ANN index.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// storedPoint is one persisted (vector, payload) pair.
type storedPoint struct {
	id         uint64
	vector     []float32
	content    string
	fileName   string
	pageNumber int
	chunkIndex int
}

// Store is an in-memory implementation of driven.VectorStore.
type Store struct {
	mu       sync.RWMutex
	embedder driven.EmbeddingService
	points   []storedPoint
	nextID   uint64
}

// NewStore creates a new in-memory vector store.
func NewStore(embedder driven.EmbeddingService) *Store {
	return &Store{embedder: embedder, nextID: 1}
}

// EnsureCollection is a no-op: the backing slice always exists.
func (s *Store) EnsureCollection(_ context.Context) error {
	return nil
}

// Store embeds chunks lacking an embedding and appends the batch.
func (s *Store) Store(ctx context.Context, chunks []domain.DocumentChunk) error {
	prepared := make([]storedPoint, 0, len(chunks))
	for i := range chunks {
		chunk := &chunks[i]
		if chunk.Embedding == nil {
			embedding, err := s.embedder.Embed(ctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("embed chunk %d of %s: %w", chunk.ChunkIndex, chunk.FileName, err)
			}
			chunk.Embedding = embedding
		}
		prepared = append(prepared, storedPoint{
			vector:     chunk.Embedding,
			content:    chunk.Content,
			fileName:   chunk.FileName,
			pageNumber: chunk.PageNumber,
			chunkIndex: chunk.ChunkIndex,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range prepared {
		prepared[i].id = s.nextID
		s.nextID++
	}
	s.points = append(s.points, prepared...)
	return nil
}

// Count returns the number of stored points.
func (s *Store) Count(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.points)), nil
}

// Search embeds the query and scores every stored point by cosine
// similarity, returning up to limit results at or above threshold.
func (s *Store) Search(ctx context.Context, query string, limit int, threshold float32) ([]domain.SearchResult, error) {
	s.mu.RLock()
	empty := len(s.points) == 0
	s.mu.RUnlock()
	if empty {
		return []domain.SearchResult{}, nil
	}

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.SearchResult, 0, len(s.points))
	for _, p := range s.points {
		score := cosineSimilarity(queryVector, p.vector)
		if score < threshold {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:         strconv.FormatUint(p.id, 10),
			Content:    p.content,
			FileName:   p.fileName,
			PageNumber: p.pageNumber,
			Score:      score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// cosineSimilarity returns the cosine of the angle between a and b,
// 0 when either vector is zero-length or dimensions mismatch.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
