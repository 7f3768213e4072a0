// Package qdrant provides a vector store adapter backed by the Qdrant
// REST API. It owns the collection lifecycle and composes the embedding
// service: chunks arrive as text and leave as (vector, payload) points.
package qdrant

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:6333"
	DefaultCollection = "pdf_documents"
	DefaultTimeout    = 30 * time.Second
)

// Config holds configuration for the Qdrant store.
type Config struct {
	// BaseURL is the Qdrant REST endpoint (default: http://localhost:6333).
	BaseURL string

	// APIKey is sent as the api-key header when non-empty.
	APIKey string

	// Collection is the collection name (default: pdf_documents).
	Collection string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Store is a REST client to Qdrant implementing driven.VectorStore.
// It is safe for concurrent use by multiple in-flight requests.
type Store struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	collection string
	embedder   driven.EmbeddingService
}

// NewStore creates a new Qdrant-backed vector store. The embedder supplies
// vectors for chunks and queries and fixes the collection dimensionality.
func NewStore(cfg Config, embedder driven.EmbeddingService) *Store {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		embedder:   embedder,
	}
}

// collectionInfo is the subset of GET /collections/{name} we consume.
type collectionInfo struct {
	Result struct {
		PointsCount uint64 `json:"points_count"`
	} `json:"result"`
}

// point is one upserted record.
type point struct {
	ID      uint64         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// searchResponse is the POST /points/search response shape.
type searchResponse struct {
	Result []struct {
		ID      json.Number    `json:"id"`
		Score   float32        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
}

// EnsureCollection idempotently creates the collection with the embedding
// dimensionality and cosine distance. Existence is checked first so
// re-running startup against a populated collection is harmless.
func (s *Store) EnsureCollection(ctx context.Context) error {
	status, err := s.do(ctx, http.MethodGet, s.collectionURL(), nil, nil)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", s.collection, err)
	}
	if status == http.StatusOK {
		logger.Debug("Collection already exists: %s", s.collection)
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("check collection %s: unexpected status %d", s.collection, status)
	}

	logger.Info("Creating collection: %s (%d dims, cosine)", s.collection, s.embedder.Dimensions())
	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.embedder.Dimensions(),
			"distance": "Cosine",
		},
	}
	status, err = s.do(ctx, http.MethodPut, s.collectionURL(), body, nil)
	if err != nil {
		return fmt.Errorf("create collection %s: %w", s.collection, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("create collection %s: status %d", s.collection, status)
	}
	return nil
}

// Store embeds each chunk that does not already carry an embedding and
// upserts the whole batch in one call. On error the caller cannot tell
// which subset, if any, was persisted.
func (s *Store) Store(ctx context.Context, chunks []domain.DocumentChunk) error {
	points := make([]point, 0, len(chunks))

	for i := range chunks {
		chunk := &chunks[i]
		if chunk.Embedding == nil {
			embedding, err := s.embedder.Embed(ctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("embed chunk %d of %s: %w", chunk.ChunkIndex, chunk.FileName, err)
			}
			chunk.Embedding = embedding
		}

		points = append(points, point{
			ID:     randomPointID(),
			Vector: chunk.Embedding,
			Payload: map[string]any{
				"content":    chunk.Content,
				"fileName":   chunk.FileName,
				"pageNumber": chunk.PageNumber,
				"chunkIndex": chunk.ChunkIndex,
				"createdAt":  chunk.CreatedAt.Format(time.RFC3339),
			},
		})
	}

	body := map[string]any{"points": points}
	status, err := s.do(ctx, http.MethodPut, s.collectionURL()+"/points?wait=true", body, nil)
	if err != nil {
		return fmt.Errorf("upsert %d points: %w", len(points), err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("upsert %d points: status %d", len(points), status)
	}

	logger.Info("Stored %d document chunks", len(points))
	return nil
}

// Count returns the number of stored points.
func (s *Store) Count(ctx context.Context) (uint64, error) {
	var info collectionInfo
	status, err := s.do(ctx, http.MethodGet, s.collectionURL(), nil, &info)
	if err != nil {
		return 0, fmt.Errorf("collection info: %w", err)
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("collection info: status %d", status)
	}
	return info.Result.PointsCount, nil
}

// Search embeds the query and runs a nearest-neighbour search.
//
// An empty collection short-circuits to no results without a remote
// nearest-neighbour query. The remote query uses a permissive score floor
// so every candidate stays visible in debug logs; the caller's threshold
// is then applied here before results are returned.
func (s *Store) Search(ctx context.Context, query string, limit int, threshold float32) ([]domain.SearchResult, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		logger.Warn("Collection %s is empty, no documents have been uploaded yet", s.collection)
		return []domain.SearchResult{}, nil
	}

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	body := map[string]any{
		"vector":          queryVector,
		"limit":           limit,
		"with_payload":    true,
		"score_threshold": 0.0,
	}

	var searchResp searchResponse
	status, err := s.do(ctx, http.MethodPost, s.collectionURL()+"/points/search", body, &searchResp)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("search: status %d", status)
	}

	results := make([]domain.SearchResult, 0, len(searchResp.Result))
	for _, hit := range searchResp.Result {
		logger.Debug("Candidate %s scored %.4f", hit.ID.String(), hit.Score)
		if hit.Score < threshold {
			continue
		}
		result, ok := decodeHit(hit.ID.String(), hit.Score, hit.Payload)
		if !ok {
			// One malformed record must not abort the batch.
			logger.Warn("Skipping malformed search result %s", hit.ID.String())
			continue
		}
		results = append(results, result)
	}

	logger.Debug("Search returned %d of %d candidates above threshold %.2f",
		len(results), len(searchResp.Result), threshold)
	return results, nil
}

// Close releases resources.
func (s *Store) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// decodeHit coerces a schemaless payload into a SearchResult. Payload
// values may arrive as string, number or bool; each field falls back to a
// zero value rather than failing the record, except content, which is
// load-bearing.
func decodeHit(id string, score float32, payload map[string]any) (domain.SearchResult, bool) {
	content := payloadString(payload, "content")
	if content == "" {
		return domain.SearchResult{}, false
	}
	return domain.SearchResult{
		ID:         id,
		Content:    content,
		FileName:   payloadString(payload, "fileName"),
		PageNumber: payloadInt(payload, "pageNumber"),
		Score:      score,
	}, true
}

// payloadString coerces a payload value to string, empty when absent.
func payloadString(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// payloadInt coerces a payload value to int, 0 when absent or unparsable.
func payloadInt(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// randomPointID draws a random 64-bit point identifier.
func randomPointID() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic(err)
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// do issues one JSON request and optionally decodes the response body.
// It returns the HTTP status so callers can branch on 404 vs 200.
func (s *Store) do(ctx context.Context, method, url string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (s *Store) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", s.baseURL, s.collection)
}
