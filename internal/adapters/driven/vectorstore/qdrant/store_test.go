package qdrant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/docsift/internal/core/domain"
)

// fakeEmbedder returns a fixed-size vector derived from the text length.
type fakeEmbedder struct {
	dims  int
	calls []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	v := make([]float32, f.dims)
	v[0] = float32(len(text))
	return v, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, _ := f.Embed(ctx, t)
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int          { return f.dims }
func (f *fakeEmbedder) ModelName() string        { return "fake" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error             { return nil }

// fakeQdrant is a minimal in-test Qdrant REST endpoint.
type fakeQdrant struct {
	t *testing.T

	exists      bool
	points      uint64
	createBody  map[string]any
	upsertBody  map[string]any
	searchHits  []map[string]any
	searchCalls int
	apiKeys     []string
}

func (q *fakeQdrant) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /collections/pdf_documents", func(w http.ResponseWriter, r *http.Request) {
		q.apiKeys = append(q.apiKeys, r.Header.Get("api-key"))
		if !q.exists {
			http.Error(w, `{"status":{"error":"not found"}}`, http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"result":{"points_count":%d}}`, q.points)
	})
	mux.HandleFunc("PUT /collections/pdf_documents", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(q.t, json.NewDecoder(r.Body).Decode(&q.createBody))
		q.exists = true
		w.Write([]byte(`{"result":true}`))
	})
	mux.HandleFunc("PUT /collections/pdf_documents/points", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(q.t, "true", r.URL.Query().Get("wait"))
		require.NoError(q.t, json.NewDecoder(r.Body).Decode(&q.upsertBody))
		w.Write([]byte(`{"result":{"status":"completed"}}`))
	})
	mux.HandleFunc("POST /collections/pdf_documents/points/search", func(w http.ResponseWriter, _ *http.Request) {
		q.searchCalls++
		json.NewEncoder(w).Encode(map[string]any{"result": q.searchHits})
	})
	return mux
}

func newTestStore(t *testing.T, q *fakeQdrant, apiKey string) (*Store, *fakeEmbedder) {
	t.Helper()
	q.t = t
	server := httptest.NewServer(q.handler())
	t.Cleanup(server.Close)
	embedder := &fakeEmbedder{dims: 4}
	return NewStore(Config{BaseURL: server.URL, APIKey: apiKey}, embedder), embedder
}

func TestEnsureCollection_CreatesWhenMissing(t *testing.T) {
	q := &fakeQdrant{exists: false}
	store, _ := newTestStore(t, q, "")

	require.NoError(t, store.EnsureCollection(context.Background()))

	require.NotNil(t, q.createBody)
	vectors := q.createBody["vectors"].(map[string]any)
	assert.EqualValues(t, 4, vectors["size"])
	assert.Equal(t, "Cosine", vectors["distance"])
}

func TestEnsureCollection_SkipsWhenPresent(t *testing.T) {
	q := &fakeQdrant{exists: true}
	store, _ := newTestStore(t, q, "")

	require.NoError(t, store.EnsureCollection(context.Background()))
	assert.Nil(t, q.createBody, "existing collection must not be recreated")
}

func TestStore_EmbedsAndUpserts(t *testing.T) {
	q := &fakeQdrant{exists: true}
	store, embedder := newTestStore(t, q, "")

	created := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	chunks := []domain.DocumentChunk{
		{Content: "Cats are mammals.", FileName: "animals.pdf", PageNumber: 1, ChunkIndex: 0, CreatedAt: created},
		{Content: "Dogs are mammals too.", FileName: "animals.pdf", PageNumber: 2, ChunkIndex: 0, CreatedAt: created},
	}

	require.NoError(t, store.Store(context.Background(), chunks))

	assert.Equal(t, []string{"Cats are mammals.", "Dogs are mammals too."}, embedder.calls)

	points := q.upsertBody["points"].([]any)
	require.Len(t, points, 2)

	first := points[0].(map[string]any)
	payload := first["payload"].(map[string]any)
	assert.Equal(t, "Cats are mammals.", payload["content"])
	assert.Equal(t, "animals.pdf", payload["fileName"])
	assert.EqualValues(t, 1, payload["pageNumber"])
	assert.EqualValues(t, 0, payload["chunkIndex"])
	assert.Equal(t, "2026-08-28T12:00:00Z", payload["createdAt"])

	second := points[1].(map[string]any)
	assert.NotEqual(t, first["id"], second["id"], "point IDs must be distinct")
}

func TestStore_KeepsExistingEmbeddings(t *testing.T) {
	q := &fakeQdrant{exists: true}
	store, embedder := newTestStore(t, q, "")

	chunks := []domain.DocumentChunk{
		{Content: "already embedded", Embedding: []float32{1, 2, 3, 4}},
	}

	require.NoError(t, store.Store(context.Background(), chunks))
	assert.Empty(t, embedder.calls, "chunks carrying a vector are not re-embedded")
}

func TestSearch_EmptyCollectionShortCircuits(t *testing.T) {
	q := &fakeQdrant{exists: true, points: 0}
	store, embedder := newTestStore(t, q, "")

	results, err := store.Search(context.Background(), "cats", 10, 0.7)
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Zero(t, q.searchCalls, "no remote search against an empty collection")
	assert.Empty(t, embedder.calls, "the query is not embedded when nothing is stored")
}

func TestSearch_FiltersByThreshold(t *testing.T) {
	q := &fakeQdrant{
		exists: true,
		points: 3,
		searchHits: []map[string]any{
			{"id": 11, "score": 0.91, "payload": map[string]any{"content": "Cats are mammals.", "fileName": "a.pdf", "pageNumber": 1}},
			{"id": 12, "score": 0.65, "payload": map[string]any{"content": "Weather report.", "fileName": "b.pdf", "pageNumber": 3}},
			{"id": 13, "score": 0.72, "payload": map[string]any{"content": "Dogs are mammals too.", "fileName": "a.pdf", "pageNumber": 2}},
		},
	}
	store, _ := newTestStore(t, q, "")

	results, err := store.Search(context.Background(), "are cats mammals?", 10, 0.7)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "11", results[0].ID)
	assert.Equal(t, "Cats are mammals.", results[0].Content)
	assert.Equal(t, "a.pdf", results[0].FileName)
	assert.Equal(t, 1, results[0].PageNumber)
	assert.InDelta(t, 0.91, results[0].Score, 1e-6)
	assert.Equal(t, "13", results[1].ID)
}

func TestSearch_SkipsMalformedPayload(t *testing.T) {
	q := &fakeQdrant{
		exists: true,
		points: 2,
		searchHits: []map[string]any{
			{"id": 1, "score": 0.9, "payload": map[string]any{"fileName": "a.pdf"}},
			{"id": 2, "score": 0.8, "payload": map[string]any{"content": "good", "fileName": "a.pdf", "pageNumber": "7"}},
		},
	}
	store, _ := newTestStore(t, q, "")

	results, err := store.Search(context.Background(), "q", 10, 0.0)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].Content)
	assert.Equal(t, 7, results[0].PageNumber, "string page numbers are coerced")
}

func TestAPIKeyHeader(t *testing.T) {
	q := &fakeQdrant{exists: true, points: 1}
	store, _ := newTestStore(t, q, "secret")

	_, err := store.Count(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, q.apiKeys)
	assert.Equal(t, "secret", q.apiKeys[0])
}

func TestRandomPointID(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		seen[randomPointID()] = true
	}
	assert.Greater(t, len(seen), 95, "IDs should be effectively unique")
}
