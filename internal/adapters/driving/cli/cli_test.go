package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/docsift/internal/core/domain"
)

// stubIngest returns a canned response.
type stubIngest struct {
	resp *domain.UploadResponse
	err  error
}

func (s *stubIngest) IngestPDF(context.Context, []byte, string) (*domain.UploadResponse, error) {
	return s.resp, s.err
}

// stubSearch returns canned results.
type stubSearch struct {
	results []domain.SearchResult
	lastReq domain.SearchRequest
}

func (s *stubSearch) Search(_ context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	s.lastReq = req
	return s.results, nil
}

// stubRag returns a canned response.
type stubRag struct {
	resp    *domain.RagSearchResponse
	lastReq domain.RagSearchRequest
}

func (s *stubRag) Ask(_ context.Context, req domain.RagSearchRequest) *domain.RagSearchResponse {
	s.lastReq = req
	return s.resp
}

// stubRegistry lists canned documents.
type stubRegistry struct {
	docs []domain.IngestedDocument
}

func (s *stubRegistry) Record(context.Context, domain.IngestedDocument) error { return nil }
func (s *stubRegistry) List(context.Context) ([]domain.IngestedDocument, error) {
	return s.docs, nil
}
func (s *stubRegistry) Close() error { return nil }

// wire installs mocks so setupServices becomes a no-op, and restores
// the package state afterwards.
func wire(t *testing.T, ingest *stubIngest, search *stubSearch, rag *stubRag, reg *stubRegistry) {
	t.Helper()
	if ingest == nil {
		ingest = &stubIngest{resp: &domain.UploadResponse{Success: true}}
	}
	if search == nil {
		search = &stubSearch{}
	}
	if rag == nil {
		rag = &stubRag{resp: &domain.RagSearchResponse{Success: true}}
	}

	ingestService = ingest
	searchService = search
	ragService = rag
	registry = reg

	t.Cleanup(func() {
		ingestService = nil
		searchService = nil
		ragService = nil
		registry = nil
	})
}

// execute runs the command tree and captures its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "docsift")
	assert.Contains(t, out, Version)
}

func TestSearchCommand(t *testing.T) {
	search := &stubSearch{results: []domain.SearchResult{
		{ID: "1", Content: "Cats are mammals.", FileName: "animals.pdf", PageNumber: 1, Score: 0.91},
	}}
	wire(t, nil, search, nil, nil)

	out, err := execute(t, "search", "are cats mammals?", "--limit", "3", "--threshold", "0.5")

	require.NoError(t, err)
	assert.Equal(t, "are cats mammals?", search.lastReq.Query)
	assert.Equal(t, 3, search.lastReq.Limit)
	assert.Equal(t, float32(0.5), search.lastReq.Threshold)
	assert.Contains(t, out, "animals.pdf, page 1")
	assert.Contains(t, out, "Cats are mammals.")
}

func TestSearchCommand_NoResults(t *testing.T) {
	wire(t, nil, &stubSearch{}, nil, nil)

	out, err := execute(t, "search", "nothing matches this")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCommand_JSON(t *testing.T) {
	search := &stubSearch{results: []domain.SearchResult{
		{ID: "1", Content: "Cats are mammals.", FileName: "animals.pdf", PageNumber: 1, Score: 0.91},
	}}
	wire(t, nil, search, nil, nil)

	out, err := execute(t, "search", "cats", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"fileName": "animals.pdf"`)
}

func TestAskCommand(t *testing.T) {
	rag := &stubRag{resp: &domain.RagSearchResponse{
		Success:         true,
		GeneratedAnswer: "Cats are mammals.",
		SourceDocuments: []domain.SearchResult{
			{FileName: "animals.pdf", PageNumber: 1, Score: 0.91},
		},
		ResponseTimeMs: 812,
		TokensUsed:     150,
	}}
	wire(t, nil, nil, rag, nil)

	out, err := execute(t, "ask", "are cats mammals?")

	require.NoError(t, err)
	assert.True(t, rag.lastReq.IncludeSourceDocuments)
	assert.Equal(t, domain.DefaultRagMaxResults, rag.lastReq.MaxResults)
	assert.Contains(t, out, "Cats are mammals.")
	assert.Contains(t, out, "Sources:")
	assert.Contains(t, out, "animals.pdf, page 1")
	assert.Contains(t, out, "150 tokens")
}

func TestAskCommand_Failure(t *testing.T) {
	rag := &stubRag{resp: &domain.RagSearchResponse{
		Success:      false,
		ErrorMessage: "An error occurred while processing your request. Please try again.",
	}}
	wire(t, nil, nil, rag, nil)

	_, err := execute(t, "ask", "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "An error occurred")
}

func TestIngestCommand(t *testing.T) {
	wire(t, &stubIngest{resp: &domain.UploadResponse{Success: true, ChunksProcessed: 4}}, nil, nil, nil)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0600))

	out, err := execute(t, "ingest", path)

	require.NoError(t, err)
	assert.Contains(t, out, "4 chunks stored")
}

func TestIngestCommand_MissingFile(t *testing.T) {
	wire(t, nil, nil, nil, nil)

	_, err := execute(t, "ingest", filepath.Join(t.TempDir(), "missing.pdf"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
}

func TestIngestCommand_SkipsEmptyPDF(t *testing.T) {
	wire(t, &stubIngest{
		resp: &domain.UploadResponse{Success: false, Message: "no text content found in PDF"},
		err:  domain.ErrNoContent,
	}, nil, nil, nil)

	path := filepath.Join(t.TempDir(), "scanned.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0600))

	out, err := execute(t, "ingest", path)

	require.NoError(t, err, "a PDF without text is skipped, not failed")
	assert.Contains(t, out, "skipped")
}

func TestDocsCommand(t *testing.T) {
	reg := &stubRegistry{docs: []domain.IngestedDocument{
		{
			ID:         "a0000000-0000-0000-0000-000000000001",
			FileName:   "animals.pdf",
			Pages:      2,
			Chunks:     4,
			IngestedAt: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		},
	}}
	wire(t, nil, nil, nil, reg)

	out, err := execute(t, "docs")

	require.NoError(t, err)
	assert.Contains(t, out, "animals.pdf")
	assert.Contains(t, out, "2 pages, 4 chunks")
}

func TestDocsCommand_Empty(t *testing.T) {
	wire(t, nil, nil, nil, &stubRegistry{})

	out, err := execute(t, "docs")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents ingested yet.")
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short", 10))
	assert.Equal(t, "abcde...", snippet("abcdefghij", 5))
	// Multi-byte input truncates on rune boundaries.
	assert.Equal(t, "héllo...", snippet("héllo wörld, this is long", 5))
}
