// Package httpapi exposes the ingestion, search and RAG services over
// HTTP. It is a thin driving adapter: validation, decoding and status
// codes live here, everything else in the core services.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driving"
	"github.com/docsift/docsift/internal/logger"
)

// maxUploadBytes bounds multipart uploads (32 MiB).
const maxUploadBytes = 32 << 20

// Server routes HTTP requests to the core services.
type Server struct {
	ingest driving.IngestService
	search driving.SearchService
	rag    driving.RagService
}

// NewServer creates a new HTTP server adapter.
func NewServer(ingest driving.IngestService, search driving.SearchService, rag driving.RagService) *Server {
	return &Server{ingest: ingest, search: search, rag: rag}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/document/upload", s.handleUpload)
	mux.HandleFunc("POST /api/document/search", s.handleSearch)
	mux.HandleFunc("GET /api/document/health", s.handleHealth("documents"))
	mux.HandleFunc("POST /api/rag/search", s.handleRagSearch)
	mux.HandleFunc("GET /api/rag/health", s.handleHealth("rag"))
	return mux
}

// handleUpload accepts a multipart PDF and runs the ingestion pipeline.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.UploadResponse{
			Success: false,
			Message: "invalid multipart form",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, domain.UploadResponse{
			Success: false,
			Message: "no file provided",
		})
		return
	}
	defer file.Close()

	if !isPDF(header.Header.Get("Content-Type"), header.Filename) {
		writeJSON(w, http.StatusBadRequest, domain.UploadResponse{
			Success: false,
			Message: "only PDF files are supported",
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, domain.UploadResponse{
			Success: false,
			Message: "failed to read uploaded file",
		})
		return
	}

	resp, err := s.ingest.IngestPDF(r.Context(), data, header.Filename)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, domain.ErrNoContent), errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, resp)
	default:
		logger.Warn("Upload of %s failed: %v", header.Filename, err)
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}

// handleSearch answers plain semantic search queries.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	results, err := s.search.Search(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, results)
	case errors.Is(err, domain.ErrEmptyQuery):
		http.Error(w, domain.ErrEmptyQuery.Error(), http.StatusBadRequest)
	default:
		logger.Warn("Search failed: %v", err)
		http.Error(w, "internal server error occurred while searching", http.StatusInternalServerError)
	}
}

// handleRagSearch answers questions with retrieval-augmented generation.
// The orchestrator folds failures into the response body; only blank
// queries and unsuccessful responses change the status code.
func (s *Server) handleRagSearch(w http.ResponseWriter, r *http.Request) {
	var req domain.RagSearchRequest
	// IncludeSourceDocuments defaults to true when the field is omitted.
	req.IncludeSourceDocuments = true
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, domain.RagSearchResponse{
			Success:      false,
			ErrorMessage: domain.ErrEmptyQuery.Error(),
			Query:        req.Query,
		})
		return
	}

	resp := s.rag.Ask(r.Context(), req)
	if !resp.Success {
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness for one service surface.
func (s *Server) handleHealth(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"service":   service,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// isPDF accepts the declared content type or a .pdf extension; browsers
// are inconsistent about multipart part types.
func isPDF(contentType, filename string) bool {
	if strings.EqualFold(contentType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}
