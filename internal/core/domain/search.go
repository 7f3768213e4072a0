package domain

// Default request parameters. Plain search favours precision; RAG uses a
// deliberately looser threshold to keep more context for the model.
const (
	DefaultSearchLimit     = 10
	DefaultSearchThreshold = float32(0.7)

	DefaultRagMaxResults = 5
	DefaultRagThreshold  = float32(0.3)
)

// SearchRequest is a plain semantic search query.
type SearchRequest struct {
	// Query is the natural-language search text. Must not be blank.
	Query string `json:"query"`

	// Limit is the maximum number of results (default 10).
	Limit int `json:"limit"`

	// Threshold is the minimum similarity score, in the store's native
	// cosine scale (default 0.7).
	Threshold float32 `json:"threshold"`
}

// ApplyDefaults fills zero-valued fields with the plain search defaults.
func (r *SearchRequest) ApplyDefaults() {
	if r.Limit <= 0 {
		r.Limit = DefaultSearchLimit
	}
	if r.Threshold <= 0 {
		r.Threshold = DefaultSearchThreshold
	}
}

// SearchResult is a single ranked hit. Results are ephemeral: created per
// query, never persisted.
type SearchResult struct {
	// ID is the store-assigned point identifier.
	ID string `json:"id"`

	// Content is the matched chunk text.
	Content string `json:"content"`

	// FileName is the source PDF name.
	FileName string `json:"fileName"`

	// PageNumber is the 1-indexed source page, 0 when the stored payload
	// was missing or unparsable.
	PageNumber int `json:"pageNumber"`

	// Score is the similarity score in the store's native scale.
	Score float32 `json:"score"`
}

// RagSearchRequest asks for a generated answer grounded in retrieved chunks.
type RagSearchRequest struct {
	// Query is the question to answer. Must not be blank.
	Query string `json:"query"`

	// MaxResults is the number of chunks to retrieve as context (default 5).
	MaxResults int `json:"maxResults"`

	// Threshold is the minimum similarity score (default 0.3).
	Threshold float32 `json:"threshold"`

	// IncludeSourceDocuments controls whether the retrieved chunks are
	// echoed back in the response.
	IncludeSourceDocuments bool `json:"includeSourceDocuments"`
}

// ApplyDefaults fills zero-valued fields with the RAG defaults.
func (r *RagSearchRequest) ApplyDefaults() {
	if r.MaxResults <= 0 {
		r.MaxResults = DefaultRagMaxResults
	}
	if r.Threshold <= 0 {
		r.Threshold = DefaultRagThreshold
	}
}

// RagSearchResponse is the outcome of one RAG call.
//
// Invariant: Success == false implies GeneratedAnswer is empty and
// ErrorMessage is non-empty; Success == true always carries a non-empty
// GeneratedAnswer.
type RagSearchResponse struct {
	GeneratedAnswer string         `json:"generatedAnswer"`
	SourceDocuments []SearchResult `json:"sourceDocuments"`
	Query           string         `json:"query"`
	TokensUsed      int            `json:"tokensUsed"`
	ResponseTimeMs  float64        `json:"responseTimeMs"`
	Success         bool           `json:"success"`
	ErrorMessage    string         `json:"errorMessage,omitempty"`
}
