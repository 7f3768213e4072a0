package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
	"github.com/docsift/docsift/internal/core/ports/driving"
	"github.com/docsift/docsift/internal/logger"
)

// Ensure RagOrchestrator implements the interface.
var _ driving.RagService = (*RagOrchestrator)(nil)

// Canned answers for outcomes that are not failures of the system.
const (
	noResultsAnswer = "I couldn't find any relevant information in the uploaded documents " +
		"to answer your question. Please try rephrasing your query or upload relevant documents."

	generationFailedAnswer = "I apologize, but I encountered an error while generating an answer. " +
		"Please ensure the model host is running and try again."

	emptyAnswerFallback = "I apologize, but I couldn't generate a proper answer. " +
		"Please try rephrasing your question."

	// genericErrorMessage is what callers see when retrieval fails.
	// Internal detail is logged, never leaked.
	genericErrorMessage = "An error occurred while processing your request. Please try again."
)

// systemPrompt constrains the model to the supplied excerpts.
const systemPrompt = `You are an intelligent document assistant. Your task is to answer questions based on the provided document excerpts.

Guidelines:
1. Answer the question using ONLY the information provided in the document excerpts
2. If the information is not sufficient to answer the question, say so clearly
3. Cite which document(s) and page(s) you're referencing in your answer
4. Be concise but comprehensive
5. If there is conflicting information in different documents, mention this
6. Use a professional and helpful tone

Remember: Only use the information from the provided documents. Do not add external knowledge.`

// Sampling options leaning deterministic so answers stay grounded in the
// retrieved excerpts, with a context window large enough for them.
var answerOptions = driven.ChatOptions{
	Temperature: 0.3,
	NumCtx:      4096,
	TopK:        40,
	TopP:        0.9,
}

// RagOrchestrator composes retrieval and answer generation. It keeps no
// state between requests; timing and failure state are measured per call.
type RagOrchestrator struct {
	store driven.VectorStore
	llm   driven.LLMService
}

// NewRagOrchestrator creates a new RAG orchestrator.
func NewRagOrchestrator(store driven.VectorStore, llm driven.LLMService) *RagOrchestrator {
	return &RagOrchestrator{store: store, llm: llm}
}

// Ask runs the three-phase RAG flow: retrieve, generate, assemble.
//
// Zero retrieved results short-circuit to a canned answer with Success
// true: absence of matches is not a failure of the system. Generation
// failures are absorbed into an apologetic answer. Only retrieval (and
// therefore embedding) failures mark the response unsuccessful.
func (o *RagOrchestrator) Ask(ctx context.Context, req domain.RagSearchRequest) *domain.RagSearchResponse {
	start := time.Now()
	resp := &domain.RagSearchResponse{Query: req.Query}

	if strings.TrimSpace(req.Query) == "" {
		resp.Success = false
		resp.ErrorMessage = domain.ErrEmptyQuery.Error()
		resp.ResponseTimeMs = msSince(start)
		return resp
	}
	req.ApplyDefaults()

	logger.Section("RAG Search")
	logger.Debug("Query: %q, maxResults: %d, threshold: %.2f", req.Query, req.MaxResults, req.Threshold)

	results, err := o.store.Search(ctx, req.Query, req.MaxResults, req.Threshold)
	if err != nil {
		logger.Warn("Retrieval failed: %v", err)
		resp.Success = false
		resp.ErrorMessage = genericErrorMessage
		resp.ResponseTimeMs = msSince(start)
		return resp
	}

	if len(results) == 0 {
		logger.Debug("No relevant chunks found")
		resp.GeneratedAnswer = noResultsAnswer
		resp.Success = true
		resp.SourceDocuments = []domain.SearchResult{}
		resp.ResponseTimeMs = msSince(start)
		return resp
	}
	logger.Debug("Retrieved %d relevant chunks", len(results))

	answer, tokens := o.generateAnswer(ctx, req.Query, results)

	resp.GeneratedAnswer = answer
	resp.TokensUsed = tokens
	resp.Success = true
	resp.SourceDocuments = []domain.SearchResult{}
	if req.IncludeSourceDocuments {
		resp.SourceDocuments = results
	}
	resp.ResponseTimeMs = msSince(start)

	logger.Debug("RAG search completed in %.0fms", resp.ResponseTimeMs)
	return resp
}

// generateAnswer builds the two-turn prompt and calls the model. Model
// failures (unreachable host, bad status, empty message) degrade to an
// explanatory answer rather than propagating: a model-host outage should
// not fail the request when retrieval itself succeeded.
func (o *RagOrchestrator) generateAnswer(ctx context.Context, query string, results []domain.SearchResult) (string, int) {
	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(query, results)},
	}

	result, err := o.llm.Chat(ctx, messages, answerOptions)
	if err != nil {
		logger.Warn("Answer generation failed: %v", err)
		return generationFailedAnswer, 0
	}

	answer := strings.TrimSpace(result.Content)
	if answer == "" {
		logger.Warn("Model returned an empty answer")
		return emptyAnswerFallback, result.TokensUsed
	}
	return answer, result.TokensUsed
}

// buildUserPrompt enumerates the retrieved excerpts, each labelled with
// its source file and page, followed by the original question.
func buildUserPrompt(query string, results []domain.SearchResult) string {
	var b strings.Builder
	b.WriteString("Based on the following document excerpts:\n\n")

	for i, doc := range results {
		fmt.Fprintf(&b, "Document %d (from %s, page %d):\n", i+1, doc.FileName, doc.PageNumber)
		b.WriteString(doc.Content)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Question: %s\n\n", query)
	b.WriteString("Please provide a comprehensive answer based on the document excerpts above.")
	return b.String()
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
