// Package chunker splits raw page text into bounded-size,
// sentence-respecting chunks.
package chunker

import (
	"strings"
	"time"

	"github.com/docsift/docsift/internal/core/domain"
)

// DefaultMaxChunkSize is the default chunk size bound in characters.
const DefaultMaxChunkSize = 500

// isTerminal reports whether r ends a sentence.
func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Split breaks pageText into chunks of at most maxChunkSize characters,
// never cutting inside a sentence. Sentences are accumulated greedily and
// joined with ". "; each emitted chunk carries a trailing period.
//
// The bound is soft: a single sentence longer than maxChunkSize is emitted
// as its own oversized chunk rather than truncated. Blank input yields no
// chunks. Split is pure and never fails; malformed input degrades to
// fewer or larger chunks.
func Split(pageText string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}

	sentences := strings.FieldsFunc(pageText, isTerminal)

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}

		// +2 accounts for the ". " separator.
		if current.Len() == 0 {
			current.WriteString(trimmed)
			continue
		}
		if current.Len()+len(trimmed)+2 <= maxChunkSize {
			current.WriteString(". ")
			current.WriteString(trimmed)
			continue
		}

		chunks = append(chunks, current.String()+".")
		current.Reset()
		current.WriteString(trimmed)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String()+".")
	}

	return chunks
}

// ChunkPages runs Split over each page of an extracted document and wraps
// the results as DocumentChunks. Pages are 1-indexed; blank pages are
// skipped entirely and produce no chunks. ChunkIndex restarts at 0 on
// every page.
//
// An empty result across the whole document is a valid "no extractable
// content" outcome, not an error.
func ChunkPages(pages []string, fileName string, maxChunkSize int) []domain.DocumentChunk {
	var chunks []domain.DocumentChunk
	now := time.Now().UTC()

	for i, pageText := range pages {
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		for j, content := range Split(pageText, maxChunkSize) {
			chunks = append(chunks, domain.DocumentChunk{
				Content:    content,
				FileName:   fileName,
				PageNumber: i + 1,
				ChunkIndex: j,
				CreatedAt:  now,
			})
		}
	}

	return chunks
}
