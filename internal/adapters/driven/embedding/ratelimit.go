// Package embedding provides decorators shared by embedding backends.
package embedding

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/docsift/docsift/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.EmbeddingService = (*RateLimited)(nil)

// RateLimited wraps an EmbeddingService with a requests-per-second cap so
// bulk ingestion cannot saturate the model host.
type RateLimited struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// NewRateLimited caps outbound embedding calls at rps requests per second
// with a burst of one. An rps of zero or less returns the inner service
// unwrapped.
func NewRateLimited(inner driven.EmbeddingService, rps float64) driven.EmbeddingService {
	if rps <= 0 {
		return inner
	}
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Embed waits for the limiter, then delegates.
func (r *RateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Embed(ctx, text)
}

// EmbedBatch delegates per text so the cap applies to each outbound call.
func (r *RateLimited) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := r.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Dimensions returns the inner service's vector size.
func (r *RateLimited) Dimensions() int { return r.inner.Dimensions() }

// ModelName returns the inner service's model name.
func (r *RateLimited) ModelName() string { return r.inner.ModelName() }

// Ping delegates without consuming the limiter.
func (r *RateLimited) Ping(ctx context.Context) error { return r.inner.Ping(ctx) }

// Close releases the inner service.
func (r *RateLimited) Close() error { return r.inner.Close() }
