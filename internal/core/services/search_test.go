package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/docsift/internal/core/domain"
)

func TestSearch_BlankQuery(t *testing.T) {
	svc := NewSearchService(&mockVectorStore{})

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), domain.SearchRequest{Query: query})
		assert.ErrorIs(t, err, domain.ErrEmptyQuery, "query %q", query)
	}
}

func TestSearch_AppliesDefaults(t *testing.T) {
	store := &mockVectorStore{}
	svc := NewSearchService(store)

	_, err := svc.Search(context.Background(), domain.SearchRequest{Query: "cats"})
	require.NoError(t, err)

	assert.Equal(t, "cats", store.lastQuery)
	assert.Equal(t, domain.DefaultSearchLimit, store.lastLimit)
	assert.Equal(t, domain.DefaultSearchThreshold, store.lastThreshold)
}

func TestSearch_ExplicitParamsPassedThrough(t *testing.T) {
	store := &mockVectorStore{}
	svc := NewSearchService(store)

	_, err := svc.Search(context.Background(), domain.SearchRequest{
		Query:     "cats",
		Limit:     3,
		Threshold: 0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, store.lastLimit)
	assert.Equal(t, float32(0.5), store.lastThreshold)
}

func TestSearch_ReturnsStoreResults(t *testing.T) {
	store := &mockVectorStore{results: someResults()}
	svc := NewSearchService(store)

	results, err := svc.Search(context.Background(), domain.SearchRequest{Query: "cats"})

	require.NoError(t, err)
	assert.Equal(t, someResults(), results)
}

func TestSearch_StoreFailure(t *testing.T) {
	store := &mockVectorStore{err: errors.New("connection refused")}
	svc := NewSearchService(store)

	_, err := svc.Search(context.Background(), domain.SearchRequest{Query: "cats"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search:")
}
