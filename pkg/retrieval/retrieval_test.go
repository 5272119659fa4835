package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Achintharya/eightfold-bot/pkg/research"
	"github.com/Achintharya/eightfold-bot/pkg/websearch"
)

// fakeEmbedding maps text onto a fixed vocabulary axis so similarity
// is deterministic without a real embedding service.
func fakeEmbedding(_ context.Context, text string) ([]float32, error) {
	vocab := []string{"widgets", "leadership", "revenue", "europe"}
	vec := make([]float32, len(vocab))
	lower := strings.ToLower(text)
	var norm float32
	for i, word := range vocab {
		if strings.Contains(lower, word) {
			vec[i] = 1
			norm++
		}
	}
	if norm == 0 {
		vec[0] = 1
		norm = 1
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}

func bundle() *research.Bundle {
	return &research.Bundle{
		Subject: "Acme",
		Sources: []websearch.SourceRecord{
			{URL: "https://a.example.com", Summary: "Acme widgets dominate the market"},
			{URL: "https://b.example.com", Summary: "Acme leadership announced changes"},
			{URL: "https://c.example.com", Summary: "failed", Err: true},
		},
	}
}

func TestIndexAndQuery(t *testing.T) {
	idx := NewIndex(fakeEmbedding)
	require.NoError(t, idx.IndexBundle(context.Background(), bundle()))

	results, err := idx.Query(context.Background(), "Acme", "tell me about leadership", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0], "leadership")
}

func TestQueryUnknownSubjectIsEmpty(t *testing.T) {
	idx := NewIndex(fakeEmbedding)

	results, err := idx.Query(context.Background(), "Nobody", "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndexSkipsErroredRecords(t *testing.T) {
	idx := NewIndex(fakeEmbedding)
	require.NoError(t, idx.IndexBundle(context.Background(), bundle()))

	// k larger than the index is clamped, and the errored record is absent
	results, err := idx.Query(context.Background(), "acme", "widgets revenue europe leadership", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	for _, r := range results {
		assert.NotContains(t, r, "failed")
	}
}

func TestReindexReplacesCollection(t *testing.T) {
	idx := NewIndex(fakeEmbedding)
	require.NoError(t, idx.IndexBundle(context.Background(), bundle()))

	updated := &research.Bundle{
		Subject: "Acme",
		Sources: []websearch.SourceRecord{
			{URL: "https://d.example.com", Summary: "Acme revenue grew in Europe"},
		},
	}
	require.NoError(t, idx.IndexBundle(context.Background(), updated))

	results, err := idx.Query(context.Background(), "Acme", "widgets leadership revenue europe", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Contains(t, results[0], "revenue")
}
