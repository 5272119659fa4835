// Package retrieval indexes cached research records so conversational
// answers can be grounded in previously extracted sources.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/Achintharya/eightfold-bot/pkg/cache"
	"github.com/Achintharya/eightfold-bot/pkg/config"
	"github.com/Achintharya/eightfold-bot/pkg/logger"
	"github.com/Achintharya/eightfold-bot/pkg/research"
)

// Index stores one chromem collection per researched subject
type Index struct {
	db    *chromem.DB
	embed chromem.EmbeddingFunc
}

// NewIndex creates an in-memory research index using the given
// embedding function.
func NewIndex(embed chromem.EmbeddingFunc) *Index {
	return &Index{
		db:    chromem.NewDB(),
		embed: embed,
	}
}

// NewIndexFromConfig builds an index with the configured embedder
func NewIndexFromConfig(cfg *config.Config) (*Index, error) {
	var embed chromem.EmbeddingFunc
	switch cfg.Retrieval.Embedder.Provider {
	case "ollama", "":
		embed = chromem.NewEmbeddingFuncOllama(cfg.Retrieval.Embedder.Model, cfg.Retrieval.Embedder.BaseURL+"/api")
	case "openai":
		if cfg.Retrieval.Embedder.APIKey == "" {
			return nil, fmt.Errorf("retrieval embedder requires an API key")
		}
		normalized := true
		embed = chromem.NewEmbeddingFuncOpenAICompat(
			cfg.Retrieval.Embedder.BaseURL,
			cfg.Retrieval.Embedder.APIKey,
			cfg.Retrieval.Embedder.Model,
			&normalized,
		)
	default:
		return nil, fmt.Errorf("unknown embedder provider: %s", cfg.Retrieval.Embedder.Provider)
	}
	return NewIndex(embed), nil
}

// IndexBundle adds every usable source record of a research bundle to
// the subject's collection, replacing any previous index for it.
func (i *Index) IndexBundle(ctx context.Context, bundle *research.Bundle) error {
	name := collectionName(bundle.Subject)

	// Re-research replaces the bundle wholesale, so the index follows
	_ = i.db.DeleteCollection(name)

	collection, err := i.db.CreateCollection(name, nil, i.embed)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	var docs []chromem.Document
	for n, record := range bundle.Sources {
		if record.Err || strings.TrimSpace(record.Summary) == "" {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:       fmt.Sprintf("%s-%d", name, n),
			Content:  record.Summary,
			Metadata: map[string]string{"url": record.URL},
		})
	}
	if len(docs) == 0 {
		return nil
	}

	if err := collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("failed to index records: %w", err)
	}

	logger.Debug("indexed %d records for %s", len(docs), bundle.Subject)
	return nil
}

// Query returns the most relevant record summaries for a subject.
// A subject with no index yields an empty result, not an error.
func (i *Index) Query(ctx context.Context, subjectName, query string, k int) ([]string, error) {
	collection := i.db.GetCollection(collectionName(subjectName), i.embed)
	if collection == nil || collection.Count() == 0 {
		return nil, nil
	}

	if k > collection.Count() {
		k = collection.Count()
	}

	results, err := collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieval query failed: %w", err)
	}

	summaries := make([]string, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, r.Content)
	}
	return summaries, nil
}

func collectionName(subjectName string) string {
	return "research-" + strings.ReplaceAll(cache.Key(subjectName), " ", "-")
}
