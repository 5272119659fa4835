package websearch

import (
	"context"
	"strings"
	"sync"
)

// MockSearcher is a scripted Searcher for testing
type MockSearcher struct {
	mu sync.Mutex

	// Results maps query substrings to canned records
	Results map[string][]SourceRecord

	// Default is returned when no substring matches
	Default []SourceRecord

	// Queries records every query seen
	Queries []string
}

// NewMockSearcher creates an empty mock searcher
func NewMockSearcher() *MockSearcher {
	return &MockSearcher{
		Results: make(map[string][]SourceRecord),
	}
}

// SearchAndExtract implements Searcher
func (m *MockSearcher) SearchAndExtract(_ context.Context, query string) []SourceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Queries = append(m.Queries, query)

	for key, records := range m.Results {
		if strings.Contains(query, key) {
			return records
		}
	}
	return m.Default
}

// QueryCount returns the number of queries recorded
func (m *MockSearcher) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}
