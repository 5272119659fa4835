// Package websearch turns a query into a list of extracted source
// summaries. It is strictly best-effort: total failure yields an empty
// result, never an error past the package boundary.
package websearch

import "context"

// SourceRecord is one extracted web source
type SourceRecord struct {
	URL     string `json:"url"`
	Summary string `json:"summary"`
	Err     bool   `json:"error"`
}

// Searcher searches the web and extracts content from the results
type Searcher interface {
	// SearchAndExtract runs query and returns extracted records.
	// An empty slice means the search produced nothing usable.
	SearchAndExtract(ctx context.Context, query string) []SourceRecord
}
