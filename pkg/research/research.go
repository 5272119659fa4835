// Package research drives the web research stage: a fixed set of
// sub-queries per subject, aggregated and condensed into one bundle.
package research

import (
	"context"
	"fmt"
	"time"

	"github.com/Achintharya/eightfold-bot/pkg/logger"
	"github.com/Achintharya/eightfold-bot/pkg/summarize"
	"github.com/Achintharya/eightfold-bot/pkg/websearch"
)

// Bundle is the cached aggregate of one research run for a subject.
// It is immutable once created; re-research replaces it wholesale.
type Bundle struct {
	Subject    string                   `json:"subject"`
	Sources    []websearch.SourceRecord `json:"sources"`
	Narrative  string                   `json:"narrative_summary"`
	CapturedAt time.Time                `json:"captured_at"`
}

// aspects are the fixed research angles queried for every subject, in
// order. Query text is "<subject> <aspect query>".
var aspects = []struct {
	label string
	query string
}{
	{"company overview", "company overview products services"},
	{"leadership team", "leadership team executives"},
	{"recent news", "recent news announcements"},
	{"challenges", "challenges problems issues"},
}

// Coordinator runs the research stage using the search and
// summarization collaborators.
type Coordinator struct {
	searcher   websearch.Searcher
	summarizer summarize.Summarizer
	progress   func(string)
}

// NewCoordinator creates a research coordinator. The progress callback
// receives user-visible status lines between sub-queries; pass nil to
// discard them.
func NewCoordinator(searcher websearch.Searcher, summarizer summarize.Summarizer, progress func(string)) *Coordinator {
	if progress == nil {
		progress = func(string) {}
	}
	return &Coordinator{
		searcher:   searcher,
		summarizer: summarizer,
		progress:   progress,
	}
}

// Research runs all sub-queries for subject sequentially, aggregates
// the extracted records, and summarizes them into a bundle.
func (c *Coordinator) Research(ctx context.Context, subject string) (*Bundle, error) {
	if subject == "" {
		return nil, fmt.Errorf("no subject to research")
	}

	logger.Info("starting research for %s", subject)

	var allRecords []websearch.SourceRecord
	for _, aspect := range aspects {
		c.progress(fmt.Sprintf("Researching: %s...", aspect.label))
		if aspect.label == "challenges" {
			c.progress("I'm finding some conflicting information about challenges. Let me dig deeper...")
		}

		query := fmt.Sprintf("%s %s", subject, aspect.query)
		records := c.searcher.SearchAndExtract(ctx, query)
		logger.Debug("query %q returned %d records", query, len(records))
		allRecords = append(allRecords, records...)

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("research interrupted: %w", err)
		}
	}

	if len(allRecords) == 0 {
		return nil, fmt.Errorf("no sources found for %s", subject)
	}

	narrative := c.summarizer.Summarize(ctx, allRecords)

	return &Bundle{
		Subject:    subject,
		Sources:    allRecords,
		Narrative:  narrative,
		CapturedAt: time.Now(),
	}, nil
}

// AspectCount returns the number of fixed sub-queries per research run
func AspectCount() int {
	return len(aspects)
}
