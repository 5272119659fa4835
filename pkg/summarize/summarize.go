// Package summarize condenses extracted source records into a single
// narrative suitable for plan generation.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/Achintharya/eightfold-bot/pkg/llm"
	"github.com/Achintharya/eightfold-bot/pkg/logger"
	"github.com/Achintharya/eightfold-bot/pkg/websearch"
)

const noSummary = "No summary available"

// Summarizer condenses source records into one narrative text
type Summarizer interface {
	Summarize(ctx context.Context, records []websearch.SourceRecord) string
}

// LLMSummarizer summarizes via a generation provider and degrades to
// plain concatenation of record summaries when the provider fails.
type LLMSummarizer struct {
	provider llm.Provider
}

// NewLLMSummarizer creates a summarizer backed by provider. A nil
// provider always uses the concatenation fallback.
func NewLLMSummarizer(provider llm.Provider) *LLMSummarizer {
	return &LLMSummarizer{provider: provider}
}

// Summarize implements Summarizer
func (s *LLMSummarizer) Summarize(ctx context.Context, records []websearch.SourceRecord) string {
	usable := usableRecords(records)
	if len(usable) == 0 {
		return noSummary
	}

	if s.provider == nil {
		return Concat(usable)
	}

	var contextText strings.Builder
	for _, r := range usable {
		fmt.Fprintf(&contextText, "- %s\n", r.Summary)
	}

	instruction := "Summarize the research data above into clear, detailed points. " +
		"Extract all relevant information, organized by topic, without any JSON formatting."

	narrative, err := s.provider.Generate(ctx, contextText.String(), instruction)
	if err != nil || strings.TrimSpace(narrative) == "" {
		logger.Warn("summarization failed, using concatenation fallback: %v", err)
		return Concat(usable)
	}
	return narrative
}

// Concat joins per-record summaries into a bullet list. This is the
// degraded-mode narrative when no summarization service is reachable.
func Concat(records []websearch.SourceRecord) string {
	usable := usableRecords(records)
	if len(usable) == 0 {
		return noSummary
	}
	var b strings.Builder
	for _, r := range usable {
		fmt.Fprintf(&b, "- %s\n", r.Summary)
	}
	return strings.TrimRight(b.String(), "\n")
}

func usableRecords(records []websearch.SourceRecord) []websearch.SourceRecord {
	var usable []websearch.SourceRecord
	for _, r := range records {
		if !r.Err && strings.TrimSpace(r.Summary) != "" {
			usable = append(usable, r)
		}
	}
	return usable
}
