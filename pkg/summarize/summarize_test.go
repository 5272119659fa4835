package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Achintharya/eightfold-bot/pkg/llm"
	"github.com/Achintharya/eightfold-bot/pkg/websearch"
)

func records() []websearch.SourceRecord {
	return []websearch.SourceRecord{
		{URL: "https://a.example.com", Summary: "Acme makes widgets"},
		{URL: "https://b.example.com", Summary: "fetch failed", Err: true},
		{URL: "https://c.example.com", Summary: "Acme expanded to Europe"},
	}
}

func TestSummarizeUsesProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Default = "Acme is a widget maker expanding into Europe."

	s := NewLLMSummarizer(mock)
	narrative := s.Summarize(context.Background(), records())

	assert.Equal(t, "Acme is a widget maker expanding into Europe.", narrative)
	assert.Equal(t, 1, mock.CallCount())
	// Errored records are excluded from the provider context
	assert.NotContains(t, mock.Calls[0].Context, "fetch failed")
}

func TestSummarizeFallsBackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.GenerateError = errors.New("service unavailable")

	s := NewLLMSummarizer(mock)
	narrative := s.Summarize(context.Background(), records())

	assert.Contains(t, narrative, "Acme makes widgets")
	assert.Contains(t, narrative, "Acme expanded to Europe")
	assert.NotContains(t, narrative, "fetch failed")
}

func TestSummarizeNilProviderConcatenates(t *testing.T) {
	s := NewLLMSummarizer(nil)
	narrative := s.Summarize(context.Background(), records())

	assert.Contains(t, narrative, "Acme makes widgets")
}

func TestSummarizeEmptyRecords(t *testing.T) {
	s := NewLLMSummarizer(llm.NewMockProvider())

	assert.Equal(t, "No summary available", s.Summarize(context.Background(), nil))
	assert.Equal(t, "No summary available", s.Summarize(context.Background(), []websearch.SourceRecord{{Summary: "bad", Err: true}}))
}

func TestConcat(t *testing.T) {
	out := Concat(records())
	assert.Equal(t, "- Acme makes widgets\n- Acme expanded to Europe", out)
	assert.Equal(t, "No summary available", Concat(nil))
}
