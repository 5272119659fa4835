package subject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAnchoredPatterns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"research verb", "Research Microsoft", "Microsoft"},
		{"research with qualifier", "research Acme Corp", "Acme"},
		{"look up", "look up Stripe", "Stripe"},
		{"look into", "Can you look into Shopify", "Shopify"},
		{"information about", "I need information about Tesla", "Tesla"},
		{"tell me about", "tell me about apple", "Apple"},
		{"plan for", "create a plan for Nvidia", "Nvidia"},
		{"multi-word name", "research Palo Alto Networks", "Palo Alto Networks"},
		{"trailing inc", "tell me about Datadog Inc", "Datadog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.input))
		})
	}
}

func TestExtractFallback(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare name", "Microsoft", "Microsoft"},
		{"bare lowercase", "tesla", "Tesla"},
		{"filler only", "please research", ""},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"filler wrapped", "i want to know about snowflake", "Snowflake"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.input))
		})
	}
}

func TestExtractIdempotentUnderNormalize(t *testing.T) {
	inputs := []string{
		"Research Microsoft",
		"  tell   me  about   palo   alto networks ",
		"tesla",
		"look up ACME corp",
	}
	for _, in := range inputs {
		extracted := Extract(in)
		assert.Equal(t, extracted, Normalize(extracted), "input: %q", in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Microsoft", Normalize("  microsoft "))
	assert.Equal(t, "Palo Alto Networks", Normalize("palo   alto\tnetworks"))
	assert.Equal(t, "", Normalize("   "))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("Research Microsoft"))
	assert.True(t, Matches("Tesla"))
	assert.True(t, Matches("Palo Alto Networks"))
	assert.False(t, Matches(""))
	assert.False(t, Matches("what's the weather like?"))
}
