package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderScriptedResponses(t *testing.T) {
	mock := NewMockProvider()
	mock.Responses["executive summary"] = "A strong executive summary."
	mock.Default = "fallback text"

	out, err := mock.Generate(context.Background(), "ctx", "write the executive summary section")
	require.NoError(t, err)
	assert.Equal(t, "A strong executive summary.", out)

	out, err = mock.Generate(context.Background(), "ctx", "something else entirely")
	require.NoError(t, err)
	assert.Equal(t, "fallback text", out)

	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "ctx", mock.Calls[0].Context)
}

func TestMockProviderErrorInjection(t *testing.T) {
	mock := NewMockProvider()
	mock.GenerateError = errors.New("service unavailable")

	_, err := mock.Generate(context.Background(), "", "anything")
	assert.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider("", "", "gpt-4o-mini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key")
}
