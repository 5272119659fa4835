package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Achintharya/eightfold-bot/pkg/config"
)

const systemPrompt = "You are a professional business analyst who writes " +
	"clear, well-structured account planning documents grounded in the " +
	"research context you are given."

// LangChainProvider implements Provider using a LangChain Go model
type LangChainProvider struct {
	llm   llms.Model
	name  string
	model string
}

// NewOllamaProvider creates a provider backed by a local Ollama server
func NewOllamaProvider(baseURL, model string) (*LangChainProvider, error) {
	var opts []ollama.Option
	if baseURL != "" {
		opts = append(opts, ollama.WithServerURL(baseURL))
	}
	if model != "" {
		opts = append(opts, ollama.WithModel(model))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &LangChainProvider{llm: llm, name: "ollama", model: model}, nil
}

// NewOpenAIProvider creates a provider backed by an OpenAI-compatible
// endpoint (OpenAI itself, or Groq via base URL override).
func NewOpenAIProvider(apiKey, baseURL, model string) (*LangChainProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generation unavailable: no API key configured")
	}

	opts := []openai.Option{openai.WithToken(apiKey)}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &LangChainProvider{llm: llm, name: "openai", model: model}, nil
}

// NewFromConfig builds a provider from application configuration
func NewFromConfig(cfg *config.Config) (Provider, error) {
	var (
		p   *LangChainProvider
		err error
	)
	switch cfg.Provider {
	case "openai":
		p, err = NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
	case "ollama", "":
		p, err = NewOllamaProvider(cfg.Ollama.URL, cfg.Ollama.Model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
	if err != nil {
		// Return an untyped nil so callers can compare against nil
		return nil, err
	}
	return p, nil
}

// Generate implements Provider
func (p *LangChainProvider) Generate(ctx context.Context, contextText, instruction string) (string, error) {
	var prompt strings.Builder
	if contextText != "" {
		prompt.WriteString("Research context:\n")
		prompt.WriteString(contextText)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString(instruction)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt.String()),
	}

	response, err := p.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// GetName returns the provider name
func (p *LangChainProvider) GetName() string {
	return p.name
}

// GetModel returns the configured model name
func (p *LangChainProvider) GetModel() string {
	return p.model
}
