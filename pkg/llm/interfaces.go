package llm

import "context"

// Provider defines the interface for text generation collaborators.
// Generate produces prose from a research context plus an instruction;
// failures come back as errors and callers decide how to surface them.
type Provider interface {
	// Generate generates a response for the given context and instruction
	Generate(ctx context.Context, contextText, instruction string) (string, error)

	// GetName returns the provider name
	GetName() string

	// GetModel returns the current model name
	GetModel() string
}
