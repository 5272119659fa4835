package llm

import (
	"context"
	"strings"
	"sync"
)

// MockProvider is a scripted Provider implementation for testing
type MockProvider struct {
	mu sync.Mutex

	// Responses maps instruction substrings to canned responses
	Responses map[string]string

	// Default is returned when no substring matches
	Default string

	// GenerateError, when set, is returned by every Generate call
	GenerateError error

	// Calls records every (context, instruction) pair seen
	Calls []MockCall
}

// MockCall is one recorded Generate invocation
type MockCall struct {
	Context     string
	Instruction string
}

// NewMockProvider creates a mock with a default response
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Responses: make(map[string]string),
		Default:   "generated content",
	}
}

// Generate implements Provider
func (m *MockProvider) Generate(_ context.Context, contextText, instruction string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Context: contextText, Instruction: instruction})

	if m.GenerateError != nil {
		return "", m.GenerateError
	}
	for key, response := range m.Responses {
		if strings.Contains(instruction, key) {
			return response, nil
		}
	}
	return m.Default, nil
}

// GetName returns the provider name
func (m *MockProvider) GetName() string { return "mock" }

// GetModel returns the model name
func (m *MockProvider) GetModel() string { return "mock-model" }

// CallCount returns the number of Generate calls recorded
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
