package mock

import (
	"context"
	"sync"
)

type LLMConfig struct {
	// ResponseText is returned for every call when Respond is nil.
	ResponseText string
	// Respond, when set, scripts the reply per call. The call index is
	// zero-based and counts across the whole client lifetime.
	Respond func(call int, prompt string, temperature float64) (string, error)
}

// ModelClient is a scriptable in-memory model for tests.
type ModelClient struct {
	cfg   LLMConfig
	mu    sync.Mutex
	calls int

	// Prompts records every prompt seen, in call order.
	Prompts []string
	// Temperatures records the sampling temperature of every call.
	Temperatures []float64
}

func NewModelClient(cfg LLMConfig) *ModelClient {
	if cfg.ResponseText == "" && cfg.Respond == nil {
		cfg.ResponseText = "mock response"
	}
	return &ModelClient{cfg: cfg}
}

func (m *ModelClient) Name() string { return "mock_llm" }

func (m *ModelClient) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	call := m.calls
	m.calls++
	m.Prompts = append(m.Prompts, prompt)
	m.Temperatures = append(m.Temperatures, temperature)
	respond := m.cfg.Respond
	m.mu.Unlock()

	if respond != nil {
		return respond(call, prompt, temperature)
	}
	return m.cfg.ResponseText, nil
}

func (m *ModelClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
