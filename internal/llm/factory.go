package llm

import "fmt"

// New creates a provider for the configured backend kind
func New(config Config) (Provider, error) {
	switch config.Kind {
	case KindOpenAI:
		return NewOpenAIProvider(config)

	case KindAnthropic:
		return NewAnthropicProvider(config)

	case KindOllama:
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider kind: %q (supported: openai, anthropic, ollama)", config.Kind)
	}
}
