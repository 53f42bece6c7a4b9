package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ChenghengLi/AIvidence/internal/model"
)

// Provider defines the interface for text-generation oracles.
// The oracle is treated as an unreliable black box: callers must cope with
// errors and with replies that do not contain the expected payload.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate runs a completion for prompt, optionally steered by a
	// system instruction, and returns the raw reply text
	Generate(ctx context.Context, prompt, instruction string) (string, error)
}

// Kind identifies a supported oracle backend
type Kind string

const (
	KindOpenAI    Kind = "openai"
	KindAnthropic Kind = "anthropic"
	KindOllama    Kind = "ollama"
)

// ParseKind maps a declared provider name to its Kind.
// Dispatch is by explicit name, never by substring-matching model names.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai":
		return KindOpenAI, nil
	case "anthropic", "claude":
		return KindAnthropic, nil
	case "ollama":
		return KindOllama, nil
	default:
		return "", fmt.Errorf("unknown LLM provider: %q (supported: openai, anthropic, ollama)", s)
	}
}

// Config holds oracle provider configuration
type Config struct {
	// Kind selects the backend implementation
	Kind Kind

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for a single API request
	Timeout time.Duration

	// Temperature for generation; low values keep output focused
	Temperature float32

	// MaxTokens limits the response length
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Kind:        KindOpenAI,
		Model:       "gpt-4o-mini",
		Timeout:     60 * time.Second,
		Temperature: 0.1,
		MaxTokens:   2000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) (Config, error) {
	kind, err := ParseKind(mc.Provider)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	cfg.Kind = kind
	if mc.Model != "" {
		cfg.Model = mc.Model
	}
	cfg.APIKey = mc.APIKey
	cfg.BaseURL = mc.BaseURL
	if mc.Timeout > 0 {
		cfg.Timeout = mc.Timeout
	}
	if mc.Temperature > 0 {
		cfg.Temperature = mc.Temperature
	}
	if mc.MaxTokens > 0 {
		cfg.MaxTokens = mc.MaxTokens
	}
	return cfg, nil
}
