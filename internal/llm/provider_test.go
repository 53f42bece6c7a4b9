package llm

import (
	"testing"
	"time"

	"github.com/ChenghengLi/AIvidence/internal/model"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"openai", KindOpenAI, false},
		{"OpenAI", KindOpenAI, false},
		{"anthropic", KindAnthropic, false},
		{"claude", KindAnthropic, false},
		{"ollama", KindOllama, false},
		{" ollama ", KindOllama, false},
		{"", "", true},
		{"gpt-4o-mini", "", true}, // model names are not provider names
		{"gemini", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q) = %v, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfigFromModel(t *testing.T) {
	mc := model.LLMConfig{
		Provider:    "anthropic",
		Model:       "claude-3-5-sonnet-20241022",
		APIKey:      "test-key",
		Timeout:     30 * time.Second,
		Temperature: 0.2,
		MaxTokens:   1000,
	}

	cfg, err := ConfigFromModel(mc)
	if err != nil {
		t.Fatalf("ConfigFromModel error: %v", err)
	}
	if cfg.Kind != KindAnthropic {
		t.Errorf("Kind = %v, want %v", cfg.Kind, KindAnthropic)
	}
	if cfg.Model != mc.Model {
		t.Errorf("Model = %q, want %q", cfg.Model, mc.Model)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestConfigFromModelDefaults(t *testing.T) {
	cfg, err := ConfigFromModel(model.LLMConfig{Provider: "openai"})
	if err != nil {
		t.Fatalf("ConfigFromModel error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Model != def.Model {
		t.Errorf("Model = %q, want default %q", cfg.Model, def.Model)
	}
	if cfg.Timeout != def.Timeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Timeout, def.Timeout)
	}
}

func TestConfigFromModelUnknownProvider(t *testing.T) {
	if _, err := ConfigFromModel(model.LLMConfig{Provider: "bard"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New(Config{Kind: Kind("mystery")}); err == nil {
		t.Error("expected error for unknown kind")
	}
}
