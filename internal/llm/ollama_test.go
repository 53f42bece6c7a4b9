package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "llama3.1:8b" {
			t.Errorf("model = %q, want %q", req.Model, "llama3.1:8b")
		}
		if req.Stream {
			t.Error("stream should be disabled")
		}

		_, _ = w.Write([]byte(`{"model": "llama3.1:8b", "response": "pong\n", "done": true}`))
	}))
	defer server.Close()

	p, err := NewOllamaProvider(Config{Model: "llama3.1:8b", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOllamaProvider error: %v", err)
	}

	got, err := p.Generate(context.Background(), "ping", "")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "pong" {
		t.Errorf("Generate = %q, want %q", got, "pong")
	}
}

func TestOllamaGenerateRequiresModel(t *testing.T) {
	p, err := NewOllamaProvider(Config{})
	if err != nil {
		t.Fatalf("NewOllamaProvider error: %v", err)
	}
	if _, err := p.Generate(context.Background(), "ping", ""); err == nil {
		t.Error("expected error without model")
	}
}

func TestOllamaGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	p, err := NewOllamaProvider(Config{Model: "missing", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOllamaProvider error: %v", err)
	}
	if _, err := p.Generate(context.Background(), "ping", ""); err == nil {
		t.Error("expected error from API")
	}
}
