package profile

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fixedOracle returns one reply, or fails every call
type fixedOracle struct {
	reply  string
	err    error
	prompt string
}

func (o *fixedOracle) Name() string { return "fixed" }

func (o *fixedOracle) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	o.prompt = prompt
	return o.reply, o.err
}

func TestAnalyze(t *testing.T) {
	oracle := &fixedOracle{reply: `Here is my analysis:
{
  "domain": "health-news.example",
  "topic": "Alternative medicine",
  "domain_expertise_required": ["Medicine"],
  "misinformation_patterns": ["Miracle cures"],
  "verification_focus": ["Treatment claims"],
  "red_flags": ["No citations"]
}`}

	a := NewAnalyzer(oracle, zap.NewNop())
	p := a.Analyze(context.Background(), "https://health-news.example/article", "page content")

	if p.Topic != "Alternative medicine" {
		t.Errorf("Topic = %q", p.Topic)
	}
	if len(p.RedFlags) != 1 || p.RedFlags[0] != "No citations" {
		t.Errorf("RedFlags = %v", p.RedFlags)
	}
}

func TestAnalyzeFillsMissingFields(t *testing.T) {
	oracle := &fixedOracle{reply: `{"misinformation_patterns": ["clickbait"]}`}

	a := NewAnalyzer(oracle, zap.NewNop())
	p := a.Analyze(context.Background(), "https://www.example.com/post", "content")

	if p.Domain != "example.com" {
		t.Errorf("Domain = %q, want %q", p.Domain, "example.com")
	}
	if p.Topic != "Unknown" {
		t.Errorf("Topic = %q, want %q", p.Topic, "Unknown")
	}
}

func TestAnalyzeOracleErrorUsesDefault(t *testing.T) {
	oracle := &fixedOracle{err: fmt.Errorf("oracle down")}

	a := NewAnalyzer(oracle, zap.NewNop())
	p := a.Analyze(context.Background(), "https://example.com", "content")

	if p.Domain != "example.com" || p.Topic != "Unknown" {
		t.Errorf("got %+v, want default profile", p)
	}
	if len(p.VerificationFocus) == 0 {
		t.Error("default profile must carry a verification focus")
	}
}

func TestAnalyzeUnparsableReplyUsesDefault(t *testing.T) {
	oracle := &fixedOracle{reply: "I cannot classify this content."}

	a := NewAnalyzer(oracle, zap.NewNop())
	p := a.Analyze(context.Background(), "https://example.com", "content")

	if p.Topic != "Unknown" {
		t.Errorf("Topic = %q, want default", p.Topic)
	}
}

func TestAnalyzeSummarizesLongContent(t *testing.T) {
	oracle := &fixedOracle{reply: `{"topic": "x"}`}
	content := strings.Repeat("a", 5000) + strings.Repeat("b", 5000)

	a := NewAnalyzer(oracle, zap.NewNop())
	a.Analyze(context.Background(), "https://example.com", content)

	if !strings.Contains(oracle.prompt, "[...]") {
		t.Error("long content should be summarized with an elision marker")
	}
	if strings.Contains(oracle.prompt, strings.Repeat("a", 4001)) {
		t.Error("head should be capped at 4000 chars")
	}
}

func TestSummarizeShortContentUnchanged(t *testing.T) {
	content := strings.Repeat("a", 8000)
	if got := summarize(content); got != content {
		t.Error("content at the limit should pass through unchanged")
	}
}
