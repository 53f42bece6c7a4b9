// Package profile classifies content into a topic domain and derives the
// verification strategy downstream stages rely on.
package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ChenghengLi/AIvidence/internal/llm"
	"github.com/ChenghengLi/AIvidence/internal/model"
	"github.com/ChenghengLi/AIvidence/internal/scrape"
)

const analyzeInstruction = `You are an expert in information analysis and fact-checking. Your task is to analyze a website's content to determine its domain/topic and what types of claims would require verification.

Consider:
1. What is the main topic or domain of this website?
2. What expertise would be needed to properly verify information in this domain?
3. What are common misinformation patterns in this domain?
4. What types of claims should be verified in this content?

Format your response as a JSON object with the following structure:
{
    "domain": "Domain name extracted from URL",
    "topic": "Main topic of the website",
    "domain_expertise_required": ["List", "of", "expertise", "fields"],
    "misinformation_patterns": ["Common", "patterns", "in", "this", "domain"],
    "verification_focus": ["Key", "areas", "to", "verify"],
    "red_flags": ["Potential", "indicators", "of", "misinformation"]
}`

// Analyzer determines a content source's domain profile via the oracle
type Analyzer struct {
	oracle llm.Provider
	logger *zap.Logger
}

// NewAnalyzer creates a new domain analyzer
func NewAnalyzer(oracle llm.Provider, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{oracle: oracle, logger: logger}
}

// Analyze classifies the content's domain and topic. Classification is
// best-effort: any oracle or parse failure degrades to the default profile
// for the source's domain, never to an error.
func (a *Analyzer) Analyze(ctx context.Context, sourceURL, content string) model.DomainProfile {
	domain := scrape.DomainOf(sourceURL)

	prompt := fmt.Sprintf(`Website URL: %s

Website content:
%s

Analyze this website to determine its domain/topic and what should be verified.
Return your analysis in the required JSON format.`, sourceURL, summarize(content))

	reply, err := a.oracle.Generate(ctx, prompt, analyzeInstruction)
	if err != nil {
		a.logger.Warn("domain analysis request failed, using default profile",
			zap.String("domain", domain), zap.Error(err))
		return model.DefaultProfile(domain)
	}

	payload, err := llm.ExtractJSON(reply)
	if err != nil {
		a.logger.Warn("domain analysis reply had no JSON payload, using default profile",
			zap.String("domain", domain))
		return model.DefaultProfile(domain)
	}

	var profile model.DomainProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		a.logger.Warn("domain analysis payload unparsable, using default profile",
			zap.String("domain", domain), zap.Error(err))
		return model.DefaultProfile(domain)
	}

	if profile.Domain == "" {
		profile.Domain = domain
	}
	if profile.Topic == "" {
		profile.Topic = "Unknown"
	}

	a.logger.Info("domain analysis complete",
		zap.String("domain", profile.Domain), zap.String("topic", profile.Topic))
	return profile
}

// summarize bounds long content to its head and tail so the oracle input
// stays within limits
func summarize(content string) string {
	if len(content) <= 8000 {
		return content
	}
	return content[:4000] + "\n\n[...]\n\n" + content[len(content)-4000:]
}
