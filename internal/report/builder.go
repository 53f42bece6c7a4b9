// Package report turns a finished analysis into its human-readable and
// machine-readable artifacts.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ChenghengLi/AIvidence/internal/llm"
	"github.com/ChenghengLi/AIvidence/internal/model"
)

const summaryInstruction = `You are a misinformation analysis expert. Create a concise summary of the website analysis based on the verification results and domain analysis.

Your summary should:
1. Highlight the overall trustworthiness of the website
2. Note major patterns of accurate or inaccurate information
3. Identify specific areas of concern if any
4. Be objective and evidence-based
5. Be approximately 150-250 words`

const recommendInstruction = `You are a media literacy expert. Provide practical recommendations for readers about how to approach this website's information based on the analysis results.

Your recommendations should:
1. Be actionable and specific
2. Help readers critically evaluate the information
3. Suggest additional sources or verification methods if needed
4. Be proportionate to the severity of misinformation found

Return a list of 3-5 recommendations, each as a complete sentence.
Format as a plain list, one recommendation per line.`

const fallbackSummary = "Summary generation was unavailable for this analysis. Review the per-claim verification details below for the evidence gathered on each claim."

var fallbackRecommendations = []string{
	"Cross-check important claims from this content against independent, authoritative sources.",
	"Treat claims without cited sources with extra caution.",
	"Revisit this analysis later; verification of recent claims may improve as more information becomes available.",
}

// bulletPrefix strips leading list markers from recommendation lines
var bulletPrefix = regexp.MustCompile(`^[-*•]?\s*`)

// Builder generates the report's summary and recommendations via the oracle
type Builder struct {
	oracle llm.Provider
	logger *zap.Logger
}

// NewBuilder creates a new report builder
func NewBuilder(oracle llm.Provider, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{oracle: oracle, logger: logger}
}

// Summary generates the analysis summary. Oracle failures degrade to a
// fixed fallback sentence, never to an error.
func (b *Builder) Summary(ctx context.Context, profile model.DomainProfile, results []model.VerificationResult, overallScore float64) string {
	type resultDigest struct {
		Claim       string  `json:"claim"`
		Score       float64 `json:"score"`
		Explanation string  `json:"explanation"`
	}
	digests := make([]resultDigest, 0, len(results))
	for _, r := range results {
		digests = append(digests, resultDigest{Claim: r.Claim, Score: r.Score, Explanation: r.Explanation})
	}
	formatted, err := json.MarshalIndent(digests, "", "  ")
	if err != nil {
		formatted = []byte("[]")
	}

	prompt := fmt.Sprintf(`DOMAIN TOPIC: %s

OVERALL SCORE: %.1f/5

COMMON MISINFORMATION PATTERNS: %s

VERIFICATION RESULTS:
%s

Generate a concise summary of this website's information quality and trustworthiness.`,
		profile.Topic, overallScore,
		strings.Join(profile.MisinformationPatterns, ", "),
		formatted)

	reply, err := b.oracle.Generate(ctx, prompt, summaryInstruction)
	if err != nil || strings.TrimSpace(reply) == "" {
		b.logger.Warn("summary generation failed, using fallback", zap.Error(err))
		return fallbackSummary
	}
	return strings.TrimSpace(reply)
}

// Recommendations generates reader recommendations, one per line, with
// bullet markers stripped. Oracle failures degrade to a fixed list.
func (b *Builder) Recommendations(ctx context.Context, profile model.DomainProfile, results []model.VerificationResult, overallScore float64) []string {
	high, mid, low := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Score >= 4:
			high++
		case r.Score >= 2:
			mid++
		default:
			low++
		}
	}

	prompt := fmt.Sprintf(`WEBSITE OVERALL SCORE: %.1f/5

RED FLAGS IDENTIFIED: %s

VERIFICATION RESULTS SUMMARY:
- Claims with high trustworthiness (4-5): %d
- Claims with moderate trustworthiness (2-3): %d
- Claims with low trustworthiness (0-1): %d

Provide 3-5 practical recommendations for readers about how to approach information on this website.`,
		overallScore, strings.Join(profile.RedFlags, ", "), high, mid, low)

	reply, err := b.oracle.Generate(ctx, prompt, recommendInstruction)
	if err != nil {
		b.logger.Warn("recommendation generation failed, using fallback", zap.Error(err))
		return fallbackRecommendations
	}

	var recommendations []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		recommendations = append(recommendations, bulletPrefix.ReplaceAllString(line, ""))
	}
	if len(recommendations) == 0 {
		return fallbackRecommendations
	}
	return recommendations
}
