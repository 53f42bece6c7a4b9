// Package verify drives per-claim evidence gathering and oracle-based
// scoring, and aggregates per-claim scores into the overall verdict.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ChenghengLi/AIvidence/internal/llm"
	"github.com/ChenghengLi/AIvidence/internal/model"
)

const (
	maxQueries       = 5
	maxEvidenceChars = 6000

	// recencyConfidenceCap bounds confidence for claims about very recent
	// events, where coverage may still be thin.
	recencyConfidenceCap = 0.7

	recencyCaveat = "\n\nNote: This claim involves recent events, and information available online may be limited or still evolving. Verification is preliminary and should be revisited as more information becomes available."
)

const queryInstruction = `You are a fact-checking expert. Your task is to formulate effective search queries to verify a specific claim.

Create 1-2 search queries that:
1. Focus on the key factual elements of the claim
2. Use different phrasings and keywords to get diverse results
3. Include queries designed to find both supporting and contradicting evidence
4. Are specific enough to get relevant results

Return only the search queries, one per line. No explanations or other text.`

const scoreInstruction = `You are an expert fact-checker evaluating the veracity of a claim based on search results.
Carefully analyze the evidence and determine how well the claim is supported or contradicted.

Provide your analysis in JSON format with this structure:
{
    "score": 0-5 (0 = completely false, 5 = completely true),
    "confidence": 0-1 (your confidence in this assessment),
    "evidence": ["List", "of", "supporting", "evidence"],
    "contradictions": ["List", "of", "contradicting", "evidence"],
    "recency_factor": true/false (whether this is very recent news that might have limited coverage),
    "explanation": "Detailed explanation of your reasoning"
}

Consider:
- The reliability of sources (peer-reviewed journals, recognized authorities, etc.)
- The consistency of evidence across different sources
- The specificity and relevance of the information
- Any contradictions between sources
- The overall weight of evidence
- Recency of the information - for very recent news (past few days/weeks), there might be limited information available online and evaluations should acknowledge this with appropriate caution

If the claim involves recent events (past few days/weeks) that might not have extensive coverage yet,
explicitly acknowledge this in your explanation and adjust your confidence level accordingly.`

// Searcher is the evidence-search capability the verifier needs
type Searcher interface {
	Search(ctx context.Context, query string) []model.EvidenceItem
}

// Verifier checks a single claim against web evidence
type Verifier struct {
	oracle   llm.Provider
	searcher Searcher
	logger   *zap.Logger
	now      func() time.Time // injectable for tests
}

// NewVerifier creates a new claim verifier
func NewVerifier(oracle llm.Provider, searcher Searcher, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		oracle:   oracle,
		searcher: searcher,
		logger:   logger,
		now:      time.Now,
	}
}

// Verify gathers evidence for a claim and scores it. The result is always
// fully populated: oracle or parse failures substitute a neutral default
// rather than propagating, so one bad claim never aborts the run.
func (v *Verifier) Verify(ctx context.Context, claim model.Claim, profile model.DomainProfile) model.VerificationResult {
	queries := v.formulateQueries(ctx, claim)

	var evidence []model.EvidenceItem
	var sources []model.Source
	for _, query := range queries {
		results := v.searcher.Search(ctx, query)
		evidence = append(evidence, results...)
		for _, item := range results {
			sources = append(sources, model.Source{Title: item.Title, URL: item.URL})
		}
	}

	return v.scoreClaim(ctx, claim, profile, renderEvidence(evidence), sources, queries)
}

// formulateQueries asks the oracle for search queries derived from the
// claim text and keywords. On failure the claim text itself becomes the
// single query so verification can still proceed.
func (v *Verifier) formulateQueries(ctx context.Context, claim model.Claim) []string {
	prompt := fmt.Sprintf(`CLAIM: %s

TOPIC: %s

KEYWORDS: %s

Formulate 1-2 effective search queries to verify this claim.`,
		claim.Text, claim.Topic, strings.Join(claim.Keywords, ", "))

	reply, err := v.oracle.Generate(ctx, prompt, queryInstruction)
	if err != nil {
		v.logger.Warn("query formulation failed, falling back to claim text",
			zap.String("claim_id", claim.ID), zap.Error(err))
		return []string{claim.Text}
	}

	var queries []string
	for _, line := range strings.Split(reply, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			queries = append(queries, line)
		}
	}
	if len(queries) == 0 {
		return []string{claim.Text}
	}
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}
	return queries
}

// renderEvidence formats accumulated search results as a single text block
// bounded to the oracle's input budget
func renderEvidence(items []model.EvidenceItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "TITLE: %s\n", item.Title)
		fmt.Fprintf(&b, "SOURCE: %s\n", item.Source)
		fmt.Fprintf(&b, "URL: %s\n", item.URL)
		fmt.Fprintf(&b, "CONTENT: %s\n\n", item.Body)
	}

	rendered := b.String()
	if len(rendered) > maxEvidenceChars {
		rendered = rendered[:maxEvidenceChars] + "\n...[truncated]..."
	}
	return rendered
}

// scoreReply mirrors the oracle's scoring payload. Confidence is a pointer
// so a missing field can default to 0.5 rather than 0.
type scoreReply struct {
	Score          float64  `json:"score"`
	Confidence     *float64 `json:"confidence"`
	Evidence       []string `json:"evidence"`
	Contradictions []string `json:"contradictions"`
	RecencyFactor  bool     `json:"recency_factor"`
	Explanation    string   `json:"explanation"`
}

// scoreClaim asks the oracle to score the claim against the evidence block
func (v *Verifier) scoreClaim(ctx context.Context, claim model.Claim, profile model.DomainProfile,
	evidenceBlock string, sources []model.Source, queries []string) model.VerificationResult {

	prompt := fmt.Sprintf(`CLAIM TO VERIFY: %s

TOPIC: %s

DOMAIN EXPERTISE REQUIRED: %s

COMMON MISINFORMATION PATTERNS: %s

CURRENT DATE: %s

SEARCH RESULTS:
%s

Analyze these search results to determine the veracity of the claim.
Pay special attention to publication dates and whether this is very recent news, which might mean
limited information is available online. If the claim relates to very recent events, be explicit
about the limitations in verification and adjust your confidence accordingly.

Return your analysis in the required JSON format.`,
		claim.Text, claim.Topic,
		strings.Join(profile.ExpertiseRequired, ", "),
		strings.Join(profile.MisinformationPatterns, ", "),
		v.now().Format("2006-01-02"),
		evidenceBlock)

	reply, err := v.oracle.Generate(ctx, prompt, scoreInstruction)
	if err != nil {
		v.logger.Warn("verification scoring request failed, substituting neutral result",
			zap.String("claim_id", claim.ID), zap.Error(err))
		return neutralResult(claim, queries, "Analysis failed due to an error.")
	}

	payload, err := llm.ExtractJSON(reply)
	if err != nil {
		v.logger.Warn("verification reply had no JSON payload, substituting neutral result",
			zap.String("claim_id", claim.ID))
		return neutralResult(claim, queries, "Analysis failed to provide a clear determination.")
	}

	var analysis scoreReply
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		v.logger.Warn("verification payload unparsable, substituting neutral result",
			zap.String("claim_id", claim.ID), zap.Error(err))
		return neutralResult(claim, queries, "Analysis failed to provide a clear determination.")
	}

	confidence := 0.5
	if analysis.Confidence != nil {
		confidence = clamp(*analysis.Confidence, 0, 1)
	}

	explanation := analysis.Explanation
	if explanation == "" {
		explanation = "No explanation provided"
	}

	if analysis.RecencyFactor {
		if !strings.Contains(strings.ToLower(explanation), "recent") {
			explanation += recencyCaveat
		}
		if confidence > recencyConfidenceCap {
			confidence = recencyConfidenceCap
		}
	}

	result := model.VerificationResult{
		ClaimID:        claim.ID,
		Claim:          claim.Text,
		Score:          clamp(analysis.Score, 0, 5),
		Confidence:     confidence,
		Evidence:       analysis.Evidence,
		Contradictions: analysis.Contradictions,
		Sources:        dedupeSources(sources),
		SearchQueries:  queries,
		Explanation:    explanation,
		IsRecentNews:   analysis.RecencyFactor,
	}

	v.logger.Info("claim verified",
		zap.String("claim_id", claim.ID),
		zap.Float64("score", result.Score),
		zap.Float64("confidence", result.Confidence))
	return result
}

// neutralResult is the documented default when scoring fails
func neutralResult(claim model.Claim, queries []string, explanation string) model.VerificationResult {
	return model.VerificationResult{
		ClaimID:        claim.ID,
		Claim:          claim.Text,
		Score:          2.5,
		Confidence:     0.3,
		Evidence:       []string{},
		Contradictions: []string{},
		Sources:        []model.Source{{Title: "No sources found", URL: "#"}},
		SearchQueries:  queries,
		Explanation:    explanation,
	}
}

// dedupeSources keeps the first occurrence of each URL, dropping entries
// with no URL at all
func dedupeSources(sources []model.Source) []model.Source {
	seen := make(map[string]struct{}, len(sources))
	unique := make([]model.Source, 0, len(sources))
	for _, source := range sources {
		if source.URL == "" {
			continue
		}
		if _, dup := seen[source.URL]; dup {
			continue
		}
		seen[source.URL] = struct{}{}
		if source.Title == "" {
			source.Title = "Source"
		}
		unique = append(unique, source)
	}
	return unique
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
