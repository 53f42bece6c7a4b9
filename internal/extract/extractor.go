// Package extract turns acquired content into a bounded, importance-ranked
// set of verifiable claims.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ChenghengLi/AIvidence/internal/llm"
	"github.com/ChenghengLi/AIvidence/internal/model"
)

const extractInstruction = `You are an expert in fact-checking and misinformation detection. Your task is to identify specific, verifiable claims from a piece of web content, GIVE ME ONLY THE 5 MOST RELEVANT CLAIMS TO CHECK, focusing on statements that:

1. Make factual assertions that can be verified or disproven
2. Are specific rather than vague
3. Are meaningful and consequential to the topic
4. Might contain misinformation based on the domain analysis provided

For each claim, identify:
- The specific claim text
- Keywords that would be useful for verification
- Its importance on a scale of 1-10

Format your response as a JSON array of objects with this structure:
[
    {
        "claim": "The specific claim statement",
        "topic": "Specific subtopic of the claim",
        "keywords": ["keyword1", "keyword2", "keyword3"],
        "importance": 8
    }
]

Focus on the most important and potentially problematic claims. Include both:
- Claims that seem questionable or might be misinformation
- Important factual claims that should be verified even if they seem correct`

// Extractor produces candidate claims per content chunk via the oracle
type Extractor struct {
	oracle llm.Provider
	logger *zap.Logger
}

// NewExtractor creates a new claim extractor
func NewExtractor(oracle llm.Provider, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{oracle: oracle, logger: logger}
}

// ExtractBatches asks the oracle for candidate claims chunk by chunk.
// The returned outer slice is indexed by chunk, preserving chunk order for
// selection precedence. A chunk whose reply cannot be parsed contributes
// zero claims; this is logged, never fatal.
func (e *Extractor) ExtractBatches(ctx context.Context, chunks []string, profile model.DomainProfile) [][]model.Claim {
	batches := make([][]model.Claim, len(chunks))
	for i, chunk := range chunks {
		batches[i] = e.extractChunk(ctx, chunk, profile, i)
		e.logger.Debug("chunk processed",
			zap.Int("chunk", i+1), zap.Int("chunks", len(chunks)), zap.Int("claims", len(batches[i])))
	}
	return batches
}

// rawClaim mirrors the oracle's claim payload shape
type rawClaim struct {
	Claim      string   `json:"claim"`
	Topic      string   `json:"topic"`
	Keywords   []string `json:"keywords"`
	Importance int      `json:"importance"`
}

// extractChunk pulls candidate claims from one chunk
func (e *Extractor) extractChunk(ctx context.Context, chunk string, profile model.DomainProfile, chunkID int) []model.Claim {
	prompt := fmt.Sprintf(`CONTENT CHUNK:
%s

DOMAIN ANALYSIS:
Topic: %s
Verification Focus: %s
Red Flags: %s

Extract specific, verifiable claims from this content chunk,
prioritizing those that align with the verification focus and potential red flags.

Return the claims in the required JSON array format.`,
		chunk, profile.Topic,
		strings.Join(profile.VerificationFocus, ", "),
		strings.Join(profile.RedFlags, ", "))

	reply, err := e.oracle.Generate(ctx, prompt, extractInstruction)
	if err != nil {
		e.logger.Warn("claim extraction request failed for chunk",
			zap.Int("chunk", chunkID), zap.Error(err))
		return nil
	}

	payload, err := llm.ExtractJSON(reply)
	if err != nil {
		e.logger.Warn("claim extraction reply had no JSON payload",
			zap.Int("chunk", chunkID))
		return nil
	}

	var rawClaims []rawClaim
	if err := json.Unmarshal([]byte(payload), &rawClaims); err != nil {
		e.logger.Warn("claim extraction payload unparsable",
			zap.Int("chunk", chunkID), zap.Error(err))
		return nil
	}

	claims := make([]model.Claim, 0, len(rawClaims))
	for i, raw := range rawClaims {
		if strings.TrimSpace(raw.Claim) == "" {
			continue
		}
		topic := raw.Topic
		if topic == "" {
			topic = profile.Topic
		}
		claims = append(claims, model.Claim{
			ID:         fmt.Sprintf("claim_%d_%d", chunkID, i+1),
			Text:       raw.Claim,
			Topic:      topic,
			Keywords:   raw.Keywords,
			Importance: model.ClampImportance(raw.Importance),
		})
	}

	return claims
}
