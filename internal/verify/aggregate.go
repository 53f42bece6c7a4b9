package verify

import (
	"math"

	"github.com/ChenghengLi/AIvidence/internal/model"
)

// neutralScore is the overall verdict when no claim carries any weight
const neutralScore = 2.5

// Aggregate computes the importance-weighted mean of per-claim scores,
// rounded to one decimal: sum(score*importance) / sum(importance).
// With zero total importance there is nothing to weigh and the verdict
// defaults to neutral.
func Aggregate(claims []model.Claim, results []model.VerificationResult) float64 {
	byID := make(map[string]model.VerificationResult, len(results))
	for _, result := range results {
		byID[result.ClaimID] = result
	}

	totalWeight := 0
	totalScore := 0.0
	for _, claim := range claims {
		totalWeight += claim.Importance
		if result, ok := byID[claim.ID]; ok {
			totalScore += result.Score * float64(claim.Importance)
		}
	}

	if totalWeight == 0 {
		return neutralScore
	}
	return math.Round(totalScore/float64(totalWeight)*10) / 10
}
