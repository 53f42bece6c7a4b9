package model

// Claim represents a single verifiable factual assertion extracted from content
type Claim struct {
	ID         string   `json:"id"`         // Unique within a run, e.g. "claim_0_1"
	Text       string   `json:"claim"`      // The claim statement itself
	Topic      string   `json:"topic"`      // Subtopic the claim belongs to
	Keywords   []string `json:"keywords"`   // Keywords useful for verification
	Importance int      `json:"importance"` // 1-10, drives weighting and ranking
}

// ClampImportance bounds an importance value to the valid 1-10 range.
// Zero (unset) maps to the neutral default of 5.
func ClampImportance(importance int) int {
	switch {
	case importance == 0:
		return 5
	case importance < 1:
		return 1
	case importance > 10:
		return 10
	default:
		return importance
	}
}
