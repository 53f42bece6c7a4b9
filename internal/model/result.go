package model

// VerificationResult represents the outcome of verifying a single claim.
// Score and Confidence are always populated, even when the oracle fails;
// callers never see a partially-filled result.
type VerificationResult struct {
	ClaimID        string   `json:"claim_id"`
	Claim          string   `json:"claim"`
	Score          float64  `json:"score"`      // 0-5, 0 = completely false, 5 = completely true
	Confidence     float64  `json:"confidence"` // 0-1
	Evidence       []string `json:"evidence"`
	Contradictions []string `json:"contradictions"`
	Sources        []Source `json:"sources"` // Unique by URL, first-seen order
	SearchQueries  []string `json:"search_queries"`
	Explanation    string   `json:"explanation"`
	IsRecentNews   bool     `json:"is_recent_news"` // Claim concerns very recent events
}
