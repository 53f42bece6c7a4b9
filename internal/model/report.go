package model

// AnalysisDateFormat is the timestamp layout stamped on reports.
const AnalysisDateFormat = "2006-01-02 15:04:05"

// AnalysisReport is the terminal artifact of an analysis run
type AnalysisReport struct {
	ID                string               `json:"id"` // Run identifier (UUID)
	Source            string               `json:"url"`
	Domain            string               `json:"domain"`
	Topic             string               `json:"topic"`
	ExpertiseRequired []string             `json:"domain_expertise_required"`
	OverallScore      float64              `json:"overall_score"` // 0-5, importance-weighted; 2.5 when no claims weighted
	Claims            []Claim              `json:"claims"`
	Results           []VerificationResult `json:"verification_results"`
	Summary           string               `json:"summary"`
	Recommendations   []string             `json:"recommendations"`
	AnalysisDate      string               `json:"analysis_date"`
}

// HasRecentNews reports whether any verification result carries the
// recency flag, which triggers the report's caveat banner.
func (r *AnalysisReport) HasRecentNews() bool {
	for _, result := range r.Results {
		if result.IsRecentNews {
			return true
		}
	}
	return false
}
