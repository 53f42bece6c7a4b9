package model

// DomainProfile describes the content's topic domain and what should be
// verified in it. Produced once per run and read by all downstream stages.
type DomainProfile struct {
	Domain                 string   `json:"domain"`
	Topic                  string   `json:"topic"`
	ExpertiseRequired      []string `json:"domain_expertise_required"`
	MisinformationPatterns []string `json:"misinformation_patterns"`
	VerificationFocus      []string `json:"verification_focus"`
	RedFlags               []string `json:"red_flags"`
}

// DefaultProfile returns the fallback profile used when domain
// classification fails.
func DefaultProfile(domain string) DomainProfile {
	return DomainProfile{
		Domain:                 domain,
		Topic:                  "Unknown",
		ExpertiseRequired:      []string{"General knowledge"},
		MisinformationPatterns: []string{"Unverified claims"},
		VerificationFocus:      []string{"Factual accuracy"},
		RedFlags:               []string{"Lack of sources"},
	}
}
