package model

// EvidenceItem represents one web search result used as input to claim scoring
type EvidenceItem struct {
	Title  string `json:"title"`            // Result title
	Body   string `json:"body"`             // Snippet or description text
	URL    string `json:"url"`              // May be empty on oracle malfunction
	Source string `json:"source,omitempty"` // Domain the result came from
}

// Source is a deduplicated citation entry attached to a verification result
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
