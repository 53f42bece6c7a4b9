package extract

const (
	chunkSize    = 30000
	chunkOverlap = 1000
)

// SplitContent splits long content into overlapping chunks so each stays
// within the oracle's input limits. Content at or under the chunk size is
// returned as a single chunk; adjacent chunks share an overlap so claims
// spanning a boundary are not lost.
func SplitContent(content string) []string {
	if len(content) <= chunkSize {
		return []string{content}
	}

	step := chunkSize - chunkOverlap
	var chunks []string
	for start := 0; start < len(content); start += step {
		end := start + chunkSize
		if end >= len(content) {
			chunks = append(chunks, content[start:])
			break
		}
		chunks = append(chunks, content[start:end])
	}

	return chunks
}
