package extract

import (
	"sort"
	"strings"

	"github.com/ChenghengLi/AIvidence/internal/model"
)

// Select flattens per-chunk candidate batches into the final bounded claim
// set. Candidates accumulate chunk by chunk and stop as soon as maxClaims
// is reached, truncating the final chunk's contribution — chunk order
// decides precedence when short-circuiting. Duplicates (case-insensitive
// exact text) keep their first occurrence. The surviving set is sorted
// descending by importance and truncated to maxClaims.
func Select(batches [][]model.Claim, maxClaims int) []model.Claim {
	if maxClaims <= 0 {
		return []model.Claim{}
	}

	var picked []model.Claim
accumulate:
	for _, batch := range batches {
		for _, claim := range batch {
			picked = append(picked, claim)
			if len(picked) >= maxClaims {
				break accumulate
			}
		}
	}

	seen := make(map[string]struct{}, len(picked))
	unique := picked[:0]
	for _, claim := range picked {
		key := strings.ToLower(claim.Text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, claim)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Importance > unique[j].Importance
	})

	if len(unique) > maxClaims {
		unique = unique[:maxClaims]
	}
	return unique
}
