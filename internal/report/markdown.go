package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ChenghengLi/AIvidence/internal/model"
)

// RenderMarkdown produces the full Markdown report: header, optional
// recency banner, summary, most-concerning and most-accurate claims, full
// per-claim verification detail, and reader recommendations.
func RenderMarkdown(r *model.AnalysisReport) string {
	var b strings.Builder

	b.WriteString("# Misinformation Analysis Report\n\n")
	fmt.Fprintf(&b, "## Website: [%s](%s)\n\n", r.Domain, r.Source)
	fmt.Fprintf(&b, "**Topic:** %s\n\n", r.Topic)
	fmt.Fprintf(&b, "**Overall Truthfulness Score:** %.1f/5\n\n", r.OverallScore)
	fmt.Fprintf(&b, "**Analysis Date:** %s\n\n", r.AnalysisDate)

	if r.HasRecentNews() {
		b.WriteString("⚠️ **RECENCY WARNING** ⚠️\n\n")
		b.WriteString("_This analysis contains claims about very recent events. Information available online may be limited or still evolving. ")
		b.WriteString("Results should be interpreted with caution and reevaluated as more information becomes available._\n\n")
		b.WriteString("---\n\n")
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "%s\n\n", r.Summary)

	sorted := make([]model.VerificationResult, len(r.Results))
	copy(sorted, r.Results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	if len(sorted) > 0 {
		b.WriteString("## Most Concerning Claims\n\n")
		for _, result := range sorted[:minInt(3, len(sorted))] {
			writeRankedClaim(&b, result, result.Contradictions, "Contradicting Evidence")
		}

		b.WriteString("## Most Accurate Claims\n\n")
		top := sorted[maxInt(0, len(sorted)-3):]
		for i := len(top) - 1; i >= 0; i-- {
			result := top[i]
			evidence := result.Evidence
			if len(evidence) > 3 {
				evidence = evidence[:3]
			}
			writeRankedClaim(&b, result, evidence, "Supporting Evidence")
		}
	}

	b.WriteString("## All Claims Verification Details\n\n")
	for i, result := range r.Results {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, result.Claim)
		fmt.Fprintf(&b, "**Truthfulness Score:** %.1f/5 (Confidence: %.2f)\n\n", result.Score, result.Confidence)
		fmt.Fprintf(&b, "**Explanation:** %s\n\n", result.Explanation)

		writeList(&b, "Supporting Evidence", result.Evidence)
		writeList(&b, "Contradicting Evidence", result.Contradictions)

		b.WriteString("**Search Verification:**\n\n")
		b.WriteString("*Search Queries:*\n\n")
		for _, query := range result.SearchQueries {
			fmt.Fprintf(&b, "- %s\n", query)
		}
		b.WriteString("\n**Sources:**\n\n")
		for _, source := range result.Sources {
			fmt.Fprintf(&b, "- [%s](%s)\n", source.Title, source.URL)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommendations for Readers\n\n")
	for _, recommendation := range r.Recommendations {
		fmt.Fprintf(&b, "- %s\n", recommendation)
	}

	return b.String()
}

// writeRankedClaim renders one entry of the concerning/accurate sections,
// with sources capped at 5
func writeRankedClaim(b *strings.Builder, result model.VerificationResult, items []string, itemsTitle string) {
	fmt.Fprintf(b, "### Claim: %s\n\n", result.Claim)
	fmt.Fprintf(b, "**Truthfulness Score:** %.1f/5\n\n", result.Score)
	fmt.Fprintf(b, "**Explanation:** %s\n\n", result.Explanation)

	writeList(b, itemsTitle, items)

	b.WriteString("**Search Verification:**\n\n")
	fmt.Fprintf(b, "*Search Queries:* %s\n\n", strings.Join(result.SearchQueries, ", "))
	b.WriteString("**Sources:**\n\n")
	sources := result.Sources
	if len(sources) > 5 {
		sources = sources[:5]
	}
	for _, source := range sources {
		fmt.Fprintf(b, "- [%s](%s)\n", source.Title, source.URL)
	}
	b.WriteString("\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:**\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
