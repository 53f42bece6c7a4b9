package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChenghengLi/AIvidence/internal/model"
)

// Renderer writes analysis reports to files and prints the console summary
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing console output to out
// (os.Stdout in production).
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// WriteMarkdown renders the Markdown report to path, creating parent
// directories as needed
func (r *Renderer) WriteMarkdown(report *model.AnalysisReport, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderMarkdown(report)), 0o644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// WriteJSON renders the structured report to path
func (r *Renderer) WriteJSON(report *model.AnalysisReport, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// PrintSummary prints the run's console summary
func (r *Renderer) PrintSummary(report *model.AnalysisReport) {
	rule := strings.Repeat("-", 80)

	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintf(r.out, "Source: %s\n", report.Domain)
	fmt.Fprintf(r.out, "Topic: %s\n", report.Topic)
	fmt.Fprintf(r.out, "Overall Score: %.1f/5\n", report.OverallScore)
	fmt.Fprintf(r.out, "%s\n", rule)

	if report.HasRecentNews() {
		fmt.Fprintf(r.out, "\nWARNING: This analysis contains claims about recent events.\n")
		fmt.Fprintf(r.out, "Information available online may be limited or still evolving.\n")
		fmt.Fprintf(r.out, "Results should be interpreted with caution and reevaluated as more information becomes available.\n")
		fmt.Fprintf(r.out, "%s\n", rule)
	}
}

// SanitizeFilename makes a source identifier safe for use as a file name
func SanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}
	return s
}
