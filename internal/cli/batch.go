package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ChenghengLi/AIvidence/internal/pipeline"
	"github.com/ChenghengLi/AIvidence/internal/report"
	"github.com/ChenghengLi/AIvidence/internal/scrape"
	"github.com/ChenghengLi/AIvidence/internal/worker"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze every source listed in a file",
	Long: `Batch reads sources (URLs or HTML file paths) from a text file, one per
line, and runs the full analysis pipeline on each in order. Blank lines
and lines starting with # are skipped; duplicate sources are analyzed
only once. One report is written per source.

Example:
  aividence batch sources.txt -d reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&sourceKind, "kind", "", "source kind: url or file (default: auto-detect)")
	batchCmd.Flags().IntVarP(&maxClaims, "max-claims", "c", pipeline.DefaultMaxClaims, "maximum number of claims to verify per source")
	batchCmd.Flags().StringVar(&llmProvider, "provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "LLM model name")
	batchCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "base URL for the LLM API (for Ollama models)")
	batchCmd.Flags().StringVarP(&outputDir, "output-dir", "d", "reports", "directory where reports are saved")
	batchCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "honor robots.txt before fetching")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the per-run page/query cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	sources, err := worker.ReadSources(args[0])
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources found in %s", args[0])
	}

	kind, err := scrape.ParseSourceKind(sourceKind)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	renderer := report.NewRenderer(os.Stdout)
	failed := 0

	for i, source := range sources {
		fmt.Printf("[%d/%d] %s\n", i+1, len(sources), source)

		// A fresh engine per source keeps caches and rate limiters from
		// leaking state between analyses.
		engine, err := pipeline.NewEngine(cfg, logger)
		if err != nil {
			return err
		}

		result, err := engine.Analyze(context.Background(), source, kind, maxClaims)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  error: %v\n", err)
			failed++
			continue
		}

		name := report.SanitizeFilename(source) + ".md"
		path := filepath.Join(outputDir, name)
		if err := renderer.WriteMarkdown(result, path); err != nil {
			fmt.Fprintf(os.Stderr, "  error: %v\n", err)
			failed++
			continue
		}
		fmt.Printf("  report saved to %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(sources))
	}
	return nil
}
