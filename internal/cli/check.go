package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChenghengLi/AIvidence/internal/llm"
	"github.com/ChenghengLi/AIvidence/internal/model"
	"github.com/ChenghengLi/AIvidence/internal/pipeline"
	"github.com/ChenghengLi/AIvidence/internal/report"
	"github.com/ChenghengLi/AIvidence/internal/scrape"
)

var (
	sourceKind    string
	maxClaims     int
	llmProvider   string
	llmModel      string
	llmBaseURL    string
	outputFile    string
	outputDir     string
	outJSON       string
	runTimeout    time.Duration
	userAgent     string
	respectRobots bool
	noCache       bool
	httpProxy     string
	httpsProxy    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <source>",
	Short: "Analyze a URL or HTML file for misinformation",
	Long: `Check runs the full analysis pipeline on a single source:
- Load content (direct fetch with a browser fallback for protected pages)
- Classify the content's topic domain
- Extract and rank verifiable claims
- Gather web evidence and score each claim
- Generate a trust report with summary and recommendations

Example:
  aividence check https://example.com/article
  aividence check page.html --kind file
  aividence check https://example.com -c 10 --provider anthropic --model claude-3-5-sonnet-20241022`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&sourceKind, "kind", "", "source kind: url or file (default: auto-detect)")
	checkCmd.Flags().IntVarP(&maxClaims, "max-claims", "c", pipeline.DefaultMaxClaims, "maximum number of claims to verify")

	// LLM flags
	checkCmd.Flags().StringVar(&llmProvider, "provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "LLM model name")
	checkCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "base URL for the LLM API (for Ollama models)")

	// Output flags
	checkCmd.Flags().StringVarP(&outputFile, "output", "o", "report.md", "output file for the markdown report")
	checkCmd.Flags().StringVarP(&outputDir, "output-dir", "d", "reports", "directory where reports are saved")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "also write a JSON report to this path")

	// HTTP flags
	checkCmd.Flags().DurationVar(&runTimeout, "timeout", 15*time.Minute, "overall analysis timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	checkCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "honor robots.txt before fetching")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the per-run page/query cache")
	checkCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	checkCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	source := args[0]

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

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	engine, err := pipeline.NewEngine(cfg, logger)
	if err != nil {
		return err
	}

	result, err := engine.Analyze(ctx, source, kind, maxClaims)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := report.NewRenderer(os.Stdout)
	mdPath := filepath.Join(outputDir, outputFile)
	if err := renderer.WriteMarkdown(result, mdPath); err != nil {
		return err
	}
	if outJSON != "" {
		if err := renderer.WriteJSON(result, outJSON); err != nil {
			return err
		}
	}

	fmt.Printf("Analysis complete! Report saved to %s\n", mdPath)
	renderer.PrintSummary(result)

	return nil
}

// buildConfig assembles the runtime configuration from defaults, flags,
// and environment variables
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.BaseURL = llmBaseURL
	cfg.Scrape.RespectRobots = respectRobots
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.Dir = outputDir
	cfg.Output.File = outputFile
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}

	kind, err := llm.ParseKind(llmProvider)
	if err != nil {
		return nil, err
	}
	switch kind {
	case llm.KindOpenAI:
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case llm.KindAnthropic:
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case llm.KindOllama:
		// No API key required; an empty base URL uses the local default
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}

	cfg.Search.APIKey = os.Getenv("BRAVE_API_KEY")
	if cfg.Search.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: BRAVE_API_KEY not set; evidence searches will fail and claims will score with low confidence")
	}

	return cfg, nil
}
