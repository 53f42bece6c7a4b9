// Package pipeline sequences the analysis stages: acquire content,
// classify its domain, extract and select claims, verify each claim, and
// assemble the final report.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ChenghengLi/AIvidence/internal/cache"
	"github.com/ChenghengLi/AIvidence/internal/extract"
	"github.com/ChenghengLi/AIvidence/internal/llm"
	"github.com/ChenghengLi/AIvidence/internal/model"
	"github.com/ChenghengLi/AIvidence/internal/profile"
	"github.com/ChenghengLi/AIvidence/internal/report"
	"github.com/ChenghengLi/AIvidence/internal/scrape"
	"github.com/ChenghengLi/AIvidence/internal/search"
	"github.com/ChenghengLi/AIvidence/internal/verify"
)

// DefaultMaxClaims bounds how many claims a run verifies unless overridden
const DefaultMaxClaims = 5

// Engine owns one analysis run's component instances. Runs are strictly
// sequential: each stage consumes its predecessor's output, and claim k+1
// is not verified before claim k's result exists.
type Engine struct {
	scraper   *scrape.Scraper
	profiler  *profile.Analyzer
	extractor *extract.Extractor
	verifier  *verify.Verifier
	builder   *report.Builder
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine wires a fresh set of components from configuration
func NewEngine(cfg *model.Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	llmConfig, err := llm.ConfigFromModel(cfg.LLM)
	if err != nil {
		return nil, err
	}
	llmConfig.HTTPProxy = cfg.HTTP.HTTPProxy
	llmConfig.HTTPSProxy = cfg.HTTP.HTTPSProxy
	llmConfig.NoProxy = cfg.HTTP.NoProxy

	oracle, err := llm.New(llmConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	var runCache cache.Cache
	if cfg.Cache.Enabled {
		runCache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	searchClient := search.NewClient(search.Config{
		APIURL:       cfg.Search.APIURL,
		APIKey:       cfg.Search.APIKey,
		MaxResults:   cfg.Search.MaxResults,
		Timeout:      cfg.Search.Timeout,
		MaxRetries:   cfg.Search.MaxRetries,
		RetryDelay:   cfg.Search.RetryDelay,
		CallInterval: cfg.Search.CallInterval,
	}, runCache, cfg.Cache.TTL, logger.Named("search"))

	browser := scrape.NewChromeBrowser(cfg.HTTP.UserAgent, cfg.Scrape.BrowserWait, cfg.Scrape.BrowserLimit, logger.Named("browser"))

	return &Engine{
		scraper:   scrape.NewScraper(cfg, browser, runCache, logger.Named("scrape")),
		profiler:  profile.NewAnalyzer(oracle, logger.Named("profile")),
		extractor: extract.NewExtractor(oracle, logger.Named("extract")),
		verifier:  verify.NewVerifier(oracle, searchClient, logger.Named("verify")),
		builder:   report.NewBuilder(oracle, logger.Named("report")),
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Analyze runs the full pipeline for one source. Only acquisition-stage
// failures abort the run; oracle and search failures downstream are
// absorbed by their components.
func (e *Engine) Analyze(ctx context.Context, source string, kind scrape.SourceKind, maxClaims int) (*model.AnalysisReport, error) {
	if maxClaims <= 0 {
		maxClaims = DefaultMaxClaims
	}

	e.logger.Info("starting analysis", zap.String("source", source))

	if kind == scrape.KindAuto {
		detected, err := scrape.DetectKind(source)
		if err != nil {
			return nil, err
		}
		kind = detected
	}

	content, err := e.scraper.Acquire(ctx, source, kind)
	if err != nil {
		return nil, fmt.Errorf("acquire content: %w", err)
	}

	// File sources get a pseudo-URL identifier for profiling and the report
	sourceID := source
	if kind == scrape.KindFile {
		sourceID = "file://" + filepath.Base(source)
	}

	domainProfile := e.profiler.Analyze(ctx, sourceID, content)

	chunks := extract.SplitContent(content)
	batches := e.extractor.ExtractBatches(ctx, chunks, domainProfile)
	claims := extract.Select(batches, maxClaims)
	e.logger.Info("claims selected", zap.Int("count", len(claims)))

	results := make([]model.VerificationResult, 0, len(claims))
	for _, claim := range claims {
		e.logger.Info("verifying claim", zap.String("claim_id", claim.ID), zap.String("claim", claim.Text))
		results = append(results, e.verifier.Verify(ctx, claim, domainProfile))
	}

	overallScore := verify.Aggregate(claims, results)

	summary := e.builder.Summary(ctx, domainProfile, results, overallScore)
	recommendations := e.builder.Recommendations(ctx, domainProfile, results, overallScore)

	analysisReport := &model.AnalysisReport{
		ID:                uuid.NewString(),
		Source:            sourceID,
		Domain:            domainProfile.Domain,
		Topic:             domainProfile.Topic,
		ExpertiseRequired: domainProfile.ExpertiseRequired,
		OverallScore:      overallScore,
		Claims:            claims,
		Results:           results,
		Summary:           summary,
		Recommendations:   recommendations,
		AnalysisDate:      e.now().Format(model.AnalysisDateFormat),
	}

	e.logger.Info("analysis complete",
		zap.String("source", sourceID),
		zap.Float64("overall_score", overallScore),
		zap.Int("claims", len(claims)))
	return analysisReport, nil
}
