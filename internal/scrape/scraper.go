package scrape

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ChenghengLi/AIvidence/internal/cache"
	"github.com/ChenghengLi/AIvidence/internal/model"
	"github.com/ChenghengLi/AIvidence/internal/util"
)

// Scraper resolves a source to clean plain text using an ordered fallback
// chain: direct fetch first, full browser rendering when the fetch fails
// or hits bot protection. Local files get a single read with no fallback.
type Scraper struct {
	fetcher   *Fetcher
	browser   Browser
	robots    *util.RobotsChecker // nil unless robots.txt gating is enabled
	pageCache cache.Cache         // nil when caching is disabled
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewScraper builds the acquisition chain from configuration
func NewScraper(cfg *model.Config, browser Browser, pageCache cache.Cache, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}

	var robots *util.RobotsChecker
	if cfg.Scrape.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return &Scraper{
		fetcher:   NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy, logger),
		browser:   browser,
		robots:    robots,
		pageCache: pageCache,
		cacheTTL:  cfg.Cache.TTL,
		logger:    logger,
	}
}

// Acquire resolves a source to plain text. kind may be KindAuto to detect.
// Only acquisition failures are fatal for an analysis run, so errors here
// are deliberate: ErrAmbiguousSource for unclassifiable sources, otherwise
// an *AcquisitionError describing what every strategy saw.
func (s *Scraper) Acquire(ctx context.Context, source string, kind SourceKind) (string, error) {
	if kind == KindAuto {
		detected, err := DetectKind(source)
		if err != nil {
			return "", err
		}
		kind = detected
	}

	switch kind {
	case KindFile:
		return s.acquireFile(source)
	case KindURL:
		return s.acquireURL(ctx, source)
	default:
		return "", fmt.Errorf("invalid source kind: %q", kind)
	}
}

// acquireFile reads a local document. Local files are assumed reliable:
// any I/O or decode failure is final, with no retry and no fallback.
func (s *Scraper) acquireFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &AcquisitionError{Source: path, Attempts: []string{fmt.Sprintf("read file: %v", err)}}
	}
	if !utf8.Valid(raw) {
		return "", &AcquisitionError{Source: path, Attempts: []string{"file is not valid UTF-8 text"}}
	}

	text := ExtractText(string(raw))
	s.logger.Info("loaded content from file", zap.String("path", path), zap.Int("chars", len(text)))
	return text, nil
}

// acquireURL runs the two-tier strategy chain for a web source
func (s *Scraper) acquireURL(ctx context.Context, rawURL string) (string, error) {
	if s.robots != nil {
		allowed, err := s.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return "", &AcquisitionError{Source: rawURL, Attempts: []string{"disallowed by robots.txt"}}
		}
	}

	if text, ok := s.cachedPage(rawURL); ok {
		s.logger.Debug("page cache hit", zap.String("url", rawURL))
		return text, nil
	}

	var attempts []string

	// Strategy A: direct HTTP fetch
	content, err := s.fetcher.Fetch(ctx, rawURL)
	switch {
	case err != nil:
		attempts = append(attempts, fmt.Sprintf("direct fetch: %v", err))
		content = ""
	case IsBlocked(content):
		attempts = append(attempts, "direct fetch: bot-block signature detected")
		content = ""
	}

	// Strategy B: full browser rendering with JavaScript execution
	if content == "" {
		s.logger.Info("direct fetch failed or blocked, falling back to browser",
			zap.String("url", rawURL))

		rendered, err := s.browser.Render(ctx, rawURL)
		switch {
		case err != nil:
			attempts = append(attempts, fmt.Sprintf("browser: %v", err))
		case IsBlocked(rendered):
			attempts = append(attempts, "browser: bot-block signature detected")
		default:
			content = rendered
		}
	}

	if content == "" {
		return "", &AcquisitionError{Source: rawURL, Attempts: attempts}
	}

	text := ExtractText(content)
	s.storePage(rawURL, text)
	s.logger.Info("acquired content", zap.String("url", rawURL), zap.Int("chars", len(text)))
	return text, nil
}

func (s *Scraper) cachedPage(rawURL string) (string, bool) {
	if s.pageCache == nil {
		return "", false
	}
	raw, found := s.pageCache.Get(cache.Key("page", rawURL))
	if !found {
		return "", false
	}
	return string(raw), true
}

func (s *Scraper) storePage(rawURL, text string) {
	if s.pageCache == nil {
		return
	}
	_ = s.pageCache.Set(cache.Key("page", rawURL), []byte(text), s.cacheTTL)
}
