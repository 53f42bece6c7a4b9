package search

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ChenghengLi/AIvidence/internal/cache"
	"github.com/ChenghengLi/AIvidence/internal/model"
	"github.com/ChenghengLi/AIvidence/internal/worker"
)

// searchSleepFunc is the sleep function used between retries (injectable for tests)
var searchSleepFunc = time.Sleep

// Config holds evidence-search client configuration
type Config struct {
	APIURL       string
	APIKey       string
	MaxResults   int
	Timeout      time.Duration // Hard deadline per attempt
	MaxRetries   int           // Total attempts before giving up
	RetryDelay   time.Duration
	CallInterval time.Duration // Minimum spacing between remote calls
}

// DefaultConfig returns sensible defaults matching the Brave Search API policy
func DefaultConfig() Config {
	return Config{
		APIURL:       "https://api.search.brave.com/res/v1/web/search",
		MaxResults:   5,
		Timeout:      10 * time.Second,
		MaxRetries:   3,
		RetryDelay:   10 * time.Second,
		CallInterval: 1500 * time.Millisecond,
	}
}

// Client searches the web for claim evidence via the Brave Search API.
// Failures never propagate: after exhausting retries a search degrades to
// an empty result list, which downstream stages treat as absent evidence.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *worker.Limiter
	cache      cache.Cache // nil when caching is disabled
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewClient creates a new evidence-search client
func NewClient(config Config, queryCache cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Client {
	if config.APIURL == "" {
		config.APIURL = DefaultConfig().APIURL
	}
	if config.MaxResults <= 0 {
		config.MaxResults = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			// No client-level timeout: each attempt is bounded by the
			// deadline task instead.
			Timeout: 0,
		},
		limiter:  worker.NewLimiter(config.CallInterval),
		cache:    queryCache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Search issues a single query and returns its results in order.
// An empty result list is a valid outcome, not an error.
func (c *Client) Search(ctx context.Context, query string) []model.EvidenceItem {
	if items, ok := c.cachedResults(query); ok {
		c.logger.Debug("search cache hit", zap.String("query", query))
		return items
	}

	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			c.logger.Warn("search rate-limit wait cancelled", zap.String("query", query), zap.Error(err))
			return []model.EvidenceItem{}
		}

		items, err := worker.RunWithDeadline(ctx, c.config.Timeout, func(runCtx context.Context) ([]model.EvidenceItem, error) {
			return c.doSearch(runCtx, query)
		})
		if err == nil {
			c.storeResults(query, items)
			return items
		}

		c.logger.Warn("search attempt failed",
			zap.String("query", query),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.config.MaxRetries),
			zap.Error(err))

		if attempt < c.config.MaxRetries {
			searchSleepFunc(c.config.RetryDelay)
		}
	}

	c.logger.Warn("search retries exhausted, degrading to empty evidence", zap.String("query", query))
	return []model.EvidenceItem{}
}

// braveResponse mirrors the Brave web-search payload shape. Results is a
// pointer so a present-but-empty list can be told apart from a malformed
// payload with no web.results field at all.
type braveResponse struct {
	Web *struct {
		Results *[]braveResult `json:"results"`
	} `json:"web"`
}

type braveResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// doSearch executes one request against the search API
func (c *Client) doSearch(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(c.config.MaxResults))
	req.URL.RawQuery = params.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("X-Subscription-Token", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var reader io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload braveResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	// A payload without web.results is a service error, not an empty result
	if payload.Web == nil || payload.Web.Results == nil {
		return nil, fmt.Errorf("malformed payload: missing web.results")
	}

	items := make([]model.EvidenceItem, 0, len(*payload.Web.Results))
	for _, r := range *payload.Web.Results {
		items = append(items, model.EvidenceItem{
			Title:  r.Title,
			Body:   r.Description,
			URL:    r.URL,
			Source: extractDomain(r.URL),
		})
	}

	return items, nil
}

// cachedResults returns previously stored results for an identical query
// within this run. Cache hits skip rate limiting and retry entirely.
func (c *Client) cachedResults(query string) ([]model.EvidenceItem, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, found := c.cache.Get(cache.Key("search", query))
	if !found {
		return nil, false
	}
	var items []model.EvidenceItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *Client) storeResults(query string, items []model.EvidenceItem) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.cache.Set(cache.Key("search", query), raw, c.cacheTTL)
}

// extractDomain extracts the registrable host from a result URL
func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
