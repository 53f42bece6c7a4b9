package scrape

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ChenghengLi/AIvidence/internal/util"
)

// fetchSleepFunc is the sleep used for the pre-request delay (injectable for tests)
var fetchSleepFunc = time.Sleep

// Fetcher is the cheap first acquisition strategy: a direct HTTP GET with
// browser-like headers and a randomized pre-request delay to reduce the
// chance of being blocked.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	logger     *zap.Logger
}

// NewFetcher creates a new direct-fetch strategy
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, httpProxy, httpsProxy, noProxy string, logger *zap.Logger) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = 4_000_000
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// Fetch retrieves raw HTML for the URL. Non-2xx statuses and non-HTML
// content types are errors so the caller falls through to the next strategy.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	// A 1-3 second humanlike pause before the request
	fetchSleepFunc(time.Duration(1000+rand.Intn(2000)) * time.Millisecond)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	for key, value := range browserHeaders(f.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") {
		return "", fmt.Errorf("non-HTML content type: %s", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("empty response body")
	}

	f.logger.Debug("direct fetch succeeded", zap.String("url", rawURL), zap.Int("bytes", len(body)))
	return string(body), nil
}

// browserHeaders returns the header set a regular browser would send
func browserHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":                userAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"DNT":                       "1",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
		"Cache-Control":             "max-age=0",
	}
}
