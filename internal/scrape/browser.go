package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Browser renders a page with JavaScript execution and returns its HTML.
// It is the expensive second acquisition strategy, used when the direct
// fetch fails or hits bot protection.
type Browser interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeBrowser implements Browser with a headless Chrome instance
type ChromeBrowser struct {
	userAgent string
	settle    time.Duration // Wait after load for JavaScript to finish
	limit     time.Duration // Overall render budget
	logger    *zap.Logger
}

// NewChromeBrowser creates a headless-Chrome rendering strategy
func NewChromeBrowser(userAgent string, settle, limit time.Duration, logger *zap.Logger) *ChromeBrowser {
	if settle <= 0 {
		settle = 5 * time.Second
	}
	if limit <= 0 {
		limit = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeBrowser{
		userAgent: userAgent,
		settle:    settle,
		limit:     limit,
		logger:    logger,
	}
}

// Render navigates to the URL in a fresh headless browser, waits for the
// page to settle, and returns the rendered document. The allocator and tab
// contexts are cancelled on every exit path, releasing the Chrome process
// even on timeout.
func (b *ChromeBrowser) Render(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(b.userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	tabCtx, cancelLimit := context.WithTimeout(tabCtx, b.limit)
	defer cancelLimit()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(b.settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser render: %w", err)
	}

	b.logger.Debug("browser render succeeded", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}
