package sources

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"estate-explorer/utils"
)

// BrowserFetcher loads pages that only render their JSON export after
// client-side scripts run, and returns the document body text.
type BrowserFetcher struct {
	chromeBin string
	timeout   time.Duration
	settle    time.Duration
	logger    *utils.Logger
	retry     *utils.RetryConfig
}

// NewBrowserFetcher creates a headless Chrome fetcher. An empty chromeBin
// searches the usual install locations.
func NewBrowserFetcher(chromeBin string, timeout time.Duration, logger *utils.Logger, retry *utils.RetryConfig) *BrowserFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1, Logger: logger}
	}
	return &BrowserFetcher{
		chromeBin: chromeBin,
		timeout:   timeout,
		settle:    2 * time.Second,
		logger:    logger,
		retry:     retry,
	}
}

func (b *BrowserFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if b.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(b.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	b.logger.Debug("[browser] loading %s with %s", uri, b.chromeBin)

	var text string
	err := b.retry.Do(ctx, "browser "+uri, func() error {
		tabCtx, cancelTab := chromedp.NewContext(browserCtx)
		defer cancelTab()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(uri),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(b.settle),
			chromedp.Evaluate(`document.body ? document.body.innerText : ""`, &text),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("browser: %s: %w", uri, err)
	}
	if text == "" {
		return nil, fmt.Errorf("browser: %s: empty document", uri)
	}
	return []byte(text), nil
}

func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
